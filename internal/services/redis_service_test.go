package services

import (
	"context"
	"testing"
	"time"

	"voting-service/internal/models"
	"voting-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisService_CheckRateLimit(t *testing.T) {
	rdb, _ := testutil.SetupTestRedis(t)
	svc := NewRedisService(rdb)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := svc.CheckRateLimit(ctx, "rate:test", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, err := svc.CheckRateLimit(ctx, "rate:test", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.CheckRateLimit(ctx, "rate:other", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "keys are independent")
}

func TestRedisService_ResultsCache(t *testing.T) {
	rdb, mr := testutil.SetupTestRedis(t)
	svc := NewRedisService(rdb)
	ctx := context.Background()

	_, found, err := svc.GetResults(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	board := []models.CandidateResult{{
		Candidate:      models.Candidate{ID: 1, Name: "C1"},
		CandidateTally: models.CandidateTally{CandidateID: 1, FreeVotes: 2, TotalVotes: 2, UniqueVoters: 2},
	}}
	require.NoError(t, svc.SetResults(ctx, board, 10*time.Second))

	got, found, err := svc.GetResults(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, board[0].CandidateTally, got[0].CandidateTally)
	assert.Equal(t, "C1", got[0].Candidate.Name)

	mr.FastForward(11 * time.Second)
	_, found, err = svc.GetResults(ctx)
	require.NoError(t, err)
	assert.False(t, found, "expired")

	require.NoError(t, svc.SetResults(ctx, board, time.Minute))
	require.NoError(t, svc.InvalidateResults(ctx))
	_, found, err = svc.GetResults(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisService_RevokeToken(t *testing.T) {
	rdb, mr := testutil.SetupTestRedis(t)
	svc := NewRedisService(rdb)
	ctx := context.Background()

	require.NoError(t, svc.RevokeToken(ctx, "jti-1", time.Minute))
	require.NoError(t, svc.RevokeToken(ctx, "jti-expired", 0))

	revoked, err := svc.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = svc.IsTokenRevoked(ctx, "jti-expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = svc.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
