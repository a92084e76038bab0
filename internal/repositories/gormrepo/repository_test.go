package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"voting-service/internal/models"
	"voting-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "a@example.com", Password: "x"}))
	err := repo.Create(ctx, &models.User{Email: "a@example.com", Password: "y"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	user, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleVoter, user.Role)

	_, err = repo.FindByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCandidateRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()

	c := &models.Candidate{Name: "Sarah Johnson", Description: "Education"}
	require.NoError(t, repo.Create(ctx, c))
	assert.NotZero(t, c.ID)

	assert.ErrorIs(t, repo.Create(ctx, &models.Candidate{Name: "Sarah Johnson"}), ErrCandidateNameExists)

	other := &models.Candidate{Name: "Maria Garcia"}
	require.NoError(t, repo.Create(ctx, other))

	other.Name = "Sarah Johnson"
	assert.ErrorIs(t, repo.Update(ctx, other), ErrCandidateNameExists)

	c.Description = "Community development"
	require.NoError(t, repo.Update(ctx, c))
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Community development", got.Description)

	assert.ErrorIs(t, repo.Update(ctx, &models.Candidate{ID: 999, Name: "Nobody"}), ErrCandidateNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, c.ID, all[0].ID)
}

func TestCandidateRepository_DeleteCascadesVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	user := testutil.CreateTestUser(t, db, "voter@example.com", models.RoleVoter)
	doomed := testutil.CreateTestCandidate(t, db, "Doomed")
	kept := testutil.CreateTestCandidate(t, db, "Kept")
	testutil.InsertVotes(t, db, user.ID, doomed.ID, models.VoteTypePaid, 3, at)
	testutil.InsertVotes(t, db, user.ID, kept.ID, models.VoteTypeFree, 1, at)

	removed, err := repo.Delete(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, int64(0), testutil.CountVotes(t, db, "candidate_id = ?", doomed.ID))
	assert.Equal(t, int64(1), testutil.CountVotes(t, db, "candidate_id = ?", kept.ID))

	_, err = repo.Delete(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestVoteRepository_Tallies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	alice := testutil.CreateTestUser(t, db, "alice@example.com", models.RoleVoter)
	bob := testutil.CreateTestUser(t, db, "bob@example.com", models.RoleVoter)
	c1 := testutil.CreateTestCandidate(t, db, "C1")
	c2 := testutil.CreateTestCandidate(t, db, "C2")
	empty := testutil.CreateTestCandidate(t, db, "Empty")

	testutil.InsertVotes(t, db, alice.ID, c1.ID, models.VoteTypeFree, 1, at)
	testutil.InsertVotes(t, db, bob.ID, c1.ID, models.VoteTypePaid, 4, at)
	testutil.InsertVotes(t, db, alice.ID, c2.ID, models.VoteTypePaid, 2, at)

	results, err := repo.Tallies(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byID := map[uint]models.CandidateTally{}
	for _, r := range results {
		byID[r.Candidate.ID] = r.CandidateTally
	}
	assert.Equal(t, models.CandidateTally{CandidateID: c1.ID, FreeVotes: 1, PaidVotes: 4, TotalVotes: 5, UniqueVoters: 2}, byID[c1.ID])
	assert.Equal(t, models.CandidateTally{CandidateID: c2.ID, PaidVotes: 2, TotalVotes: 2, UniqueVoters: 1}, byID[c2.ID])
	assert.Equal(t, models.CandidateTally{CandidateID: empty.ID}, byID[empty.ID])
	assert.Equal(t, "C1", results[0].Candidate.Name)

	one, err := repo.TallyFor(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), one.TotalVotes)

	_, err = repo.TallyFor(ctx, 999)
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestVoteRepository_HistoryAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()
	day1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	alice := testutil.CreateTestUser(t, db, "alice@example.com", models.RoleVoter)
	bob := testutil.CreateTestUser(t, db, "bob@example.com", models.RoleVoter)
	c1 := testutil.CreateTestCandidate(t, db, "C1")
	c2 := testutil.CreateTestCandidate(t, db, "C2")

	testutil.InsertVotes(t, db, alice.ID, c1.ID, models.VoteTypeFree, 1, day1)
	testutil.InsertVotes(t, db, alice.ID, c2.ID, models.VoteTypePaid, 2, day2)
	testutil.InsertVotes(t, db, bob.ID, c2.ID, models.VoteTypeFree, 1, day2)

	history, err := repo.HistoryForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "C2", history[0].CandidateName)
	assert.Equal(t, "C1", history[2].CandidateName)
	assert.True(t, history[0].CreatedAt.Equal(day2))

	first, err := repo.FirstVoteSince(ctx, alice.ID, day2.Truncate(24*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, models.VoteTypePaid, first.Type)

	none, err := repo.FirstVoteSince(ctx, alice.ID, day2.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, none)

	all, err := repo.List(ctx, models.VoteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	free, err := repo.List(ctx, models.VoteFilter{Type: models.VoteTypeFree})
	require.NoError(t, err)
	assert.Len(t, free, 2)

	bobs, err := repo.List(ctx, models.VoteFilter{UserID: bob.ID})
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "bob@example.com", bobs[0].UserEmail)
	assert.Equal(t, "C2", bobs[0].CandidateName)
}

func TestVoteRepository_WithUserLock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "alice@example.com", models.RoleVoter)
	c := testutil.CreateTestCandidate(t, db, "C1")

	err := repo.WithUserLock(ctx, user.ID, func(tx *VoteRepository) error {
		ok, err := tx.CandidateExists(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		return tx.CreateBatch(ctx, []models.Vote{
			{UserID: user.ID, CandidateID: c.ID, Type: models.VoteTypeFree, CreatedAt: time.Now().UTC()},
		})
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), testutil.CountVotes(t, db, ""))

	boom := errors.New("boom")
	err = repo.WithUserLock(ctx, user.ID, func(tx *VoteRepository) error {
		require.NoError(t, tx.CreateBatch(ctx, []models.Vote{
			{UserID: user.ID, CandidateID: c.ID, Type: models.VoteTypePaid, CreatedAt: time.Now().UTC()},
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), testutil.CountVotes(t, db, ""), "failed transaction must roll back")

	err = repo.WithUserLock(ctx, 12345, func(tx *VoteRepository) error { return nil })
	assert.ErrorIs(t, err, ErrUserNotFound)
}
