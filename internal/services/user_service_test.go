package services

import (
	"context"
	"testing"
	"time"

	"voting-service/internal/models"
	"voting-service/internal/repositories/gormrepo"
	"voting-service/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *RedisService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rdb, _ := testutil.SetupTestRedis(t)
	redisService := NewRedisService(rdb)
	return NewUserService(gormrepo.NewUserRepository(db), "test-secret", time.Hour, redisService), redisService
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &models.RegisterRequest{Email: " Voter@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "voter@example.com", reg.User.Email)
	assert.Equal(t, models.RoleVoter, reg.User.Role)
	assert.NotEmpty(t, reg.Token)

	_, err = svc.Register(ctx, &models.RegisterRequest{Email: "voter@example.com", Password: "other12"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	login, err := svc.Login(ctx, &models.LoginRequest{Email: "voter@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "voter@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	identity, err := svc.ParseToken(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, identity.UserID)
	assert.Equal(t, models.RoleVoter, identity.Role)
	assert.NotEmpty(t, identity.TokenID)

	profile, err := svc.GetProfile(ctx, identity.UserID)
	require.NoError(t, err)
	assert.Equal(t, "voter@example.com", profile.Email)

	_, err = svc.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ParseTokenRejects(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &models.RegisterRequest{Email: "voter@example.com", Password: "secret1"})
	require.NoError(t, err)

	other := NewUserService(nil, "another-secret", time.Hour, nil)
	_, err = other.ParseToken(ctx, reg.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong signing key")

	_, err = svc.ParseToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: reg.User.ID})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ParseToken(ctx, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ParseToken(ctx, reg.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")
}

func TestUserService_LogoutRevokesToken(t *testing.T) {
	svc, redisService := newUserService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &models.RegisterRequest{Email: "voter@example.com", Password: "secret1"})
	require.NoError(t, err)

	identity, err := svc.ParseToken(ctx, reg.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, identity))

	revoked, err := redisService.IsTokenRevoked(ctx, identity.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.ParseToken(ctx, reg.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
