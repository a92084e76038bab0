package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"voting-service/internal/models"
	"voting-service/internal/repositories/gormrepo"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenRevoker remembers logged out tokens.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Claims carried by every access token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type UserService struct {
	repo       *gormrepo.UserRepository
	jwtSecret  string
	expiration time.Duration
	revoker    TokenRevoker
	now        func() time.Time
}

func NewUserService(repo *gormrepo.UserRepository, jwtSecret string, expiration time.Duration, revoker TokenRevoker) *UserService {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &UserService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		expiration: expiration,
		revoker:    revoker,
		now:        time.Now,
	}
}

// generateJWT creates a new JWT token for the user
func (s *UserService) generateJWT(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	slog.Info("Starting registration", "email", email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleVoter,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, gormrepo.ErrEmailAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		slog.Error("Registration failed", "email", email, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateJWT(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User registered", "id", user.ID)
	return &models.LoginResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user.Response(),
	}, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gormrepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Response(),
	}, nil
}

// ParseToken validates a bearer token and returns the identity it carries.
func (s *UserService) ParseToken(ctx context.Context, tokenString string) (*models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	if s.revoker != nil && claims.ID != "" {
		revoked, err := s.revoker.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token: %w", err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	identity := &models.Identity{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// Logout revokes the caller's token for the rest of its lifetime.
func (s *UserService) Logout(ctx context.Context, identity *models.Identity) error {
	if s.revoker == nil || identity.TokenID == "" {
		return nil
	}
	ttl := identity.ExpiresAt.Sub(s.now())
	if err := s.revoker.RevokeToken(ctx, identity.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	slog.Info("User logged out", "id", identity.UserID)
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gormrepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := user.Response()
	return &resp, nil
}
