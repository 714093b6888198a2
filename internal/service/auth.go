package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aidar/hackathon-platform/internal/config"
	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/repository"
)

// Claims represents JWT claims
type Claims struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService is the identity provider adapter: first login creates
// the user document, subsequent logins reuse it. Issues HS256 tokens
// carrying user id and role.
type AuthService struct {
	userRepo  repository.UserRepository
	admins    config.AdminConfig
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, admins config.AdminConfig, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		admins:    admins,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Login authenticates by email, creating the user on first auth.
// Emails on the bootstrap allowlist get the admin role.
func (s *AuthService) Login(ctx context.Context, email, displayName string) (string, *domain.User, error) {
	role := domain.RoleStudent
	if s.admins.IsAdminEmail(email) {
		role = domain.RoleAdmin
	}

	user, err := s.userRepo.CreateIfAbsent(ctx, &domain.User{
		UserID:      uuid.NewString(),
		DisplayName: displayName,
		Email:       email,
		Role:        role,
	})
	if err != nil {
		return "", nil, err
	}

	// Create claims
	claims := &Claims{
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	// Create token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign token
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, user, nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// CompleteOnboarding marks the user's onboarding as finished
func (s *AuthService) CompleteOnboarding(ctx context.Context, userID string) (*domain.User, error) {
	if err := s.userRepo.SetOnboarded(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
