package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/config"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// TokenIssuer is stamped into every access token and checked on parse.
const TokenIssuer = "landscaping-api"

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// AuthClaims is the access token payload. Subject carries the user id;
// PropertyID is set only for owner accounts. Username rides along for
// audit fields so handlers need no extra lookup.
type AuthClaims struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	PropertyID string `json:"property_id,omitempty"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Login verifies credentials and returns the user with a signed
	// access token.
	Login(ctx context.Context, username, password string) (*models.User, string, error)

	// ValidateToken parses and verifies an access token string.
	ValidateToken(tokenString string) (*AuthClaims, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type authService struct {
	userRepo repositories.UserRepository
	secret   []byte
	expiry   time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(cfg.JWTSecret),
		expiry:   time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeInvalidCredentials,
			Message:    "Invalid username or password",
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("signing access token: %w", err)
	}

	utils.Logger.WithFields(map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User logged in")
	return user, token, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			ID:        uuid.NewString(),
		},
	}
	if user.PropertyID != nil {
		claims.PropertyID = user.PropertyID.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) ValidateToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
