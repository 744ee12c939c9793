package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alisoliman/recipe-app-api/dto"
	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates HS256 access tokens
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoked repositories.RevocationList
	newID   utils.IDGenerator
	now     func() time.Time
}

// NewTokenService creates a token service signing with secret
func NewTokenService(secret string, ttl time.Duration, revoked repositories.RevocationList) *TokenService {
	return &TokenService{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		newID:   utils.NewUUID,
		now:     time.Now,
	}
}

// Issue generates a new JWT token for a user
func (s *TokenService) Issue(user *models.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := dto.TokenClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.newID(),
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token failed: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Validate parses tokenString and returns its claims when the token is
// well formed, unexpired and not revoked
func (s *TokenService) Validate(ctx context.Context, tokenString string) (*dto.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "Token has expired", err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "Invalid token", err)
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "Invalid token")
	}

	if claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("revocation lookup failed: %w", err)
		}
		if revoked {
			return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "Token has been revoked")
		}
	}
	return claims, nil
}

// Revoke blocks the token described by claims until it expires
func (s *TokenService) Revoke(ctx context.Context, claims *dto.TokenClaims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
