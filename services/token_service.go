package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/dto"
	"github.com/holocron-api/models"
	"github.com/samber/oops"
)

// TokenService issues and validates HS256 bearer tokens.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist Denylist
	now      func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a token service. A nil denylist disables revocation.
func NewTokenService(secret string, ttl time.Duration, denylist Denylist, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}

	s := &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		denylist: denylist,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue generates a signed token for user
func (s *TokenService) Issue(user *models.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := dto.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Internal(err, "failed to sign token")
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Validate verifies signature, expiry and revocation and returns the claims.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (*dto.TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	claims := &dto.TokenClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, oops.Code(apperrors.CodeTokenExpired).Errorf("Token has expired")
	case err != nil:
		return nil, oops.Code(apperrors.CodeTokenMalformed).With("cause", err.Error()).Errorf("Invalid token")
	case !token.Valid || claims.UserID == 0:
		return nil, oops.Code(apperrors.CodeTokenMalformed).Errorf("Invalid token")
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperrors.Internal(err, "failed to check token revocation")
		}
		if revoked {
			return nil, oops.Code(apperrors.CodeTokenRevoked).Errorf("Token has been revoked")
		}
	}
	return claims, nil
}

// Revoke deny-lists the token until it expires. Without a denylist logout
// is client-side only and Revoke does nothing.
func (s *TokenService) Revoke(ctx context.Context, claims *dto.TokenClaims) error {
	if s.denylist == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperrors.Internal(err, "failed to revoke token")
	}
	return nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
