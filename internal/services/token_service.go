package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mtamura/project-tracker-api/internal/secrets"
)

// DefaultTokenTTL is used when Issue is called with a zero ttl.
const DefaultTokenTTL = 30 * time.Minute

// DefaultPermissions is the permission claim granted to ordinary users.
const DefaultPermissions = "user"

// ErrInvalidToken covers every validation failure: bad signature,
// undecodable claims, expired token, or a missing subject. Callers get no
// finer distinction.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token claim set: subject (user email), permissions, and
// the registered expiry.
type Claims struct {
	Permissions string `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC-SHA256 signed bearer tokens.
// The signing secret is resolved once, at construction.
type TokenService struct {
	signKey []byte
}

// NewTokenService resolves the signing secret from the store and returns
// a ready service. A resolution failure is returned to the caller, which
// must treat it as fatal: issuing tokens with a fallback secret is never
// acceptable.
func NewTokenService(ctx context.Context, store secrets.Store, secretName string) (*TokenService, error) {
	secret, err := store.GetSecret(ctx, secretName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signing secret: %w", err)
	}
	return &TokenService{signKey: []byte(secret)}, nil
}

// NewTokenServiceWithKey constructs a service from a raw key (used for tests).
func NewTokenServiceWithKey(key []byte) *TokenService {
	return &TokenService{signKey: key}
}

// Issue creates a signed token for the given subject. A zero ttl falls
// back to DefaultTokenTTL; empty permissions fall back to
// DefaultPermissions.
func (s *TokenService) Issue(subject, permissions string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	if permissions == "" {
		permissions = DefaultPermissions
	}

	now := time.Now()
	claims := &Claims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry and returns the claims.
// Expiry is exact: no leeway is granted.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
