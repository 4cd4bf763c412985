// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// developmentAdminSecret signs admin tokens outside production when no secret is configured.
const developmentAdminSecret = "hanqa-dev-admin-secret-change-in-production"

// ErrAdminSecretMissing is returned when production starts without an admin signing secret.
var ErrAdminSecretMissing = errors.New("auth: admin signing secret is required in production")

// AdminClaims is the payload of an admin session token.
type AdminClaims struct {
	jwt.RegisteredClaims

	Username string `json:"username"`
	Role     string `json:"role"`
}

// AdminTokenService issues and verifies stateless admin session tokens (HS256).
//
// Tokens are never stored server-side. Logout only clears the cookie, so an
// exfiltrated token stays valid until it expires.
type AdminTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// AdminTokenOption customizes an [AdminTokenService].
type AdminTokenOption func(*AdminTokenService)

// WithClock replaces the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) AdminTokenOption {
	return func(service *AdminTokenService) {
		service.now = now
	}
}

// WithIssuer overrides the 'iss' claim.
func WithIssuer(issuer string) AdminTokenOption {
	return func(service *AdminTokenService) {
		service.issuer = issuer
	}
}

// NewAdminTokenService builds the admin token service.
//
// An empty secret fails closed in production and falls back to a fixed
// development secret elsewhere.
func NewAdminTokenService(secret string, production bool, ttl time.Duration, opts ...AdminTokenOption) (*AdminTokenService, error) {
	if secret == "" {
		if production {
			return nil, ErrAdminSecretMissing
		}
		secret = developmentAdminSecret
	}

	service := &AdminTokenService{
		secret: []byte(secret),
		issuer: "hanqa.kr/admin",
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// TTL returns the fixed session lifetime.
func (service *AdminTokenService) TTL() time.Duration {
	return service.ttl
}

// CreateAdminToken issues a signed token asserting {username, role: admin}.
func (service *AdminTokenService) CreateAdminToken(username string) (string, error) {
	issuedAt := service.now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(service.ttl)),
		},
		Username: username,
		Role:     string(RoleAdmin),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign admin token: %w", err)
	}

	return signed, nil
}

// VerifyAdminToken returns the claims of a valid admin token, or nil.
//
// Every failure (bad signature, wrong algorithm, expiry, malformed input,
// non-admin role) yields nil. It never panics.
func (service *AdminTokenService) VerifyAdminToken(tokenString string) (claims *AdminClaims) {
	defer func() {
		if recover() != nil {
			claims = nil
		}
	}()

	if tokenString == "" {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil || !parsed.Valid {
		return nil
	}

	result, ok := parsed.Claims.(*AdminClaims)
	if !ok || result.Username == "" || result.Role != string(RoleAdmin) {
		return nil
	}

	return result
}
