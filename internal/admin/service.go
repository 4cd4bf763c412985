// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package admin implements the admin session (login, logout, session) and
// mounts the admin-only moderation routes of the other domains behind it.
//
// # Security
//
// Sessions are stateless HS256 tokens carried in an HttpOnly cookie. Logout
// clears the cookie only; a copied token stays valid until it expires.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/platform/ctxutil"
	"github.com/taibuivan/hanqa/internal/platform/sec"
)

// errIssuedTokenRejected means a token failed verification right after it was
// signed, which points at a clock or secret misconfiguration.
var errIssuedTokenRejected = errors.New("admin: freshly issued token failed verification")

// TokenIssuer issues and verifies admin session tokens.
type TokenIssuer interface {
	CreateAdminToken(username string) (string, error)
	VerifyAdminToken(token string) *sec.AdminClaims
	TTL() time.Duration
}

// Session is the admin session returned after login and by GET /session.
type Session struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service implements the admin session use cases.
type Service struct {
	credentials sec.CredentialVerifier
	tokens      TokenIssuer
	logger      *slog.Logger
}

/*
NewService constructs a new admin [Service].

Parameters:
  - credentials: sec.CredentialVerifier (plain or bcrypt, chosen at startup)
  - tokens: TokenIssuer
  - logger: *slog.Logger
*/
func NewService(credentials sec.CredentialVerifier, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{credentials: credentials, tokens: tokens, logger: logger}
}

/*
Login checks the credentials and issues a session token.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - string: Signed token for the session cookie
  - *Session: The session it encodes
  - error: Unauthorized on bad credentials, Internal if signing fails
*/
func (service *Service) Login(context context.Context, username, password string) (string, *Session, error) {
	if !service.credentials.Verify(username, password) {
		ctxutil.GetLogger(context).Warn("admin_login_failed", slog.String("username", username))
		return "", nil, apperr.Unauthorized("Invalid username or password")
	}

	token, err := service.tokens.CreateAdminToken(username)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	session := service.Session(token)
	if session == nil {
		return "", nil, apperr.Internal(errIssuedTokenRejected)
	}

	service.logger.Info("admin_login", slog.String("username", username))
	return token, session, nil
}

// Session decodes a token into a [Session], or nil when it is not valid.
func (service *Service) Session(token string) *Session {
	claims := service.tokens.VerifyAdminToken(token)
	if claims == nil {
		return nil
	}
	return sessionFromClaims(claims)
}

// TTL returns the lifetime of a session.
func (service *Service) TTL() time.Duration {
	return service.tokens.TTL()
}

// VerifyAdminToken lets the service guard routes via RequireAdmin.
func (service *Service) VerifyAdminToken(token string) *sec.AdminClaims {
	return service.tokens.VerifyAdminToken(token)
}

func sessionFromClaims(claims *sec.AdminClaims) *Session {
	session := &Session{Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}
