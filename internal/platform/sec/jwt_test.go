// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/platform/sec"
)

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

/*
TestTokenService_RoundTrip verifies RS256 issuance and verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key := generateKey(t)
	service := sec.NewTokenServiceFromKeys(key, nil, "hanqa.kr")

	token, err := service.GenerateAccessToken("u-1", "minh", "member", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "minh", claims.Username)
	assert.Equal(t, "member", claims.Role)
}

/*
TestTokenService_Failures verifies rejection of expired, foreign and unsigned tokens.
*/
func TestTokenService_Failures(t *testing.T) {
	key := generateKey(t)
	service := sec.NewTokenServiceFromKeys(key, nil, "hanqa.kr")

	t.Run("Expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken("u-1", "minh", "member", -time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("ForeignKey", func(t *testing.T) {
		other := sec.NewTokenServiceFromKeys(generateKey(t), nil, "hanqa.kr")
		token, err := other.GenerateAccessToken("u-1", "minh", "member", time.Hour)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		other := sec.NewTokenServiceFromKeys(key, nil, "elsewhere")
		token, err := other.GenerateAccessToken("u-1", "minh", "member", time.Hour)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("VerifyOnly", func(t *testing.T) {
		verifier := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "hanqa.kr")
		_, err := verifier.GenerateAccessToken("u-1", "minh", "member", time.Hour)
		assert.ErrorIs(t, err, sec.ErrSigningUnavailable)
	})
}

/*
TestUserRole_AtLeast verifies the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleMember))
	assert.True(t, sec.RoleMember.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleModerator))
	assert.False(t, sec.UserRole("ghost").AtLeast(sec.RoleMember))
}
