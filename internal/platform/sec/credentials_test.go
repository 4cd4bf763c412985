// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/platform/sec"
)

/*
TestPlainCredentials verifies exact username/password matching.
*/
func TestPlainCredentials(t *testing.T) {
	verifier := sec.NewCredentialVerifier("admin", "s3cret", "")

	assert.True(t, verifier.Verify("admin", "s3cret"))
	assert.False(t, verifier.Verify("admin", "wrong"))
	assert.False(t, verifier.Verify("root", "s3cret"))

	empty := sec.PlainCredentials{Username: "admin"}
	assert.False(t, empty.Verify("admin", ""))
}

/*
TestBcryptCredentials verifies that a configured hash takes precedence.
*/
func TestBcryptCredentials(t *testing.T) {
	hash, err := sec.HashPassword("correct-horse-battery")
	require.NoError(t, err)

	verifier := sec.NewCredentialVerifier("admin", "ignored", hash)
	require.IsType(t, sec.BcryptCredentials{}, verifier)

	assert.True(t, verifier.Verify("admin", "correct-horse-battery"))
	assert.False(t, verifier.Verify("admin", "ignored"))
	assert.False(t, verifier.Verify("other", "correct-horse-battery"))

	malformed := sec.BcryptCredentials{Username: "admin", PasswordHash: "not-a-bcrypt-hash"}
	assert.False(t, malformed.Verify("admin", "correct-horse-battery"))
}

/*
TestHashPassword_TooShort verifies the minimum length for generated hashes.
*/
func TestHashPassword_TooShort(t *testing.T) {
	_, err := sec.HashPassword("s3cret")
	assert.ErrorIs(t, err, sec.ErrPasswordTooShort)
}
