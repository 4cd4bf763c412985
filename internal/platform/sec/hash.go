// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// AdminPasswordMinLength is the shortest password cmd/admin-passwd will hash.
const AdminPasswordMinLength = 12

// ErrPasswordTooShort is returned by [HashPassword] for passwords below [AdminPasswordMinLength].
var ErrPasswordTooShort = fmt.Errorf("auth: password must be at least %d characters", AdminPasswordMinLength)

// HashPassword produces the bcrypt value for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if utf8.RuneCountInString(password) < AdminPasswordMinLength {
		return "", ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches hash. A malformed hash
// never matches.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
