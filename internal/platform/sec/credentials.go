// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// CredentialVerifier checks admin login credentials.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// PlainCredentials compares against a configured username/password pair.
//
// The comparison is plain string equality and not constant-time. Deployments
// that need more should configure ADMIN_PASSWORD_HASH to get [BcryptCredentials].
type PlainCredentials struct {
	Username string
	Password string
}

// Verify implements [CredentialVerifier].
func (credentials PlainCredentials) Verify(username, password string) bool {
	if credentials.Password == "" {
		return false
	}
	return username == credentials.Username && password == credentials.Password
}

// BcryptCredentials compares the password against a bcrypt hash.
type BcryptCredentials struct {
	Username     string
	PasswordHash string
}

// Verify implements [CredentialVerifier].
func (credentials BcryptCredentials) Verify(username, password string) bool {
	if username != credentials.Username || credentials.PasswordHash == "" {
		return false
	}
	return CheckPasswordHash(password, credentials.PasswordHash)
}

// NewCredentialVerifier prefers the bcrypt hash when one is configured.
func NewCredentialVerifier(username, password, passwordHash string) CredentialVerifier {
	if passwordHash != "" {
		return BcryptCredentials{Username: username, PasswordHash: passwordHash}
	}
	return PlainCredentials{Username: username, Password: password}
}
