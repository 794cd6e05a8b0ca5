package core

import (
	"encoding/base64"
	"strings"
)

// Principal is the authenticated identity for one request. Immutable once
// built; it is never persisted across requests.
type Principal struct {
	Username string
	Role     Role
}

// AuthFailureReason distinguishes why authentication failed. The distinction
// is for internal diagnostics only; every reason surfaces as 401.
type AuthFailureReason string

const (
	AuthMissing     AuthFailureReason = "missing"
	AuthMalformed   AuthFailureReason = "malformed"
	AuthUnknownUser AuthFailureReason = "unknown_user"
	AuthBadPassword AuthFailureReason = "bad_password"
)

// Authenticator verifies Basic credentials against the credential store.
// Stateless: credentials are re-verified on every call.
type Authenticator struct {
	credentials *CredentialStore
}

func NewAuthenticator(credentials *CredentialStore) *Authenticator {
	return &Authenticator{credentials: credentials}
}

// Authenticate parses a raw Authorization header value and resolves it to a
// principal. An empty header yields AuthMissing; anything that is not
// well-formed Basic yields AuthMalformed.
func (a *Authenticator) Authenticate(header string) (Principal, AuthFailureReason, bool) {
	if header == "" {
		return Principal{}, AuthMissing, false
	}

	username, password, ok := decodeBasic(header)
	if !ok {
		return Principal{}, AuthMalformed, false
	}

	cred, role, found := a.credentials.FindByUsername(username)
	if !found {
		// Burn a comparison so unknown usernames cost the same as bad passwords.
		VerifyPassword(password, dummyHash)
		return Principal{}, AuthUnknownUser, false
	}
	if !VerifyPassword(password, cred.PasswordHash) {
		return Principal{}, AuthBadPassword, false
	}
	return Principal{Username: username, Role: role}, "", true
}

// decodeBasic extracts username/password from a Basic authorization header.
func decodeBasic(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(raw), ":")
	if !ok || username == "" {
		return "", "", false
	}
	return username, password, true
}
