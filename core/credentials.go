package core

import (
	"fmt"
	"strings"
)

// Role is the privilege tier attached to an authenticated principal.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Credential is a stored username with its bcrypt password hash. Plaintext
// passwords are discarded during load and never leave the credential store.
type Credential struct {
	Username     string
	PasswordHash string
}

// CredentialStore holds the configured admin and viewer credentials.
// It is immutable after NewCredentialStore and safe for concurrent reads.
type CredentialStore struct {
	admins  []Credential
	viewers []Credential
}

// NewCredentialStore validates and hashes the configured credential lists.
// It fails when the admin list is empty, when any entry has a blank username
// or password, or when a username appears more than once across both lists.
// The viewer list may be empty.
func NewCredentialStore(admins, viewers []UserCredential) (*CredentialStore, error) {
	if len(admins) == 0 {
		return nil, fmt.Errorf("%w: at least one admin credential must be configured", ErrConfiguration)
	}

	store := &CredentialStore{}
	seen := map[string]struct{}{}

	build := func(list []UserCredential, role Role) ([]Credential, error) {
		out := make([]Credential, 0, len(list))
		for _, uc := range list {
			if strings.TrimSpace(uc.Username) == "" {
				return nil, fmt.Errorf("%w: %s credential with blank username", ErrConfiguration, role)
			}
			if uc.Password == "" {
				return nil, fmt.Errorf("%w: blank password for user %q", ErrConfiguration, uc.Username)
			}
			if _, dup := seen[uc.Username]; dup {
				return nil, fmt.Errorf("%w: username %q configured more than once", ErrConfiguration, uc.Username)
			}
			seen[uc.Username] = struct{}{}

			hash, err := HashPassword(uc.Password)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to hash password for user %q: %v", ErrConfiguration, uc.Username, err)
			}
			out = append(out, Credential{Username: uc.Username, PasswordHash: hash})
		}
		return out, nil
	}

	var err error
	if store.admins, err = build(admins, RoleAdmin); err != nil {
		return nil, err
	}
	if store.viewers, err = build(viewers, RoleViewer); err != nil {
		return nil, err
	}
	return store, nil
}

// FindByUsername looks a username up across both lists, admins first.
// The second return is false when the username is not configured.
func (s *CredentialStore) FindByUsername(username string) (Credential, Role, bool) {
	for _, c := range s.admins {
		if c.Username == username {
			return c, RoleAdmin, true
		}
	}
	for _, c := range s.viewers {
		if c.Username == username {
			return c, RoleViewer, true
		}
	}
	return Credential{}, "", false
}
