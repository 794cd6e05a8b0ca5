package core

import (
	"encoding/base64"
	"testing"
)

func testAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	store, err := NewCredentialStore(
		[]UserCredential{{Username: "alice", Password: "admin-pw"}},
		[]UserCredential{{Username: "bob", Password: "viewer-pw"}},
	)
	if err != nil {
		t.Fatalf("NewCredentialStore error: %v", err)
	}
	return NewAuthenticator(store)
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestAuthenticateSuccessPerRole(t *testing.T) {
	auth := testAuthenticator(t)

	cases := []struct {
		username, password string
		role               Role
	}{
		{"alice", "admin-pw", RoleAdmin},
		{"bob", "viewer-pw", RoleViewer},
	}
	for _, tc := range cases {
		p, reason, ok := auth.Authenticate(basicHeader(tc.username, tc.password))
		if !ok {
			t.Fatalf("authenticate %s: rejected with %s", tc.username, reason)
		}
		if p.Username != tc.username || p.Role != tc.role {
			t.Fatalf("authenticate %s: got principal %+v", tc.username, p)
		}
	}
}

func TestAuthenticateFailureReasons(t *testing.T) {
	auth := testAuthenticator(t)

	cases := []struct {
		name   string
		header string
		reason AuthFailureReason
	}{
		{"absent header", "", AuthMissing},
		{"not basic", "Bearer abc123", AuthMalformed},
		{"bad base64", "Basic %%%", AuthMalformed},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("alice")), AuthMalformed},
		{"unknown user", basicHeader("mallory", "whatever"), AuthUnknownUser},
		{"wrong password", basicHeader("alice", "viewer-pw"), AuthBadPassword},
	}
	for _, tc := range cases {
		_, reason, ok := auth.Authenticate(tc.header)
		if ok {
			t.Fatalf("%s: authentication unexpectedly succeeded", tc.name)
		}
		if reason != tc.reason {
			t.Fatalf("%s: reason = %s, want %s", tc.name, reason, tc.reason)
		}
	}
}
