package core

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash of plaintext. Each call salts
// fresh, so hashing the same password twice yields different strings; the
// algorithm and cost are embedded in the hash itself.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
// Malformed hashes verify as false rather than erroring; the comparison is
// constant-time inside bcrypt.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// dummyHash is a bcrypt hash of an unguessable throwaway value. Authentication
// burns a comparison against it for unknown usernames so response timing does
// not reveal whether a username exists.
var dummyHash = func() string {
	h, err := HashPassword("accounts-api-dummy-credential")
	if err != nil {
		// bcrypt only fails on oversized input; this value is fixed and short.
		panic(err)
	}
	return h
}()
