// Copyright (c) 2026 Libris. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMismatchedPassword is returned when a candidate password does not match
// the stored hash, or when the stored hash cannot be parsed. Callers must map
// it to an authentication failure, never to a system error.
var ErrMismatchedPassword = errors.New("sec: password does not match hash")

// Argon2id parameters.
//
// Defaults follow the argon2 package recommendation for interactive logins.
// They are embedded in every produced hash string, so they can be tuned
// without invalidating existing hashes.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword hashes a plain-text password with Argon2id.
//
// The result is a self-describing PHC string:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(plainTextPassword), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

// VerifyPassword compares a plain-text password against a PHC-encoded
// Argon2id hash using the parameters embedded in the hash itself.
//
// Any parse failure and any digest mismatch yield [ErrMismatchedPassword];
// the two cases are deliberately indistinguishable to callers.
func VerifyPassword(encodedHash, plainTextPassword string) error {
	salt, digest, memory, time, threads, err := decodeHash(encodedHash)
	if err != nil {
		return ErrMismatchedPassword
	}

	candidate := argon2.IDKey([]byte(plainTextPassword), salt, time, memory, threads, uint32(len(digest)))

	if subtle.ConstantTimeCompare(digest, candidate) != 1 {
		return ErrMismatchedPassword
	}
	return nil
}

// decodeHash parses a PHC-encoded Argon2id hash string.
func decodeHash(encodedHash string) (salt, digest []byte, memory uint32, time uint32, threads uint8, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errors.New("sec: malformed hash string")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, errors.New("sec: incompatible argon2 version")
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, err
	}

	salt, err = base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, err
	}

	digest, err = base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, err
	}

	return salt, digest, memory, time, threads, nil
}

// HashToken returns the hex-encoded SHA-256 of an opaque token string.
//
// Used to derive storage keys for the revocation list so that raw JWTs are
// never persisted.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
