// Package cryptox implements the credential-hashing capability used by the
// auth service. Password hashing is Argon2id; verification is a pure
// predicate and a mismatch is a valid false result, never an error.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/tokenforge/authapi/internal/common"
)

// Hasher hashes plaintext credentials and verifies candidates against a
// previously produced hash.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(encoded, candidate string) bool
}

// Argon2Hasher hashes passwords with Argon2id and encodes the result in
// PHC string format: $argon2id$v=19$m=...,t=...,p=...$<salt>$<key>.
type Argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
		saltLen: 16,
	}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password: %w", common.ErrInvalidArgument)
	}

	salt := common.GenerateRandByteArray(h.saltLen)
	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether candidate matches the encoded hash. Malformed or
// foreign hash strings verify as false. The final comparison is
// constant-time.
func (h *Argon2Hasher) Verify(encoded, candidate string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false
	}

	candidateKey := argon2.IDKey([]byte(candidate), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidateKey) == 1
}
