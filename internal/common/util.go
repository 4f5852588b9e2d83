package common

import "crypto/rand"

// GenerateRandByteArray returns size cryptographically random bytes.
// A failure to read from the system entropy source is unrecoverable,
// so it panics instead of returning an error.
func GenerateRandByteArray(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}
