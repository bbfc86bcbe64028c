package common

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandByteArray returns n cryptographically random bytes.
// rand.Read never fails on supported platforms; a failure here means the
// process cannot continue safely, so it panics.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to scrub passwords and keys once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// MakeRandHexString returns a hex string encoding n random bytes.
func MakeRandHexString(n int) (string, error) {
	return hex.EncodeToString(GenerateRandByteArray(n)), nil
}
