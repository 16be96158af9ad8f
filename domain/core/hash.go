package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// SourceFingerprint identifies the uploaded file contents. Two uploads of the
// same bytes produce the same fingerprint regardless of filename.
type SourceFingerprint Hash

// NewSourceFingerprint computes the fingerprint of raw upload bytes
func NewSourceFingerprint(data []byte) SourceFingerprint {
	return SourceFingerprint(NewHash(data))
}

func (f SourceFingerprint) String() string { return Hash(f).String() }

// Short returns a truncated fingerprint for display and logging
func (f SourceFingerprint) Short() string {
	s := string(f)
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
