package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a prefixed identifier unique for the life of the process,
// e.g. "meeting_3f2a...". Entity ids are opaque strings and never reused.
func NewID(prefix string) string {
	bytes := make([]byte, 12)
	_, _ = rand.Read(bytes)
	if prefix == "" {
		return hex.EncodeToString(bytes)
	}
	return prefix + "_" + hex.EncodeToString(bytes)
}
