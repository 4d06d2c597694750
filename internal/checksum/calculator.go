package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Calculator is an interface for computing content digests.
// This abstraction allows for different digest strategies and algorithms.
type Calculator interface {
	// Sum computes a digest of the raw, unmodified content.
	Sum(content []byte) string

	// SumLines computes a digest over an ordered sequence of lines.
	// The same lines in a different order produce a different digest.
	SumLines(lines []string) string
}

// SHA256 implements digest calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Using value semantics (pass by value) eliminates heap
// allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
// Returns by value to avoid heap allocation (SHA256 is a zero-size type).
func New() SHA256 {
	return SHA256{}
}

// Sum computes SHA-256 of raw content.
func (c SHA256) Sum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// SumLines computes SHA-256 over lines joined with newlines.
func (c SHA256) SumLines(lines []string) string {
	return c.Sum([]byte(strings.Join(lines, "\n")))
}
