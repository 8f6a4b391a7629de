// Package hasher computes SHA-256 digests of text and files and compares a
// file's digest against a reference string.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// DigestLen is the length of a hex-encoded SHA-256 digest.
const DigestLen = sha256.Size * 2

// Digest is a lowercase hex-encoded SHA-256 digest.
type Digest string

func (d Digest) String() string { return string(d) }

// Outcome is the result of comparing a reference hash with a file's digest.
// The zero value is not a valid outcome.
type Outcome int

const (
	Match Outcome = iota + 1
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// HashBytes returns the digest of b.
func HashBytes(b []byte) Digest {
	sum := sha256.Sum256(b)
	return Digest(hex.EncodeToString(sum[:]))
}

// HashText returns the digest of the UTF-8 bytes of s.
func HashText(s string) Digest {
	return HashBytes([]byte(s))
}

// HashFile reads the whole file at path into memory and returns its digest.
// Memory use is proportional to the file size. On failure the returned error
// is the *fs.PathError from the read and no digest is produced.
func HashFile(path string) (Digest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// Compare hashes the file at path and reports whether reference equals the
// digest exactly. No normalization is applied: an uppercase reference is a
// Mismatch. Read errors from HashFile are returned unchanged.
func Compare(reference, path string) (Outcome, error) {
	d, err := HashFile(path)
	if err != nil {
		return 0, err
	}
	if reference == string(d) {
		return Match, nil
	}
	return Mismatch, nil
}

// LooksLikeDigest reports whether s has the shape of a hex SHA-256 digest
// in either case. Compare does not use it.
func LooksLikeDigest(s string) bool {
	if len(s) != DigestLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
