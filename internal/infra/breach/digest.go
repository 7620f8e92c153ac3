package breach

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ReferenceSet is the built-in placeholder list of leaked passwords.
var ReferenceSet = []string{"password123", "admin123", "qwerty123"}

// Digest returns the lowercase hex SHA-256 of a password.
// Backends only ever store and compare digests.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// ReadCorpus parses a newline-delimited corpus and calls fn with the digest
// of each non-empty line. Lines prefixed "sha256:" are taken as digests
// already. Bad lines are collected and reported together.
func ReadCorpus(r io.Reader, fn func(digest string) error) (int, error) {
	var (
		result *multierror.Error
		n      int
		line   int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		entry := strings.TrimRight(sc.Text(), "\r")
		if entry == "" {
			continue
		}
		digest, err := normalize(entry)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if err := fn(digest); err != nil {
			result = multierror.Append(result, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		n++
	}
	if err := sc.Err(); err != nil {
		result = multierror.Append(result, fmt.Errorf("read corpus: %w", err))
	}
	return n, result.ErrorOrNil()
}

func normalize(entry string) (string, error) {
	if !strings.HasPrefix(entry, "sha256:") {
		return Digest(entry), nil
	}
	d := strings.ToLower(strings.TrimPrefix(entry, "sha256:"))
	if len(d) != sha256.Size*2 {
		return "", fmt.Errorf("digest must be %d hex chars", sha256.Size*2)
	}
	if _, err := hex.DecodeString(d); err != nil {
		return "", fmt.Errorf("invalid digest: %w", err)
	}
	return d, nil
}
