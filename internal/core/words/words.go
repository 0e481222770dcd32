// Package words provides the canonical word form used across all writers
// Pipeline order
// 1 trim leading and trailing whitespace
// 2 collapse inner whitespace runs to a single space
// 3 title-case each token
// The canonical form must be byte-for-byte deterministic: slate ids are
// hashed from it.
package words

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxLen is the longest accepted canonical word
const MaxLen = 50

var (
	// ErrEmpty is returned when the word is empty after trimming
	ErrEmpty = errors.New("word is empty")

	// ErrTooLong is returned when the canonical form exceeds MaxLen
	ErrTooLong = errors.New("word is too long")
)

// caser pool since cases.Caser carries state and is not concurrency safe
var caserPool = sync.Pool{
	New: func() any {
		c := cases.Title(language.English)
		return &c
	},
}

// Normalize returns the canonical form of w or an error when unusable
func Normalize(w string) (string, error) {
	s := collapseSpaces(strings.TrimSpace(w))
	if s == "" {
		return "", ErrEmpty
	}

	c := caserPool.Get().(*cases.Caser)
	s = c.String(s)
	caserPool.Put(c)

	if len(s) > MaxLen {
		return "", ErrTooLong
	}
	return s, nil
}

// NormalizeAll maps Normalize over xs, dropping entries that fail
func NormalizeAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	seen := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		n, err := Normalize(x)
		if err != nil {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func collapseSpaces(s string) string {
	if !strings.ContainsAny(s, " \t\n\r") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
