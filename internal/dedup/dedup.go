package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// Hash returns the stable content hash for a listing, computed over the
// normalized title and company.
func Hash(title, company string) string {
	sum := sha256.Sum256([]byte(normalize(title) + "|" + normalize(company)))
	return hex.EncodeToString(sum[:])
}

// Filter rejects listings already seen in the current ingestion run. It is
// scoped to a single population cycle and never shared across runs, so no
// locking is needed.
type Filter struct {
	seen       map[string]struct{}
	duplicates int
}

func NewFilter() *Filter {
	return &Filter{seen: make(map[string]struct{})}
}

// ShouldIngest reports whether a listing with the given title and company has
// not been seen yet in this run, recording it as seen when it has not.
func (f *Filter) ShouldIngest(title, company string) bool {
	if f == nil {
		return true
	}
	h := Hash(title, company)
	if _, ok := f.seen[h]; ok {
		f.duplicates++
		return false
	}
	f.seen[h] = struct{}{}
	return true
}

// Duplicates returns how many listings were rejected so far.
func (f *Filter) Duplicates() int {
	if f == nil {
		return 0
	}
	return f.duplicates
}

// Accepted returns how many distinct listings passed the filter so far.
func (f *Filter) Accepted() int {
	if f == nil {
		return 0
	}
	return len(f.seen)
}
