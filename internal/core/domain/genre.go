package domain

import (
	"sort"
	"strings"
)

// GenreSet is the fixed vocabulary the genre classifier is allowed to
// answer from. Entries are normalized to lowercase on construction and the
// set is read-only afterwards, so it is safe for concurrent use.
type GenreSet struct {
	members map[string]struct{}
	sorted  []string
}

// NewGenreSet builds a GenreSet from raw vocabulary entries. Empty and
// duplicate entries are dropped; casing and insertion order are irrelevant.
func NewGenreSet(genres []string) *GenreSet {
	members := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		members[g] = struct{}{}
	}
	sorted := make([]string, 0, len(members))
	for g := range members {
		sorted = append(sorted, g)
	}
	sort.Strings(sorted)
	return &GenreSet{members: members, sorted: sorted}
}

// Contains reports whether genre is in the vocabulary, ignoring case.
func (s *GenreSet) Contains(genre string) bool {
	_, ok := s.members[strings.ToLower(strings.TrimSpace(genre))]
	return ok
}

// Sorted returns the vocabulary in lexical order. Callers must not modify
// the returned slice.
func (s *GenreSet) Sorted() []string {
	return s.sorted
}

// Len returns the vocabulary size.
func (s *GenreSet) Len() int {
	return len(s.members)
}
