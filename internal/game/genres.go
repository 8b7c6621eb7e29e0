package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/jfmyers9/lyricmatch/internal/session"
)

// GenreSet is a set of genre ids with sorted iteration order.
// The zero value is an empty set ready to use.
type GenreSet struct {
	ids map[string]struct{}
}

// NewGenreSet returns a set holding ids.
func NewGenreSet(ids ...string) GenreSet {
	var s GenreSet
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set.
func (s *GenreSet) Add(id string) {
	if id == "" {
		return
	}
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Toggle flips membership of id and reports whether it is now present.
func (s *GenreSet) Toggle(id string) bool {
	if s.Has(id) {
		delete(s.ids, id)
		return false
	}
	s.Add(id)
	return s.Has(id)
}

// Has reports whether id is in the set.
func (s GenreSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids in the set.
func (s GenreSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in sorted order, or nil when empty.
func (s GenreSet) IDs() []string {
	if len(s.ids) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy of the set.
func (s GenreSet) Clone() GenreSet {
	return NewGenreSet(s.IDs()...)
}

// Catalog is the ordered list of genres offered by the service.
type Catalog []session.Genre

// Name returns the display name for id, or id itself when unknown.
func (c Catalog) Name(id string) string {
	for _, g := range c {
		if g.ID == id {
			return g.Name
		}
	}
	return id
}

// Resolve maps a user-supplied genre id or name onto a catalog id.
// Exact id matches win, then case-insensitive id or name matches, then the
// closest name within a small edit distance.
func (c Catalog) Resolve(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", fmt.Errorf("empty genre")
	}

	for _, g := range c {
		if g.ID == q {
			return g.ID, nil
		}
	}

	lower := strings.ToLower(q)
	for _, g := range c {
		if strings.ToLower(g.ID) == lower || strings.ToLower(g.Name) == lower {
			return g.ID, nil
		}
	}

	best, bestDist := "", -1
	for _, g := range c {
		for _, cand := range []string{strings.ToLower(g.Name), strings.ToLower(g.ID)} {
			dist := levenshtein.ComputeDistance(lower, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			if bestDist == -1 || dist < bestDist {
				best, bestDist = g.ID, dist
			}
		}
	}
	if bestDist >= 0 {
		return best, nil
	}

	return "", fmt.Errorf("unknown genre %q", query)
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
