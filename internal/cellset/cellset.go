// Package cellset provides the small set-of-coordinates type shared by the
// matchers, specials, and cascade resolver.
package cellset

import "github.com/mjrix/hexic-engine/internal/hexcore"

// Set is a set of board coordinates.
type Set map[hexcore.Coord]struct{}

// New builds a Set from a slice of coordinates.
func New(coords ...hexcore.Coord) Set {
	s := make(Set, len(coords))
	for _, c := range coords {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts c into the set.
func (s Set) Add(c hexcore.Coord) {
	s[c] = struct{}{}
}

// Has reports whether c is a member.
func (s Set) Has(c hexcore.Coord) bool {
	_, ok := s[c]
	return ok
}

// Union adds every member of other into s.
func (s Set) Union(other Set) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Slice returns the set's members as a slice, in unspecified order.
func (s Set) Slice() []hexcore.Coord {
	out := make([]hexcore.Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	return out
}
