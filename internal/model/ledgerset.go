package model

import "sort"

// LedgerSet tracks ledger master names already known to exist in Tally.
// The caller owns the set: it is read and appended to in place during one
// encode call, and the caller decides whether to persist the result.
// Not safe for concurrent use; concurrent encodes need separate sets.
type LedgerSet struct {
	names map[string]struct{}
}

// NewLedgerSet creates a set seeded with the given names.
func NewLedgerSet(names ...string) *LedgerSet {
	s := &LedgerSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is already known.
func (s *LedgerSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Add marks name as known. Adding an existing name is a no-op.
func (s *LedgerSet) Add(name string) {
	s.names[name] = struct{}{}
}

// Len returns the number of known names.
func (s *LedgerSet) Len() int {
	return len(s.names)
}

// Names returns the known names in sorted order.
func (s *LedgerSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
