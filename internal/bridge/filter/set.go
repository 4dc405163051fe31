package filter

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
)

// DuplicateFilterKindError is returned when a kind is appended twice without
// combining.
type DuplicateFilterKindError struct {
	Kind Kind
}

func (e *DuplicateFilterKindError) Error() string {
	return fmt.Sprintf("filter: %s already present", e.Kind)
}

// Set is an ordered filter list holding at most one entry per kind.
type Set struct {
	items   []Function
	combine Combiner
}

// NewSet creates a set from filters in order. Duplicate kinds fail.
func NewSet(filters ...Function) (*Set, error) {
	s := &Set{combine: Accumulate}
	for _, f := range filters {
		if err := s.Append(f, false); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithCombiner replaces the accumulation used by Append in combine mode.
func (s *Set) WithCombiner(c Combiner) *Set {
	s.combine = c
	return s
}

// Append adds f at the end. If its kind is already present, Append fails
// with *DuplicateFilterKindError unless combine is set, in which case the
// value is merged into the existing entry in place.
func (s *Set) Append(f Function, combine bool) error {
	i := s.index(f.Kind)
	if i < 0 {
		s.items = append(s.items, f)
		return nil
	}
	if !combine {
		return &DuplicateFilterKindError{Kind: f.Kind}
	}
	merge := s.combine
	if merge == nil {
		merge = Accumulate
	}
	s.items[i] = merge(s.items[i], f)
	return nil
}

// Remove drops the entry with the same kind as f.
func (s *Set) Remove(f Function) bool {
	return s.RemoveKind(f.Kind)
}

// RemoveKind drops the entry of kind k.
func (s *Set) RemoveKind(k Kind) bool {
	i := s.index(k)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Contains reports whether an entry of f's kind is present.
func (s *Set) Contains(f Function) bool {
	return s.index(f.Kind) >= 0
}

// ContainsKind reports whether an entry of kind k is present.
func (s *Set) ContainsKind(k Kind) bool {
	return s.index(k) >= 0
}

// Get returns the entry of kind k.
func (s *Set) Get(k Kind) (Function, bool) {
	if i := s.index(k); i >= 0 {
		return s.items[i], true
	}
	return Function{}, false
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.items)
}

// Functions returns a copy of the entries in order.
func (s *Set) Functions() []Function {
	return append([]Function(nil), s.items...)
}

// Each calls fn for every entry in order until fn returns false.
func (s *Set) Each(fn func(Function) bool) {
	for _, f := range s.items {
		if !fn(f) {
			return
		}
	}
}

// Clear removes all entries.
func (s *Set) Clear() {
	s.items = s.items[:0]
}

// String joins the entries with single spaces, e.g. "blur(2px) grayscale(0.5)".
func (s *Set) String() string {
	parts := make([]string, len(s.items))
	for i, f := range s.items {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// JSEval serializes the list as one script string literal, the form the
// CSS filter property expects.
func (s *Set) JSEval() string {
	return jsvalue.Quote(s.String())
}

func (s *Set) index(k Kind) int {
	for i, f := range s.items {
		if f.Kind == k {
			return i
		}
	}
	return -1
}
