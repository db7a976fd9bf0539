// Package setutil provides small helpers for working with id collections.
package setutil

import "sort"

// UintSet is a set of uint ids.
type UintSet struct {
	items map[uint]struct{}
}

// NewUintSet creates a set holding ids.
func NewUintSet(ids ...uint) *UintSet {
	s := &UintSet{items: make(map[uint]struct{}, len(ids))}
	s.AddAll(ids)
	return s
}

func (s *UintSet) Add(id uint) {
	s.items[id] = struct{}{}
}

func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
}

func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

func (s *UintSet) Len() int {
	return len(s.items)
}

// Sorted returns the ids in ascending order.
func (s *UintSet) Sorted() []uint {
	result := make([]uint, 0, len(s.items))
	for id := range s.items {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Missing returns the ids of s that are absent from found, ascending.
func (s *UintSet) Missing(found []uint) []uint {
	seen := NewUintSet(found...)
	var missing []uint
	for _, id := range s.Sorted() {
		if !seen.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// Dedupe returns ids without duplicates, preserving first occurrence order.
func Dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
