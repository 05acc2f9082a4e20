package datatype

import "sort"

// Set is a collection of unique strings
type Set struct {
	members map[string]struct{}
}

// NewSet creates an empty Set
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Add inserts members and returns how many were not already present
func (s *Set) Add(members ...string) int {
	added := 0
	for _, m := range members {
		if _, ok := s.members[m]; !ok {
			s.members[m] = struct{}{}
			added++
		}
	}
	return added
}

// Remove deletes members and returns how many were present
func (s *Set) Remove(members ...string) int {
	removed := 0
	for _, m := range members {
		if _, ok := s.members[m]; ok {
			delete(s.members, m)
			removed++
		}
	}
	return removed
}

// IsMember reports whether m belongs to the set
func (s *Set) IsMember(m string) bool {
	_, ok := s.members[m]
	return ok
}

// Members returns all members in lexical order
func (s *Set) Members() []string {
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Pop removes and returns up to count arbitrary members
func (s *Set) Pop(count int) []string {
	if count > len(s.members) {
		count = len(s.members)
	}

	out := make([]string, 0, count)
	for m := range s.members {
		if len(out) == count {
			break
		}
		delete(s.members, m)
		out = append(out, m)
	}
	return out
}

// Len returns the number of members
func (s *Set) Len() int {
	return len(s.members)
}
