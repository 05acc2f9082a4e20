package datatype

import (
	"cmp"
	"slices"
	"sort"
	"strings"
)

// Member is a sorted set element with its score
type Member struct {
	Name  string
	Score float64
}

// SortedSet keeps unique members ordered by score, ties broken by name.
// scores is the index by name, sorted is the rank order
type SortedSet struct {
	scores map[string]float64
	sorted []Member
}

// NewSortedSet creates an empty SortedSet
func NewSortedSet() *SortedSet {
	return &SortedSet{scores: make(map[string]float64)}
}

func compareMembers(a, b Member) int {
	if c := cmp.Compare(a.Score, b.Score); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// Add inserts name with score, or moves it if it already exists with another score.
// Returns true if the member is new
func (z *SortedSet) Add(name string, score float64) bool {
	old, exists := z.scores[name]
	if exists {
		if old == score {
			return false
		}
		z.removeSorted(Member{Name: name, Score: old})
	}

	m := Member{Name: name, Score: score}
	i, _ := slices.BinarySearchFunc(z.sorted, m, compareMembers)
	z.sorted = slices.Insert(z.sorted, i, m)
	z.scores[name] = score

	return !exists
}

// Remove deletes the named members and returns how many were present
func (z *SortedSet) Remove(names ...string) int {
	removed := 0
	for _, name := range names {
		score, ok := z.scores[name]
		if !ok {
			continue
		}
		z.removeSorted(Member{Name: name, Score: score})
		delete(z.scores, name)
		removed++
	}
	return removed
}

func (z *SortedSet) removeSorted(m Member) {
	if i, found := slices.BinarySearchFunc(z.sorted, m, compareMembers); found {
		z.sorted = slices.Delete(z.sorted, i, i+1)
	}
}

// Count returns the number of members with minScore <= score <= maxScore
func (z *SortedSet) Count(minScore, maxScore float64) int {
	if minScore > maxScore {
		return 0
	}
	lo := sort.Search(len(z.sorted), func(i int) bool { return z.sorted[i].Score >= minScore })
	hi := sort.Search(len(z.sorted), func(i int) bool { return z.sorted[i].Score > maxScore })
	return hi - lo
}

// Range returns members by rank between start and end inclusive.
// Negative ranks count from the highest score, -1 being the last member
func (z *SortedSet) Range(start, end int) []Member {
	lo, hi, ok := normalizeRange(start, end, len(z.sorted))
	if !ok {
		return []Member{}
	}
	return slices.Clone(z.sorted[lo : hi+1])
}

// Score returns the score of name
func (z *SortedSet) Score(name string) (float64, bool) {
	s, ok := z.scores[name]
	return s, ok
}

// Rank returns the 0-based position of name in ascending score order
func (z *SortedSet) Rank(name string) (int, bool) {
	score, ok := z.scores[name]
	if !ok {
		return 0, false
	}
	i, _ := slices.BinarySearchFunc(z.sorted, Member{Name: name, Score: score}, compareMembers)
	return i, true
}

// Len returns the number of members
func (z *SortedSet) Len() int {
	return len(z.sorted)
}
