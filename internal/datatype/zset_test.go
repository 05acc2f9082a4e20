package datatype

import (
	"reflect"
	"testing"
)

func names(members []Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name
	}
	return out
}

func TestSortedSetOrdering(t *testing.T) {
	z := NewSortedSet()
	z.Add("iphone8", 8)
	z.Add("iphone6", 6)
	z.Add("iphone7", 7)
	z.Add("b", 7)
	z.Add("a", 7)

	want := []string{"iphone6", "a", "b", "iphone7", "iphone8"}
	if got := names(z.Range(0, -1)); !reflect.DeepEqual(got, want) {
		t.Errorf("Range(0, -1) = %v, want %v", got, want)
	}

	if r, ok := z.Rank("b"); !ok || r != 2 {
		t.Errorf("Rank(b) = %d, %v, want 2", r, ok)
	}
	if _, ok := z.Rank("missing"); ok {
		t.Errorf("Rank of missing member should report false")
	}
}

func TestSortedSetAddUpdatesScore(t *testing.T) {
	z := NewSortedSet()

	if !z.Add("m", 1) {
		t.Errorf("Add of new member should report true")
	}
	if z.Add("m", 1) {
		t.Errorf("Add with same score should report false")
	}
	if z.Add("m", 10) {
		t.Errorf("Add with new score should report false")
	}
	z.Add("n", 5)

	if s, _ := z.Score("m"); s != 10 {
		t.Errorf("Score(m) = %v, want 10", s)
	}
	if got := names(z.Range(0, -1)); !reflect.DeepEqual(got, []string{"n", "m"}) {
		t.Errorf("Range after score update = %v", got)
	}
	if z.Len() != 2 {
		t.Errorf("Len() = %d, want 2", z.Len())
	}
}

func TestSortedSetCount(t *testing.T) {
	z := NewSortedSet()
	z.Add("iphone6", 6)
	z.Add("iphone7", 7)
	z.Add("iphone8", 8)

	tests := []struct {
		name     string
		min, max float64
		want     int
	}{
		{"inclusive bounds", 6, 7, 2},
		{"all", 0, 100, 3},
		{"single point", 8, 8, 1},
		{"between scores", 6.5, 6.9, 0},
		{"min above max", 8, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := z.Count(tt.min, tt.max); got != tt.want {
				t.Errorf("Count(%v, %v) = %d, want %d", tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestSortedSetRangeAndRemove(t *testing.T) {
	z := NewSortedSet()
	z.Add("iphone6", 6)
	z.Add("iphone7", 7)
	z.Add("iphone8", 8)

	got := z.Range(0, 1)
	want := []Member{{Name: "iphone6", Score: 6}, {Name: "iphone7", Score: 7}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Range(0, 1) = %v, want %v", got, want)
	}
	if got := names(z.Range(-1, -1)); !reflect.DeepEqual(got, []string{"iphone8"}) {
		t.Errorf("Range(-1, -1) = %v", got)
	}
	if got := z.Range(5, 10); len(got) != 0 {
		t.Errorf("Range past the end = %v", got)
	}

	if n := z.Remove("iphone6", "iphone7", "missing"); n != 2 {
		t.Errorf("Remove() = %d, want 2", n)
	}
	if got := names(z.Range(0, -1)); !reflect.DeepEqual(got, []string{"iphone8"}) {
		t.Errorf("Range after Remove = %v", got)
	}
	if _, ok := z.Score("iphone6"); ok {
		t.Errorf("removed member still has a score")
	}
}
