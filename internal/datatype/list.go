package datatype

// List is an ordered sequence of strings. items[0] is the head (left end)
type List struct {
	items []string
}

// NewList creates an empty List
func NewList() *List {
	return &List{}
}

// PushLeft inserts values at the head one after another, so the last value ends up first.
// Returns the new length
func (l *List) PushLeft(values ...string) int {
	items := make([]string, len(values), len(values)+len(l.items))
	for i, v := range values {
		items[len(values)-1-i] = v
	}
	l.items = append(items, l.items...)
	return len(l.items)
}

// PushRight appends values at the tail. Returns the new length
func (l *List) PushRight(values ...string) int {
	l.items = append(l.items, values...)
	return len(l.items)
}

// PopLeft removes and returns the head
func (l *List) PopLeft() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	v := l.items[0]
	l.items[0] = ""
	l.items = l.items[1:]
	return v, true
}

// PopRight removes and returns the tail
func (l *List) PopRight() (string, bool) {
	n := len(l.items)
	if n == 0 {
		return "", false
	}
	v := l.items[n-1]
	l.items[n-1] = ""
	l.items = l.items[:n-1]
	return v, true
}

// Range returns the elements between start and end inclusive.
// Negative indices count from the tail, -1 being the last element
func (l *List) Range(start, end int) []string {
	lo, hi, ok := normalizeRange(start, end, len(l.items))
	if !ok {
		return []string{}
	}

	out := make([]string, hi-lo+1)
	copy(out, l.items[lo:hi+1])
	return out
}

// Len returns the number of elements
func (l *List) Len() int {
	return len(l.items)
}

// normalizeRange turns inclusive, possibly negative, indices into bounds within [0, n).
// ok is false when the range selects nothing
func normalizeRange(start, end, n int) (int, int, bool) {
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end || start >= n {
		return 0, 0, false
	}
	return start, end, true
}
