package datatype

// Hash maps field names to string values
type Hash struct {
	fields map[string]string
}

// NewHash creates an empty Hash
func NewHash() *Hash {
	return &Hash{fields: make(map[string]string)}
}

// Put sets field to value. Returns true if the field is new
func (h *Hash) Put(field, value string) bool {
	_, exists := h.fields[field]
	h.fields[field] = value
	return !exists
}

// Get returns the value associated with field
func (h *Hash) Get(field string) (string, bool) {
	v, ok := h.fields[field]
	return v, ok
}

// Exists reports whether field is present
func (h *Hash) Exists(field string) bool {
	_, ok := h.fields[field]
	return ok
}

// Delete removes the given fields and returns how many were present
func (h *Hash) Delete(fields ...string) int {
	removed := 0
	for _, f := range fields {
		if _, ok := h.fields[f]; ok {
			delete(h.fields, f)
			removed++
		}
	}
	return removed
}

// Entries returns a copy of all fields and values
func (h *Hash) Entries() map[string]string {
	out := make(map[string]string, len(h.fields))
	for f, v := range h.fields {
		out[f] = v
	}
	return out
}

// Len returns the number of fields
func (h *Hash) Len() int {
	return len(h.fields)
}
