package storage

// DataType tags the payload held by an Entity
type DataType byte

const (
	TypeNone DataType = iota
	TypeString
	TypeList
	TypeSet
	TypeHash
	TypeZSet
)

// String returns the type name as reported by the TYPE command
func (t DataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeSet:
		return "set"
	case TypeHash:
		return "hash"
	case TypeZSet:
		return "zset"
	default:
		return "none"
	}
}

// Entity generic container for value
type Entity struct {
	Type     DataType
	Value    interface{}
	ExpireAt int64 // Unix nanoseconds. 0 means no TTL
}

// Expired reports whether the entity has a TTL that is at or before now
func (e *Entity) Expired(now int64) bool {
	return e.ExpireAt != 0 && now >= e.ExpireAt
}
