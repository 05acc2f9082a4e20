// Package datatype holds the payloads stored behind a key and the operations on them.
// Nothing here locks or knows about expiry; callers serialize access per key.
package datatype
