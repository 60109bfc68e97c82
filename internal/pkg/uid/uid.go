// Package uid generates identifiers.
//
// Numeric ids (snowflake) key relational rows; string ids (UUIDv7) are used
// for correlation ids and token ids.
package uid

// NumberID produces unique, roughly time-ordered int64 ids.
type NumberID interface {
	Generate() int64
}

// StringID produces unique string ids.
type StringID interface {
	Generate() string
}
