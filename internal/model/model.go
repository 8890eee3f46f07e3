// Package model defines the domain models for choreboard.
package model

import "fmt"

// Model is the interface that all key-value stored models implement.
type Model interface {
	// GetKey returns the database key for this model.
	GetKey() string
}

// Key prefixes for the key-value backend.
const (
	PrefixUser    = "user"
	PrefixTask    = "task"
	PrefixSeq     = "seq"
	KeySchemaInfo = "schema"
)

// formatKey zero-pads ids so lexicographic key order equals id order.
func formatKey(prefix string, id int64) string {
	return fmt.Sprintf("%s:%020d", prefix, id)
}

// SequenceKey returns the key of the id sequence for a prefix.
func SequenceKey(prefix string) string {
	return PrefixSeq + ":" + prefix
}
