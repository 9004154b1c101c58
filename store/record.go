package store

// Attribute names managed by the users API. Every other field of a record is
// stored as submitted.
const (
	// KeyUserID is the partition key of the users table.
	KeyUserID = "userid"

	// KeyTimestamp holds the ISO 8601 time of the last write.
	KeyTimestamp = "timestamp"
)

// Record is a single user item. The schema is open: values are whatever
// encoding/json produces for an object (string, float64, bool, nil,
// map[string]any, []any).
type Record map[string]any

// UserID returns the record's userid, or "" when it is missing or not a string.
func (r Record) UserID() string {
	id, _ := r[KeyUserID].(string)
	return id
}

// HasUserID reports whether the record carries a userid key at all,
// regardless of its value.
func (r Record) HasUserID() bool {
	_, ok := r[KeyUserID]
	return ok
}
