// Package stamp produces the values the users API writes into managed fields.
package stamp

import (
	"time"

	"github.com/google/uuid"
)

// UserID returns a new time-based (version 1) UUID string.
func UserID() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Timestamp formats t as an ISO 8601 string in UTC with sub-second precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
