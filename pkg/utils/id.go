package utils

import (
	"github.com/google/uuid"
)

// ParseID parses a client-supplied identifier. Malformed ids report false so
// callers can treat them like unknown records.
func ParseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
