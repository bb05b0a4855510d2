package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and timestamps of mutable records.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BaseSimple is Base for records that are never updated after insert.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// NewBase assigns a fresh id and stamps both times with now in UTC.
func NewBase(now time.Time) Base {
	now = now.UTC()
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func NewBaseSimple(now time.Time) BaseSimple {
	b := NewBase(now)
	return BaseSimple{ID: b.ID, CreatedAt: b.CreatedAt}
}
