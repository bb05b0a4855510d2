package utils

import (
	"context"

	"book-review/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  entity.UserRole
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == entity.RoleAdmin
}

// PrincipalFromClaims converts verified claims; nil when the subject id is not a UUID.
func PrincipalFromClaims(c *Claims) *Principal {
	if c == nil {
		return nil
	}
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return nil
	}
	return &Principal{ID: id, Email: c.Email, Role: c.Role}
}

func SetPrincipal(ctx context.Context, p *Principal) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the caller, or nil for anonymous requests.
func GetPrincipal(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
