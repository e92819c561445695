package ports

import (
	"context"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

// RoleRegistry resolves and mutates the persisted role sets. Absence from
// every set resolves to guest; resolution prefers developer over admin over
// user when an id appears in several sets.
type RoleRegistry interface {
	Resolve(ctx context.Context, id int64) domain.Role
	// Grant adds id to the given role set. Idempotent.
	Grant(ctx context.Context, id int64, role domain.Role) error
	// Revoke removes id from one role set and reports whether it was present.
	Revoke(ctx context.Context, id int64, role domain.Role) (bool, error)
	// RevokeAll removes id from every role set and reports whether any
	// removal occurred.
	RevokeAll(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) (map[domain.Role][]int64, error)
}
