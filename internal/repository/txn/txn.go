// Package txn declares the operations a storage backend offers inside one transaction.
package txn

import (
	"context"
	"time"

	"senior-hub-api/internal/entities"
)

// Tx is the set of operations available inside an atomic block.
type Tx interface {
	// TryAccept moves a PENDING, unexpired invitation to ACCEPTED with usedAt=now.
	// Otherwise it returns the current record unchanged and ok=false.
	// Concurrent callers on one token see ok=true at most once.
	TryAccept(ctx context.Context, token string, now time.Time) (inv *entities.Invitation, ok bool, err error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	// AddMember appends the user to the roster. An existing member is left as is and added=false.
	AddMember(ctx context.Context, teamID, userID, roleID string, now time.Time) (added bool, err error)
}

// Func is the body of an atomic block. A non-nil error rolls the block back.
type Func func(ctx context.Context, tx Tx) error
