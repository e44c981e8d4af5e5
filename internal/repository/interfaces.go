// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"senior-hub-api/internal/entities"
	"senior-hub-api/internal/repository/txn"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes account provisioning and lookups.
type UserInterface interface {
	// CreateUser returns entities.ErrAlreadyExists when the id or email is taken.
	CreateUser(ctx context.Context, u entities.User) error
	GetUser(ctx context.Context, userID string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TeamInterface exposes team creation and team and role lookups.
type TeamInterface interface {
	// CreateTeam inserts the team with its initial roster in one step.
	// Unknown member accounts yield NotFound("user"), unknown role slugs entities.ErrInvalidRole.
	CreateTeam(ctx context.Context, team entities.Team) error
	GetTeam(ctx context.Context, teamID string) (*entities.Team, error)
	GetRole(ctx context.Context, roleID string) (*entities.Role, error)
	GetRoleBySlug(ctx context.Context, slug string) (*entities.Role, error)
}

// InvitationInterface exposes invitation persistence.
type InvitationInterface interface {
	// CreateInvitation returns entities.ErrDuplicateToken when the token is taken.
	CreateInvitation(ctx context.Context, inv entities.Invitation) error
	GetInvitation(ctx context.Context, token string) (*entities.Invitation, error)
	// Atomic runs fn in one transaction. A non-nil error from fn rolls it back.
	Atomic(ctx context.Context, fn txn.Func) error
}

// Tx is the set of operations available inside Atomic.
type Tx = txn.Tx
