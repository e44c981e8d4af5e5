package usecase

import (
	"context"

	"senior-hub-api/internal/entities"
)

// InvitationUsecaseInterface abstracts the invitation lifecycle for the delivery layer.
type InvitationUsecaseInterface interface {
	Invite(ctx context.Context, req entities.InviteRequest) (*entities.InviteReport, error)
	Validate(ctx context.Context, token string) (*entities.InvitationView, error)
	Accept(ctx context.Context, token string) (*entities.AcceptReport, error)
}

// TeamUsecaseInterface abstracts team-related operations.
type TeamUsecaseInterface interface {
	CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error)
	Team(ctx context.Context, teamID string) (*entities.Team, error)
}

// UserUsecaseInterface abstracts account provisioning.
type UserUsecaseInterface interface {
	CreateUser(ctx context.Context, usr entities.User) (*entities.User, error)
}
