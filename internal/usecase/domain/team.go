// Package domain contains application Usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"fmt"
	"strings"

	"senior-hub-api/internal/entities"
)

// CreateTeam creates a team with its initial roster and returns it as stored.
func (u *Usecase) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	team.ID = strings.TrimSpace(team.ID)
	team.Name = strings.TrimSpace(team.Name)
	if team.ID == "" || team.Name == "" {
		return nil, fmt.Errorf("%w: team_id and name are required", entities.ErrInvalidArgument)
	}

	seen := make(map[string]struct{}, len(team.Members))
	for i := range team.Members {
		m := &team.Members[i]
		m.UserID = strings.TrimSpace(m.UserID)
		m.RoleSlug = strings.ToLower(strings.TrimSpace(m.RoleSlug))
		if m.UserID == "" {
			return nil, fmt.Errorf("%w: member user_id is required", entities.ErrInvalidArgument)
		}
		if m.RoleSlug == "" {
			return nil, fmt.Errorf("%w: role is required for member %s", entities.ErrInvalidRole, m.UserID)
		}
		if _, dup := seen[m.UserID]; dup {
			return nil, fmt.Errorf("%w: member %s listed twice", entities.ErrInvalidArgument, m.UserID)
		}
		seen[m.UserID] = struct{}{}
		m.JoinedAt = u.now()
	}

	if err := u.repo.CreateTeam(ctx, team); err != nil {
		u.log.Infow("failed to create team", "error", err, "team_id", team.ID)
		return nil, err
	}
	return u.repo.GetTeam(ctx, team.ID)
}

// Team returns the team with its roster.
func (u *Usecase) Team(ctx context.Context, teamID string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetTeam(ctx, teamID)
}
