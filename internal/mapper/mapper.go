// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"strings"

	"senior-hub-api/internal/dto"
	"senior-hub-api/internal/entities"
)

// FromCreateUser builds an entities.User from transport DTO.
func FromCreateUser(src dto.CreateUserRequest) entities.User {
	return entities.User{ID: src.UserID, Email: src.Email, Name: src.Name}
}

// FromCreateTeam builds an entities.Team from transport DTO.
func FromCreateTeam(src dto.CreateTeamRequest) entities.Team {
	members := make([]entities.Member, 0, len(src.Members))
	for _, m := range src.Members {
		members = append(members, entities.Member{UserID: m.UserID, RoleSlug: m.Role})
	}

	return entities.Team{
		ID:      src.TeamID,
		Name:    src.Name,
		Members: members,
	}
}

// FromCreateInvitation builds an entities.InviteRequest from transport DTO.
func FromCreateInvitation(teamID string, src dto.CreateInvitationRequest) entities.InviteRequest {
	return entities.InviteRequest{
		TeamID:    teamID,
		InviterID: src.InviterID,
		RoleSlug:  src.Role,
		Email:     src.Email,
	}
}

// ToInvitation maps entities.InviteReport to transport model.
func ToInvitation(rep entities.InviteReport) dto.Invitation {
	return dto.Invitation{
		InvitationID: rep.InvitationID,
		Token:        rep.Token,
		Email:        rep.Email,
		Link:         rep.Link,
		ExpiresAt:    rep.ExpiresAt,
		Delivery: dto.Delivery{
			MessageID: rep.Delivery.MessageID,
			Channel:   rep.Delivery.Channel,
			Recipient: rep.Delivery.Recipient,
			SentAt:    rep.Delivery.SentAt,
		},
	}
}

// ToInvitationView maps entities.InvitationView to transport model.
func ToInvitationView(v entities.InvitationView) dto.InvitationView {
	return dto.InvitationView{
		Email:     v.Email,
		Status:    strings.ToLower(string(v.Status)),
		Team:      dto.TeamRef{TeamID: v.Team.ID, Name: v.Team.Name},
		Role:      dto.Role{Slug: v.Role.Slug, Name: v.Role.Name, Description: v.Role.Description},
		Inviter:   ToUser(v.Inviter),
		ExpiresAt: v.ExpiresAt,
	}
}

// ToAcceptResult maps entities.AcceptReport to transport model.
func ToAcceptResult(rep entities.AcceptReport) dto.AcceptResult {
	return dto.AcceptResult{
		Message:    rep.Message,
		TeamID:     rep.TeamID,
		UserID:     rep.UserID,
		Role:       rep.RoleSlug,
		AcceptedAt: rep.AcceptedAt,
		Added:      rep.Added,
	}
}

// ToUser maps entities.User to transport model.
func ToUser(u entities.User) dto.User {
	return dto.User{UserID: u.ID, Name: u.Name, Email: u.Email}
}

// ToTeam maps entities.Team to transport model.
func ToTeam(team entities.Team) dto.Team {
	members := make([]dto.TeamMember, 0, len(team.Members))
	for _, m := range team.Members {
		members = append(members, dto.TeamMember{
			UserID:   m.UserID,
			Name:     m.Name,
			Email:    m.Email,
			Role:     m.RoleSlug,
			JoinedAt: m.JoinedAt,
		})
	}

	return dto.Team{
		TeamID:  team.ID,
		Name:    team.Name,
		Members: members,
	}
}
