package mapper

import (
	"testing"
	"time"

	"senior-hub-api/internal/dto"
	"senior-hub-api/internal/entities"

	"github.com/stretchr/testify/require"
)

func TestToInvitationView(t *testing.T) {
	exp := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	got := ToInvitationView(entities.InvitationView{
		Token:     "secret",
		Email:     "a@x.com",
		Status:    entities.InvitationPending,
		Team:      entities.Team{ID: "T1", Name: "Care", Members: []entities.Member{{UserID: "U1"}}},
		Role:      entities.Role{ID: "role-member", Slug: "member", Name: "Member"},
		Inviter:   entities.User{ID: "U1", Name: "Olivia", Email: "o@x.com"},
		ExpiresAt: exp,
	})

	require.Equal(t, dto.InvitationView{
		Email:     "a@x.com",
		Status:    "pending",
		Team:      dto.TeamRef{TeamID: "T1", Name: "Care"},
		Role:      dto.Role{Slug: "member", Name: "Member"},
		Inviter:   dto.User{UserID: "U1", Name: "Olivia", Email: "o@x.com"},
		ExpiresAt: exp,
	}, got)
}

func TestToTeamEmptyRoster(t *testing.T) {
	got := ToTeam(entities.Team{ID: "T1", Name: "Care"})
	require.NotNil(t, got.Members)
	require.Empty(t, got.Members)
}

func TestFromCreateInvitation(t *testing.T) {
	req := FromCreateInvitation("T1", dto.CreateInvitationRequest{InviterID: "U1", Role: "admin", Email: "a@x.com"})
	require.Equal(t, entities.InviteRequest{TeamID: "T1", InviterID: "U1", RoleSlug: "admin", Email: "a@x.com"}, req)
}

func TestFromCreateTeam(t *testing.T) {
	got := FromCreateTeam(dto.CreateTeamRequest{TeamID: "T1", Name: "Care", Members: []dto.CreateTeamMember{
		{UserID: "U1", Role: "owner"},
	}})
	require.Equal(t, entities.Team{ID: "T1", Name: "Care", Members: []entities.Member{{UserID: "U1", RoleSlug: "owner"}}}, got)
}
