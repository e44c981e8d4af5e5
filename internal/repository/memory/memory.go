// Package memory implements the repository in process memory.
// It is meant for a single instance: development runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"senior-hub-api/internal/entities"
	"senior-hub-api/internal/repository/txn"

	"go.uber.org/zap"
)

type membership struct {
	roleID   string
	joinedAt time.Time
}

// Memory keeps users, teams, roles and invitations in maps guarded by one mutex.
type Memory struct {
	log *zap.SugaredLogger

	mu          sync.Mutex
	users       map[string]entities.User
	teams       map[string]string
	roles       map[string]entities.Role
	members     map[string]map[string]membership
	invitations map[string]entities.Invitation
}

// New returns an empty store seeded with the default roles.
func New(log *zap.SugaredLogger) *Memory {
	m := &Memory{
		log:         log.Named("repo.memory"),
		users:       make(map[string]entities.User),
		teams:       make(map[string]string),
		roles:       make(map[string]entities.Role),
		members:     make(map[string]map[string]membership),
		invitations: make(map[string]entities.Invitation),
	}
	for _, r := range []entities.Role{
		{ID: "role-owner", Slug: "owner", Name: "Owner", Description: "Manages the team and its members"},
		{ID: "role-admin", Slug: "admin", Name: "Admin", Description: "Invites and manages members"},
		{ID: "role-member", Slug: "member", Name: "Member", Description: "Regular team member"},
	} {
		m.roles[r.ID] = r
	}
	return m
}

// OnStart is a no-op.
func (m *Memory) OnStart(_ context.Context) error {
	m.log.Infow("memory repository ready")
	return nil
}

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error { return nil }

// CreateUser inserts an account.
func (m *Memory) CreateUser(_ context.Context, u entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.Email = strings.ToLower(u.Email)
	if _, ok := m.users[u.ID]; ok {
		return fmt.Errorf("%w: user %s", entities.ErrAlreadyExists, u.ID)
	}
	if _, ok := m.userByEmail(u.Email); ok {
		return fmt.Errorf("%w: email %s", entities.ErrAlreadyExists, u.Email)
	}
	m.users[u.ID] = u
	return nil
}

// CreateTeam inserts a team with its initial members.
func (m *Memory) CreateTeam(_ context.Context, team entities.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.teams[team.ID]; ok {
		return fmt.Errorf("%w: team %s", entities.ErrAlreadyExists, team.ID)
	}
	roster := make(map[string]membership, len(team.Members))
	for _, mem := range team.Members {
		if _, ok := m.users[mem.UserID]; !ok {
			return entities.NotFound(entities.ResourceUser, mem.UserID)
		}
		role, ok := m.roleBySlug(mem.RoleSlug)
		if !ok {
			return fmt.Errorf("%w: %q", entities.ErrInvalidRole, mem.RoleSlug)
		}
		joined := mem.JoinedAt
		if joined.IsZero() {
			joined = time.Now().UTC()
		}
		roster[mem.UserID] = membership{roleID: role.ID, joinedAt: joined}
	}
	m.teams[team.ID] = team.Name
	m.members[team.ID] = roster
	return nil
}

// GetUser fetches an account by id.
func (m *Memory) GetUser(_ context.Context, userID string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, entities.NotFound(entities.ResourceUser, userID)
	}
	return &u, nil
}

// GetUserByEmail fetches an account by case-insensitive email.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.userByEmail(email)
	if !ok {
		return nil, entities.NotFound(entities.ResourceUser, email)
	}
	return &u, nil
}

// GetTeam returns the team and a copy of its roster.
func (m *Memory) GetTeam(_ context.Context, teamID string) (*entities.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name, ok := m.teams[teamID]
	if !ok {
		return nil, entities.NotFound(entities.ResourceTeam, teamID)
	}

	team := entities.Team{ID: teamID, Name: name, Members: make([]entities.Member, 0, len(m.members[teamID]))}
	for userID, ms := range m.members[teamID] {
		u := m.users[userID]
		team.Members = append(team.Members, entities.Member{
			UserID:   userID,
			Email:    u.Email,
			Name:     u.Name,
			RoleSlug: m.roles[ms.roleID].Slug,
			JoinedAt: ms.joinedAt,
		})
	}
	sort.Slice(team.Members, func(i, j int) bool {
		a, b := team.Members[i], team.Members[j]
		if a.JoinedAt.Equal(b.JoinedAt) {
			return a.UserID < b.UserID
		}
		return a.JoinedAt.Before(b.JoinedAt)
	})
	return &team, nil
}

// GetRole fetches a role by id.
func (m *Memory) GetRole(_ context.Context, roleID string) (*entities.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.roles[roleID]
	if !ok {
		return nil, entities.NotFound(entities.ResourceRole, roleID)
	}
	return &r, nil
}

// GetRoleBySlug resolves a role slug.
func (m *Memory) GetRoleBySlug(_ context.Context, slug string) (*entities.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.roleBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidRole, slug)
	}
	return &r, nil
}

// CreateInvitation stores a new invitation.
func (m *Memory) CreateInvitation(_ context.Context, inv entities.Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !inv.Consistent() {
		return fmt.Errorf("%w: used_at must be set exactly when accepted", entities.ErrInvalidArgument)
	}
	if _, ok := m.invitations[inv.Token]; ok {
		return entities.ErrDuplicateToken
	}
	m.invitations[inv.Token] = inv
	m.log.Infow("invitation created", "invitation_id", inv.ID, "team_id", inv.TeamID)
	return nil
}

// GetInvitation fetches an invitation by token.
func (m *Memory) GetInvitation(_ context.Context, token string) (*entities.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.invitations[token]
	if !ok {
		return nil, entities.NotFound(entities.ResourceInvitation, "")
	}
	return &inv, nil
}

// Atomic holds the store lock for the whole block and applies staged writes only when fn succeeds.
func (m *Memory) Atomic(ctx context.Context, fn txn.Func) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{m: m, invitations: make(map[string]entities.Invitation), members: make(map[string]map[string]membership)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for token, inv := range tx.invitations {
		m.invitations[token] = inv
	}
	for teamID, added := range tx.members {
		if m.members[teamID] == nil {
			m.members[teamID] = make(map[string]membership)
		}
		for userID, ms := range added {
			m.members[teamID][userID] = ms
		}
	}
	return nil
}

func (m *Memory) userByEmail(email string) (entities.User, bool) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return entities.User{}, false
}

func (m *Memory) roleBySlug(slug string) (entities.Role, bool) {
	for _, r := range m.roles {
		if r.Slug == slug {
			return r, true
		}
	}
	return entities.Role{}, false
}

// memTx stages writes; the caller holds m.mu.
type memTx struct {
	m           *Memory
	invitations map[string]entities.Invitation
	members     map[string]map[string]membership
}

func (t *memTx) TryAccept(_ context.Context, token string, now time.Time) (*entities.Invitation, bool, error) {
	inv, ok := t.invitations[token]
	if !ok {
		inv, ok = t.m.invitations[token]
	}
	if !ok {
		return nil, false, entities.NotFound(entities.ResourceInvitation, "")
	}
	if inv.Status != entities.InvitationPending || inv.ExpiredAt(now) {
		return &inv, false, nil
	}

	used := now
	inv.Status = entities.InvitationAccepted
	inv.UsedAt = &used
	t.invitations[token] = inv
	return &inv, true, nil
}

func (t *memTx) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	u, ok := t.m.userByEmail(email)
	if !ok {
		return nil, entities.NotFound(entities.ResourceUser, email)
	}
	return &u, nil
}

func (t *memTx) AddMember(_ context.Context, teamID, userID, roleID string, now time.Time) (bool, error) {
	if _, ok := t.m.teams[teamID]; !ok {
		return false, entities.NotFound(entities.ResourceTeam, teamID)
	}
	if _, ok := t.m.members[teamID][userID]; ok {
		return false, nil
	}
	if _, ok := t.members[teamID][userID]; ok {
		return false, nil
	}
	if t.members[teamID] == nil {
		t.members[teamID] = make(map[string]membership)
	}
	t.members[teamID][userID] = membership{roleID: roleID, joinedAt: now}
	return true, nil
}
