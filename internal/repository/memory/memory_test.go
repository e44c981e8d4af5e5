package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"senior-hub-api/internal/entities"
	"senior-hub-api/internal/repository/txn"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *Memory {
	t.Helper()
	ctx := context.Background()
	m := New(zap.NewNop().Sugar())

	require.NoError(t, m.CreateUser(ctx, entities.User{ID: "U1", Email: "owner@x.com", Name: "Owner"}))
	require.NoError(t, m.CreateUser(ctx, entities.User{ID: "U2", Email: "A@x.com", Name: "Alice"}))
	require.NoError(t, m.CreateTeam(ctx, entities.Team{ID: "T1", Name: "Care", Members: []entities.Member{
		{UserID: "U1", RoleSlug: "owner", JoinedAt: t0},
	}}))
	require.NoError(t, m.CreateInvitation(ctx, entities.Invitation{
		ID: "I1", Token: "tok", Email: "a@x.com", TeamID: "T1", InviterID: "U1", RoleID: "role-member",
		Status: entities.InvitationPending, CreatedAt: t0, ExpiresAt: t0.Add(time.Hour),
	}))
	return m
}

func TestCreateInvitationDuplicateToken(t *testing.T) {
	m := seeded(t)
	err := m.CreateInvitation(context.Background(), entities.Invitation{ID: "I2", Token: "tok"})
	require.ErrorIs(t, err, entities.ErrDuplicateToken)
}

func TestCreateInvitationRejectsStrayUsedAt(t *testing.T) {
	m := seeded(t)
	used := t0
	err := m.CreateInvitation(context.Background(), entities.Invitation{
		ID: "I2", Token: "tok-2", Status: entities.InvitationPending, ExpiresAt: t0.Add(time.Hour), UsedAt: &used,
	})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = m.GetInvitation(context.Background(), "tok-2")
	require.ErrorIs(t, err, entities.ErrNotFound)
}

func TestCreateUserAndTeamConflicts(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	require.ErrorIs(t, m.CreateUser(ctx, entities.User{ID: "U1", Email: "new@x.com"}), entities.ErrAlreadyExists)
	require.ErrorIs(t, m.CreateUser(ctx, entities.User{ID: "U9", Email: "a@X.COM"}), entities.ErrAlreadyExists)
	require.ErrorIs(t, m.CreateTeam(ctx, entities.Team{ID: "T1", Name: "Again"}), entities.ErrAlreadyExists)

	err := m.CreateTeam(ctx, entities.Team{ID: "T2", Name: "Night", Members: []entities.Member{
		{UserID: "U404", RoleSlug: "member"},
	}})
	var nf *entities.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, entities.ResourceUser, nf.Resource)

	err = m.CreateTeam(ctx, entities.Team{ID: "T2", Name: "Night", Members: []entities.Member{
		{UserID: "U2", RoleSlug: "nonexistent"},
	}})
	require.ErrorIs(t, err, entities.ErrInvalidRole)

	_, err = m.GetTeam(ctx, "T2")
	require.ErrorIs(t, err, entities.ErrNotFound, "failed creates leave nothing behind")
}

func TestGetInvitationNotFound(t *testing.T) {
	m := seeded(t)
	_, err := m.GetInvitation(context.Background(), "missing")
	require.ErrorIs(t, err, entities.ErrNotFound)
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	u, err := m.GetUserByEmail(ctx, "a@X.com")
	require.NoError(t, err)
	require.Equal(t, "U2", u.ID)

	_, err = m.GetRoleBySlug(ctx, "nonexistent")
	require.ErrorIs(t, err, entities.ErrInvalidRole)

	r, err := m.GetRole(ctx, "role-member")
	require.NoError(t, err)
	require.Equal(t, "member", r.Slug)

	_, err = m.GetTeam(ctx, "T404")
	var nf *entities.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, entities.ResourceTeam, nf.Resource)
}

func TestTryAcceptTransitionsOnce(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)
	now := t0.Add(10 * time.Second)

	var first *entities.Invitation
	require.NoError(t, m.Atomic(ctx, func(ctx context.Context, tx txn.Tx) error {
		inv, ok, err := tx.TryAccept(ctx, "tok", now)
		require.True(t, ok)
		first = inv
		return err
	}))
	require.Equal(t, entities.InvitationAccepted, first.Status)
	require.Equal(t, now, *first.UsedAt)

	require.NoError(t, m.Atomic(ctx, func(ctx context.Context, tx txn.Tx) error {
		inv, ok, err := tx.TryAccept(ctx, "tok", now.Add(time.Second))
		require.False(t, ok)
		require.Equal(t, now, *inv.UsedAt, "record returned unmodified")
		return err
	}))
}

func TestTryAcceptExpired(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	require.NoError(t, m.Atomic(ctx, func(ctx context.Context, tx txn.Tx) error {
		inv, ok, err := tx.TryAccept(ctx, "tok", t0.Add(time.Hour+time.Second))
		require.False(t, ok)
		require.Equal(t, entities.InvitationPending, inv.Status)
		return err
	}))
}

func TestAtomicRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)
	boom := errors.New("boom")

	err := m.Atomic(ctx, func(ctx context.Context, tx txn.Tx) error {
		_, ok, err := tx.TryAccept(ctx, "tok", t0)
		require.NoError(t, err)
		require.True(t, ok)
		added, err := tx.AddMember(ctx, "T1", "U2", "role-member", t0)
		require.NoError(t, err)
		require.True(t, added)
		return boom
	})
	require.ErrorIs(t, err, boom)

	inv, err := m.GetInvitation(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, entities.InvitationPending, inv.Status)
	require.Nil(t, inv.UsedAt)

	team, err := m.GetTeam(ctx, "T1")
	require.NoError(t, err)
	require.False(t, team.HasMember("U2"))
}

func TestAddMemberIdempotent(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	require.NoError(t, m.Atomic(ctx, func(ctx context.Context, tx txn.Tx) error {
		added, err := tx.AddMember(ctx, "T1", "U1", "role-member", t0)
		require.False(t, added)
		return err
	}))

	team, err := m.GetTeam(ctx, "T1")
	require.NoError(t, err)
	require.Len(t, team.Members, 1)
	require.Equal(t, "owner", team.Members[0].RoleSlug, "existing membership untouched")
}

func TestTryAcceptConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	const n = 32
	var wins atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = m.Atomic(ctx, func(ctx context.Context, tx txn.Tx) error {
				_, ok, err := tx.TryAccept(ctx, "tok", t0)
				if ok {
					wins.Add(1)
				}
				return err
			})
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), wins.Load())
}
