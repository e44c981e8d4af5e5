package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"senior-hub-api/internal/entities"
	"senior-hub-api/internal/repository/txn"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	invitationColumns     = `id, token, email, team_id, inviter_id, role_id, status, created_at, expires_at, used_at`
	invitationTokenKey    = "invitations_token_key"
	insertInvitationQuery = `
INSERT INTO invitations(id, token, email, team_id, inviter_id, role_id, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	selectInvitationQuery = `SELECT ` + invitationColumns + ` FROM invitations WHERE token=$1`
	// The predicate is re-evaluated after the row lock is taken, so only one
	// concurrent UPDATE per token can match.
	tryAcceptQuery = `
UPDATE invitations
SET status='ACCEPTED', used_at=$2
WHERE token=$1 AND status='PENDING' AND expires_at >= $2
RETURNING ` + invitationColumns
)

// CreateInvitation stores a new PENDING invitation.
func (p *Postgres) CreateInvitation(ctx context.Context, inv entities.Invitation) error {
	_, err := p.db.Exec(ctx, insertInvitationQuery,
		inv.ID, inv.Token, inv.Email, inv.TeamID, inv.InviterID, inv.RoleID,
		string(inv.Status), inv.CreatedAt, inv.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == invitationTokenKey {
			p.log.Warnw("invitation token collision", "invitation_id", inv.ID)
			return entities.ErrDuplicateToken
		}
		p.log.Errorw("failed to insert invitation", "error", err, "invitation_id", inv.ID)
		return fmt.Errorf("insert invitation: %w", err)
	}

	p.log.Infow("invitation created", "invitation_id", inv.ID, "team_id", inv.TeamID, "expires_at", inv.ExpiresAt)
	return nil
}

// GetInvitation fetches an invitation by token.
func (p *Postgres) GetInvitation(ctx context.Context, token string) (*entities.Invitation, error) {
	return getInvitation(ctx, p.db, token)
}

// Atomic runs fn inside a single transaction.
func (p *Postgres) Atomic(ctx context.Context, fn txn.Func) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, &pgTx{log: p.log, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type pgTx struct {
	log *zap.SugaredLogger
	tx  pgx.Tx
}

func (t *pgTx) TryAccept(ctx context.Context, token string, now time.Time) (*entities.Invitation, bool, error) {
	inv, err := scanInvitation(t.tx.QueryRow(ctx, tryAcceptQuery, token, now))
	if err == nil {
		t.log.Infow("invitation accepted", "invitation_id", inv.ID, "team_id", inv.TeamID)
		return inv, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("try accept: %w", err)
	}

	current, err := getInvitation(ctx, t.tx, token)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (t *pgTx) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return getUserByEmail(ctx, t.tx, email)
}

func (t *pgTx) AddMember(ctx context.Context, teamID, userID, roleID string, now time.Time) (bool, error) {
	added, err := addMember(ctx, t.tx, teamID, userID, roleID, now)
	if err != nil {
		return false, err
	}
	if added {
		t.log.Infow("member added", "team_id", teamID, "user_id", userID)
	}
	return added, nil
}

func getInvitation(ctx context.Context, q querier, token string) (*entities.Invitation, error) {
	inv, err := scanInvitation(q.QueryRow(ctx, selectInvitationQuery, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NotFound(entities.ResourceInvitation, "")
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

func scanInvitation(row pgx.Row) (*entities.Invitation, error) {
	var inv entities.Invitation
	var status string
	if err := row.Scan(
		&inv.ID, &inv.Token, &inv.Email, &inv.TeamID, &inv.InviterID, &inv.RoleID,
		&status, &inv.CreatedAt, &inv.ExpiresAt, &inv.UsedAt,
	); err != nil {
		return nil, err
	}
	inv.Status = entities.InvitationStatus(status)
	return &inv, nil
}
