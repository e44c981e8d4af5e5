package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"senior-hub-api/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	insertTeamQuery        = `INSERT INTO teams(id, name) VALUES ($1, $2)`
	selectTeamQuery        = `SELECT name FROM teams WHERE id=$1`
	selectTeamMembersQuery = `
SELECT u.id, u.email, u.name, r.slug, m.joined_at
FROM team_members m
JOIN users u ON u.id = m.user_id
JOIN roles r ON r.id = m.role_id
WHERE m.team_id = $1
ORDER BY m.joined_at, u.id`
	selectRoleQuery       = `SELECT id, slug, name, description FROM roles WHERE id=$1`
	selectRoleBySlugQuery = `SELECT id, slug, name, description FROM roles WHERE slug=$1`
	addMemberQuery        = `
INSERT INTO team_members(team_id, user_id, role_id, joined_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (team_id, user_id) DO NOTHING`
)

// CreateTeam inserts a team and its initial members in one transaction.
func (p *Postgres) CreateTeam(ctx context.Context, team entities.Team) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, insertTeamQuery, team.ID, team.Name); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: team %s", entities.ErrAlreadyExists, team.ID)
		}
		return fmt.Errorf("insert team: %w", err)
	}

	for _, m := range team.Members {
		role, err := getRoleBySlug(ctx, tx, m.RoleSlug)
		if err != nil {
			return err
		}
		joined := m.JoinedAt
		if joined.IsZero() {
			joined = time.Now().UTC()
		}
		if _, err := addMember(ctx, tx, team.ID, m.UserID, role.ID, joined); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return entities.NotFound(entities.ResourceUser, m.UserID)
			}
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	p.log.Infow("team created", "team_id", team.ID, "members", len(team.Members))
	return nil
}

// GetTeam fetches team with members by id.
func (p *Postgres) GetTeam(ctx context.Context, teamID string) (*entities.Team, error) {
	team := entities.Team{ID: teamID}
	if err := p.db.QueryRow(ctx, selectTeamQuery, teamID).Scan(&team.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NotFound(entities.ResourceTeam, teamID)
		}
		return nil, fmt.Errorf("get team: %w", err)
	}

	rows, err := p.db.Query(ctx, selectTeamMembersQuery, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team members: %w", err)
	}
	defer rows.Close()

	team.Members = make([]entities.Member, 0)
	for rows.Next() {
		var m entities.Member
		if err := rows.Scan(&m.UserID, &m.Email, &m.Name, &m.RoleSlug, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan members: %w", err)
		}
		team.Members = append(team.Members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return &team, nil
}

// GetRole fetches a role by id.
func (p *Postgres) GetRole(ctx context.Context, roleID string) (*entities.Role, error) {
	var r entities.Role
	if err := p.db.QueryRow(ctx, selectRoleQuery, roleID).Scan(&r.ID, &r.Slug, &r.Name, &r.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NotFound(entities.ResourceRole, roleID)
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &r, nil
}

// GetRoleBySlug resolves a role slug. Unknown slugs yield entities.ErrInvalidRole.
func (p *Postgres) GetRoleBySlug(ctx context.Context, slug string) (*entities.Role, error) {
	return getRoleBySlug(ctx, p.db, slug)
}

func getRoleBySlug(ctx context.Context, q querier, slug string) (*entities.Role, error) {
	var r entities.Role
	if err := q.QueryRow(ctx, selectRoleBySlugQuery, slug).Scan(&r.ID, &r.Slug, &r.Name, &r.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", entities.ErrInvalidRole, slug)
		}
		return nil, fmt.Errorf("get role by slug: %w", err)
	}
	return &r, nil
}

func addMember(ctx context.Context, tx pgx.Tx, teamID, userID, roleID string, now time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, addMemberQuery, teamID, userID, roleID, now)
	if err != nil {
		return false, fmt.Errorf("add member: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
