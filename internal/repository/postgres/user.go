package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"senior-hub-api/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	selectUserQuery        = `SELECT id, email, name FROM users WHERE id=$1`
	selectUserByEmailQuery = `SELECT id, email, name FROM users WHERE LOWER(email)=LOWER($1)`
	insertUserQuery        = `INSERT INTO users(id, email, name) VALUES ($1, $2, $3)`
)

// GetUser fetches an account by id.
func (p *Postgres) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	var u entities.User
	if err := p.db.QueryRow(ctx, selectUserQuery, userID).Scan(&u.ID, &u.Email, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NotFound(entities.ResourceUser, userID)
		}
		p.log.Errorw("failed to get user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail fetches an account by case-insensitive email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return getUserByEmail(ctx, p.db, email)
}

func getUserByEmail(ctx context.Context, q querier, email string) (*entities.User, error) {
	var u entities.User
	if err := q.QueryRow(ctx, selectUserByEmailQuery, email).Scan(&u.ID, &u.Email, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NotFound(entities.ResourceUser, email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// CreateUser inserts an account.
func (p *Postgres) CreateUser(ctx context.Context, u entities.User) error {
	if _, err := p.db.Exec(ctx, insertUserQuery, u.ID, strings.ToLower(u.Email), u.Name); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: user %s", entities.ErrAlreadyExists, u.ID)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	p.log.Infow("user created", "user_id", u.ID)
	return nil
}
