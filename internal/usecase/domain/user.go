package domain

import (
	"context"
	"strings"

	"senior-hub-api/internal/entities"

	"github.com/google/uuid"
)

// CreateUser provisions an account so it can invite or accept invitations.
// An empty id is replaced by a generated one.
func (u *Usecase) CreateUser(ctx context.Context, usr entities.User) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email, err := normalizeEmail(usr.Email)
	if err != nil {
		return nil, err
	}
	usr.Email = email
	usr.Name = strings.TrimSpace(usr.Name)
	usr.ID = strings.TrimSpace(usr.ID)
	if usr.ID == "" {
		usr.ID = uuid.NewString()
	}

	if err := u.repo.CreateUser(ctx, usr); err != nil {
		u.log.Infow("failed to create user", "error", err, "user_id", usr.ID)
		return nil, err
	}
	return u.repo.GetUser(ctx, usr.ID)
}
