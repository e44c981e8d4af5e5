// Package domain contains application services orchestrating the invitation lifecycle.
package domain

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"senior-hub-api/internal/entities"
	"senior-hub-api/internal/notify"
	"senior-hub-api/internal/repository"

	"github.com/google/uuid"
)

const acceptedMessage = "invitation accepted"

// Invite issues a PENDING invitation for req.Email and sends the link to it.
func (u *Usecase) Invite(ctx context.Context, req entities.InviteRequest) (*entities.InviteReport, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	req, err := normalizeInviteRequest(req)
	if err != nil {
		return nil, err
	}

	inviter, err := u.repo.GetUser(ctx, req.InviterID)
	if err != nil {
		return nil, err
	}
	team, err := u.repo.GetTeam(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	role, err := u.repo.GetRoleBySlug(ctx, req.RoleSlug)
	if err != nil {
		return nil, err
	}

	allowed, err := u.limiter.Allow(ctx, inviter.ID)
	if err != nil {
		u.log.Warnw("invitation throttle unavailable", "error", err, "inviter_id", inviter.ID)
	}
	if !allowed {
		return nil, entities.ErrRateLimited
	}

	now := u.now()
	inv := entities.Invitation{
		ID:        uuid.NewString(),
		Email:     req.Email,
		TeamID:    team.ID,
		InviterID: inviter.ID,
		RoleID:    role.ID,
		Status:    entities.InvitationPending,
		CreatedAt: now,
		ExpiresAt: now.Add(u.invitations.TTL()),
	}
	if err := u.store(ctx, &inv); err != nil {
		return nil, err
	}

	link := invitationLink(u.invitations.BaseURL, inv.Token)
	delivery, err := u.notifier.Send(ctx, inv.Email, map[string]string{
		notify.KeyLink:      link,
		notify.KeyTeam:      team.Name,
		notify.KeyRole:      role.Name,
		notify.KeyInviter:   inviter.Name,
		notify.KeyExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
	})
	if err != nil {
		u.log.Errorw("failed to deliver invitation", "error", err, "invitation_id", inv.ID)
		if !errors.Is(err, entities.ErrDeliveryFailed) {
			err = fmt.Errorf("%w: %v", entities.ErrDeliveryFailed, err)
		}
		return nil, err
	}

	u.log.Infow("invitation issued", "invitation_id", inv.ID, "team_id", team.ID, "inviter_id", inviter.ID, "role", role.Slug)
	return &entities.InviteReport{
		InvitationID: inv.ID,
		Token:        inv.Token,
		Email:        inv.Email,
		Link:         link,
		ExpiresAt:    inv.ExpiresAt,
		Delivery:     *delivery,
	}, nil
}

// store persists inv under a fresh token, regenerating on collisions a bounded number of times.
func (u *Usecase) store(ctx context.Context, inv *entities.Invitation) error {
	for attempt := 1; ; attempt++ {
		tok, err := u.tokens.Generate()
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		inv.Token = tok

		err = u.repo.CreateInvitation(ctx, *inv)
		if err == nil {
			return nil
		}
		if !errors.Is(err, entities.ErrDuplicateToken) {
			return err
		}
		if attempt >= u.invitations.MaxTokenAttempts {
			return fmt.Errorf("store invitation after %d attempts: %w", attempt, err)
		}
		u.log.Warnw("token collision, regenerating", "attempt", attempt, "invitation_id", inv.ID)
	}
}

// Validate returns the invitation details without changing its state.
func (u *Usecase) Validate(ctx context.Context, token string) (*entities.InvitationView, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	inv, err := u.redeemable(ctx, token)
	if err != nil {
		return nil, err
	}

	team, err := u.repo.GetTeam(ctx, inv.TeamID)
	if err != nil {
		return nil, err
	}
	team.Members = nil
	role, err := u.repo.GetRole(ctx, inv.RoleID)
	if err != nil {
		return nil, err
	}
	inviter, err := u.repo.GetUser(ctx, inv.InviterID)
	if err != nil {
		return nil, err
	}

	return &entities.InvitationView{
		Token:     inv.Token,
		Email:     inv.Email,
		Status:    inv.Status,
		Team:      *team,
		Role:      *role,
		Inviter:   *inviter,
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

// Accept redeems the invitation and adds the invitee to the team in one transaction.
func (u *Usecase) Accept(ctx context.Context, token string) (*entities.AcceptReport, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	inv, err := u.redeemable(ctx, token)
	if err != nil {
		return nil, err
	}
	role, err := u.repo.GetRole(ctx, inv.RoleID)
	if err != nil {
		return nil, err
	}

	var report *entities.AcceptReport
	err = u.repo.Atomic(ctx, func(ctx context.Context, tx repository.Tx) error {
		now := u.now()
		current, ok, err := tx.TryAccept(ctx, inv.Token, now)
		if err != nil {
			return err
		}
		if !ok {
			if current.StateAt(now) == entities.InvitationExpired {
				return entities.ErrExpired
			}
			return entities.ErrAlreadyUsed
		}

		invitee, err := tx.GetUserByEmail(ctx, current.Email)
		if err != nil {
			if errors.Is(err, entities.ErrNotFound) {
				return entities.NotFound(entities.ResourceInvitee, "")
			}
			return err
		}

		added, err := tx.AddMember(ctx, current.TeamID, invitee.ID, current.RoleID, now)
		if err != nil {
			return err
		}

		report = &entities.AcceptReport{
			Message:    acceptedMessage,
			TeamID:     current.TeamID,
			UserID:     invitee.ID,
			RoleSlug:   role.Slug,
			AcceptedAt: now,
			Added:      added,
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, entities.ErrAlreadyUsed) && !errors.Is(err, entities.ErrExpired) {
			u.log.Errorw("failed to accept invitation", "error", err, "invitation_id", inv.ID)
		}
		return nil, err
	}

	u.log.Infow("invitation redeemed", "invitation_id", inv.ID, "team_id", report.TeamID, "user_id", report.UserID, "added", report.Added)
	return report, nil
}

// redeemable loads the invitation and rejects used or expired ones.
func (u *Usecase) redeemable(ctx context.Context, token string) (*entities.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", entities.ErrInvalidArgument)
	}

	inv, err := u.repo.GetInvitation(ctx, token)
	if err != nil {
		return nil, err
	}

	switch inv.StateAt(u.now()) {
	case entities.InvitationAccepted:
		return nil, entities.ErrAlreadyUsed
	case entities.InvitationExpired:
		return nil, entities.ErrExpired
	}
	return inv, nil
}

func normalizeInviteRequest(req entities.InviteRequest) (entities.InviteRequest, error) {
	req.TeamID = strings.TrimSpace(req.TeamID)
	req.InviterID = strings.TrimSpace(req.InviterID)
	req.RoleSlug = strings.ToLower(strings.TrimSpace(req.RoleSlug))

	if req.TeamID == "" || req.InviterID == "" || strings.TrimSpace(req.Email) == "" {
		return req, fmt.Errorf("%w: team_id, inviter_id and email are required", entities.ErrInvalidArgument)
	}
	if req.RoleSlug == "" {
		return req, fmt.Errorf("%w: role is required", entities.ErrInvalidRole)
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return req, err
	}
	req.Email = email
	return req, nil
}

// normalizeEmail lower-cases a bare address and rejects anything else, display names included.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: malformed email", entities.ErrInvalidArgument)
	}
	return email, nil
}

func invitationLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/invitations?token=" + url.QueryEscape(token)
}
