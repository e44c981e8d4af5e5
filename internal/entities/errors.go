// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlreadyExists signals a user or team id (or user email) that is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidRole signals a role slug that does not resolve.
	ErrInvalidRole = errors.New("invalid role")
	// ErrAlreadyUsed signals an invitation that was already accepted.
	ErrAlreadyUsed = errors.New("invitation already used")
	// ErrExpired signals an invitation past its expiry.
	ErrExpired = errors.New("invitation expired")
	// ErrDuplicateToken signals a token collision on insert.
	ErrDuplicateToken = errors.New("duplicate invitation token")
	// ErrDeliveryFailed signals the invitation notification could not be sent.
	ErrDeliveryFailed = errors.New("invitation delivery failed")
	// ErrRateLimited signals that the inviter exceeded the issuance limit.
	ErrRateLimited = errors.New("too many invitations")
)

// Resource names carried by NotFoundError.
const (
	ResourceUser       = "user"
	ResourceTeam       = "team"
	ResourceRole       = "role"
	ResourceInvitation = "invitation"
	ResourceInvitee    = "invitee"
)

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

// NotFound builds a NotFoundError.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
