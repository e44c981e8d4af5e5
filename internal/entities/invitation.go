// Package entities contains core business entities.
package entities

import "time"

// InvitationStatus enumerates stored invitation states.
type InvitationStatus string

const (
	// InvitationPending marks an invitation that can still be accepted.
	InvitationPending InvitationStatus = "PENDING"
	// InvitationAccepted marks a redeemed invitation. Terminal.
	InvitationAccepted InvitationStatus = "ACCEPTED"
	// InvitationExpired is derived from a pending invitation past ExpiresAt. Never stored.
	InvitationExpired InvitationStatus = "EXPIRED"
)

// Invitation grants an email address a role in a team once.
type Invitation struct {
	ID        string
	Token     string
	Email     string
	TeamID    string
	InviterID string
	RoleID    string
	Status    InvitationStatus
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// Used reports whether the invitation was already redeemed. Status is authoritative.
func (i Invitation) Used() bool {
	return i.Status == InvitationAccepted
}

// Consistent reports whether UsedAt is set exactly when the invitation is ACCEPTED.
func (i Invitation) Consistent() bool {
	return (i.Status == InvitationAccepted) == (i.UsedAt != nil)
}

// ExpiredAt reports whether the invitation is past its expiry at now.
func (i Invitation) ExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// StateAt returns the effective state at now, with expiry overlaid on PENDING.
func (i Invitation) StateAt(now time.Time) InvitationStatus {
	if i.Used() {
		return InvitationAccepted
	}
	if i.ExpiredAt(now) {
		return InvitationExpired
	}
	return InvitationPending
}

// InvitationView is what an invitee sees before accepting.
type InvitationView struct {
	Token     string
	Email     string
	Status    InvitationStatus
	Team      Team
	Role      Role
	Inviter   User
	ExpiresAt time.Time
}

// InviteRequest carries the input of an invitation.
type InviteRequest struct {
	TeamID    string
	InviterID string
	RoleSlug  string
	Email     string
}

// DeliveryReport describes an outbound notification.
type DeliveryReport struct {
	MessageID string
	Channel   string
	Recipient string
	SentAt    time.Time
}

// InviteReport is returned after an invitation was issued and sent.
type InviteReport struct {
	InvitationID string
	Token        string
	Email        string
	Link         string
	ExpiresAt    time.Time
	Delivery     DeliveryReport
}

// AcceptReport is returned after an invitation was redeemed.
type AcceptReport struct {
	Message    string
	TeamID     string
	UserID     string
	RoleSlug   string
	AcceptedAt time.Time
	Added      bool
}
