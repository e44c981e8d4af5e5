// Package dto defines the JSON shapes of the HTTP API.
package dto

import "time"

// ErrorCode is the machine readable part of an error response.
type ErrorCode string

// Error codes returned by the API.
const (
	INVALIDARGUMENT ErrorCode = "INVALID_ARGUMENT"
	INVALIDROLE     ErrorCode = "INVALID_ROLE"
	ALREADYEXISTS   ErrorCode = "ALREADY_EXISTS"
	ALREADYUSED     ErrorCode = "ALREADY_USED"
	EXPIRED         ErrorCode = "EXPIRED"
	RATELIMITED     ErrorCode = "RATE_LIMITED"
	DELIVERYFAILED  ErrorCode = "DELIVERY_FAILED"
	INTERNAL        ErrorCode = "INTERNAL"
)

// NotFoundCode returns the code for a missing resource, e.g. team_not_found.
func NotFoundCode(resource string) ErrorCode {
	if resource == "" {
		resource = "resource"
	}
	return ErrorCode(resource + "_not_found")
}

// ErrorBody is the payload of ErrorResponse.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse wraps every non-2xx answer.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// CreateTeamMember is one initial roster entry of CreateTeamRequest.
type CreateTeamMember struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// CreateTeamRequest is the body of POST /teams.
type CreateTeamRequest struct {
	TeamID  string             `json:"team_id"`
	Name    string             `json:"name"`
	Members []CreateTeamMember `json:"members"`
}

// CreateInvitationRequest is the body of POST /teams/{team_id}/invitations.
type CreateInvitationRequest struct {
	InviterID string `json:"inviter_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

// AcceptInvitationRequest is the body of POST /invitations/accept.
type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// Delivery describes the outbound notification of an invitation.
type Delivery struct {
	MessageID string    `json:"message_id"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	SentAt    time.Time `json:"sent_at"`
}

// Invitation is returned after an invitation was issued.
type Invitation struct {
	InvitationID string    `json:"invitation_id"`
	Token        string    `json:"token"`
	Email        string    `json:"email"`
	Link         string    `json:"link"`
	ExpiresAt    time.Time `json:"expires_at"`
	Delivery     Delivery  `json:"delivery"`
}

// TeamRef identifies a team without its roster.
type TeamRef struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

// Role is a role as shown to invitees.
type Role struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// User is the public part of an account.
type User struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// InvitationView is the answer of GET /invitations/validate.
type InvitationView struct {
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Team      TeamRef   `json:"team"`
	Role      Role      `json:"role"`
	Inviter   User      `json:"inviter"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AcceptResult is the answer of POST /invitations/accept.
type AcceptResult struct {
	Message    string    `json:"message"`
	TeamID     string    `json:"team_id"`
	UserID     string    `json:"user_id"`
	Role       string    `json:"role"`
	AcceptedAt time.Time `json:"accepted_at"`
	Added      bool      `json:"added"`
}

// TeamMember is one roster entry.
type TeamMember struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Team is a team with its roster.
type Team struct {
	TeamID  string       `json:"team_id"`
	Name    string       `json:"name"`
	Members []TeamMember `json:"members"`
}
