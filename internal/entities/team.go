// Package entities contains core business entities.
package entities

import "time"

// Team aggregates members under a team name.
type Team struct {
	ID      string
	Name    string
	Members []Member
}

// Member is one roster entry of a team.
type Member struct {
	UserID   string
	Email    string
	Name     string
	RoleSlug string
	JoinedAt time.Time
}

// HasMember reports whether the user is on the roster.
func (t Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// Role grants a set of permissions within a team.
type Role struct {
	ID          string
	Slug        string
	Name        string
	Description string
}
