package model

import "time"

// User mirrors the identity collaborator's profile row. IDs are the UUIDs the
// identity provider issues.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// CanMentor reports whether the user may be picked as the mentor side of a
// session. Only verified mentors qualify.
func (u *User) CanMentor() bool {
	return u.Role == RoleMentor && u.IsVerified
}

// MentorSummary is a verified mentor as shown in the mentor picker, with the
// store-recomputed count of sessions still waiting on them.
type MentorSummary struct {
	User
	OpenSessions int `json:"open_sessions"`
}
