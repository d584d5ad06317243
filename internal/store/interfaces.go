package store

import (
	"context"
	"errors"

	"github.com/mortyverse/Geurim-Lab/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrStaleStatus is returned when a guarded step advance matched zero rows
// because another submission already moved the session past the expected
// status. The loser must re-fetch, never silently retry.
var ErrStaleStatus = errors.New("session status changed concurrently")

// FeedbackStore defines the contract for feedback session data access.
type FeedbackStore interface {
	Create(ctx context.Context, sess *model.FeedbackSession) error
	GetByID(ctx context.Context, id int64) (*model.FeedbackSession, error)
	// ListByParticipant returns sessions where userID is the student or the
	// mentor, most recently updated first.
	ListByParticipant(ctx context.Context, userID string) ([]model.FeedbackSession, error)
	// AdvanceStep writes the step implied by expected's pending slot and moves
	// status to its successor, only where the row still holds expected.
	AdvanceStep(ctx context.Context, id int64, expected model.FeedbackStatus, step model.Step) (*model.FeedbackSession, error)
}

// UserStore defines the contract for profile data access.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	// ListVerifiedMentors returns verified mentors with their open-session
	// counts recomputed by the database.
	ListVerifiedMentors(ctx context.Context) ([]model.MentorSummary, error)
}
