package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mortyverse/Geurim-Lab/common/id"
	"github.com/mortyverse/Geurim-Lab/common/logger"
	"github.com/mortyverse/Geurim-Lab/internal/blob"
	"github.com/mortyverse/Geurim-Lab/internal/model"
	"github.com/mortyverse/Geurim-Lab/internal/store"
)

var (
	ErrSessionNotFound = errors.New("feedback session not found")

	// Turn and lifecycle violations. Neither mutates anything.
	ErrNotYourTurn   = errors.New("it is not this user's turn to submit")
	ErrSessionClosed = errors.New("feedback session is completed")

	// Validation failures, checkable client-side before any network call.
	ErrMissingContent    = errors.New("content must not be blank")
	ErrMissingAnnotation = errors.New("mentor submissions require an annotated image")
	ErrMissingMentor     = errors.New("a verified mentor must be chosen")
	ErrMissingArtwork    = errors.New("an artwork image is required")
	ErrSelfFeedback      = errors.New("student and mentor must be different users")

	// ErrStaleTransition means a concurrent submission won the race out of
	// the same status. Surface as "refresh and retry", never auto-retry.
	ErrStaleTransition = errors.New("session advanced concurrently, reload and retry")
)

// CreateSessionInput carries everything a student supplies when opening a
// session. Artwork is the raw image; the service stores it and keeps only the
// stable URL.
type CreateSessionInput struct {
	StudentID string
	MentorID  string
	Content   string
	Artwork   []byte
}

// FeedbackService drives one_on_one_feedbacks records through
// pending → replied_1 → questioned_2 → completed.
type FeedbackService interface {
	Create(ctx context.Context, input CreateSessionInput) (*model.FeedbackSession, error)
	// Submit applies the acting user's step. image must be a flattened
	// annotation export on mentor turns and is ignored on student turns.
	Submit(ctx context.Context, sessionID int64, actorID, content string, image []byte) (*model.FeedbackSession, error)
	Get(ctx context.Context, sessionID int64) (*model.FeedbackSession, error)
	ListByParticipant(ctx context.Context, userID string) ([]model.FeedbackSession, error)
	ListVerifiedMentors(ctx context.Context) ([]model.MentorSummary, error)
}

type feedbackService struct {
	feedbacks store.FeedbackStore
	users     store.UserStore
	storage   blob.Storage
}

func NewFeedbackService(feedbacks store.FeedbackStore, users store.UserStore, storage blob.Storage) FeedbackService {
	return &feedbackService{
		feedbacks: feedbacks,
		users:     users,
		storage:   storage,
	}
}

func (s *feedbackService) Create(ctx context.Context, input CreateSessionInput) (*model.FeedbackSession, error) {
	content := strings.TrimSpace(input.Content)
	switch {
	case input.MentorID == "":
		return nil, ErrMissingMentor
	case content == "":
		return nil, ErrMissingContent
	case len(input.Artwork) == 0:
		return nil, ErrMissingArtwork
	case input.StudentID == input.MentorID:
		return nil, ErrSelfFeedback
	}

	mentor, err := s.users.GetByID(ctx, input.MentorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMissingMentor
		}
		return nil, fmt.Errorf("looking up mentor: %w", err)
	}
	if !mentor.CanMentor() {
		return nil, ErrMissingMentor
	}

	sessionID := id.New()
	artworkURL, err := s.putImage(ctx, sessionID, 1, input.Artwork)
	if err != nil {
		return nil, err
	}

	sess := &model.FeedbackSession{
		ID:        sessionID,
		StudentID: input.StudentID,
		MentorID:  input.MentorID,
		Status:    model.StatusPending,
		Step1:     model.Step{Content: content, ImageURL: artworkURL},
	}
	if err := s.feedbacks.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "feedback session created",
		"session_id", sess.ID,
		"student_id", sess.StudentID,
		"mentor_id", sess.MentorID,
	)
	return sess, nil
}

func (s *feedbackService) Submit(ctx context.Context, sessionID int64, actorID, content string, image []byte) (*model.FeedbackSession, error) {
	sc := logger.StartSpan(ctx, "feedback.submit")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{
		SessionID: logger.Ptr(sessionID),
		ActorID:   logger.Ptr(actorID),
		Component: "geurim.feedback",
	})

	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status.IsTerminal() {
		return nil, ErrSessionClosed
	}
	if sess.ActorID() != actorID {
		return nil, ErrNotYourTurn
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}

	step := model.Step{Content: content}
	if sess.Status.NextActor() == model.RoleMentor {
		if len(image) == 0 {
			return nil, ErrMissingAnnotation
		}
		// The annotation must be durable before the record references it. A
		// lost race below orphans the object; that is accepted.
		url, err := s.putImage(ctx, sessionID, sess.Status.PendingStep(), image)
		if err != nil {
			return nil, err
		}
		step.ImageURL = url
	}
	// Student turns never carry an image, even if one was sent.

	updated, err := s.feedbacks.AdvanceStep(ctx, sessionID, sess.Status, step)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrStaleStatus):
			return nil, ErrStaleTransition
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("advancing session: %w", err)
	}

	slog.InfoContext(ctx, "feedback step submitted",
		"step", sess.Status.PendingStep(),
		"status", updated.Status,
	)
	return updated, nil
}

func (s *feedbackService) Get(ctx context.Context, sessionID int64) (*model.FeedbackSession, error) {
	sess, err := s.feedbacks.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}

func (s *feedbackService) ListByParticipant(ctx context.Context, userID string) ([]model.FeedbackSession, error) {
	sessions, err := s.feedbacks.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

func (s *feedbackService) ListVerifiedMentors(ctx context.Context) ([]model.MentorSummary, error) {
	mentors, err := s.users.ListVerifiedMentors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing mentors: %w", err)
	}
	return mentors, nil
}

func (s *feedbackService) putImage(ctx context.Context, sessionID int64, stepNo int, data []byte) (string, error) {
	path := fmt.Sprintf("sessions/%d/step%d-%d.png", sessionID, stepNo, time.Now().UnixMilli())
	url, err := s.storage.Put(ctx, path, data, "image/png")
	if err != nil {
		return "", fmt.Errorf("storing image: %w", err)
	}
	return url, nil
}
