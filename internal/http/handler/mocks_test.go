package handler_test

import (
	"context"

	"github.com/mortyverse/Geurim-Lab/internal/model"
	"github.com/mortyverse/Geurim-Lab/internal/service"
)

type mockFeedbackService struct {
	createFn              func(ctx context.Context, input service.CreateSessionInput) (*model.FeedbackSession, error)
	submitFn              func(ctx context.Context, sessionID int64, actorID, content string, image []byte) (*model.FeedbackSession, error)
	getFn                 func(ctx context.Context, sessionID int64) (*model.FeedbackSession, error)
	listByParticipantFn   func(ctx context.Context, userID string) ([]model.FeedbackSession, error)
	listVerifiedMentorsFn func(ctx context.Context) ([]model.MentorSummary, error)
}

func (m *mockFeedbackService) Create(ctx context.Context, input service.CreateSessionInput) (*model.FeedbackSession, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return nil, nil
}

func (m *mockFeedbackService) Submit(ctx context.Context, sessionID int64, actorID, content string, image []byte) (*model.FeedbackSession, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, sessionID, actorID, content, image)
	}
	return nil, nil
}

func (m *mockFeedbackService) Get(ctx context.Context, sessionID int64) (*model.FeedbackSession, error) {
	if m.getFn != nil {
		return m.getFn(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockFeedbackService) ListByParticipant(ctx context.Context, userID string) ([]model.FeedbackSession, error) {
	if m.listByParticipantFn != nil {
		return m.listByParticipantFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockFeedbackService) ListVerifiedMentors(ctx context.Context) ([]model.MentorSummary, error) {
	if m.listVerifiedMentorsFn != nil {
		return m.listVerifiedMentorsFn(ctx)
	}
	return nil, nil
}

type mockUserStore struct {
	getByIDFn             func(ctx context.Context, id string) (*model.User, error)
	listVerifiedMentorsFn func(ctx context.Context) ([]model.MentorSummary, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) ListVerifiedMentors(ctx context.Context) ([]model.MentorSummary, error) {
	if m.listVerifiedMentorsFn != nil {
		return m.listVerifiedMentorsFn(ctx)
	}
	return nil, nil
}
