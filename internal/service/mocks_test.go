package service_test

import (
	"context"

	"github.com/mortyverse/Geurim-Lab/internal/model"
	"github.com/mortyverse/Geurim-Lab/internal/store"
)

type mockFeedbackStore struct {
	createFn            func(ctx context.Context, sess *model.FeedbackSession) error
	getByIDFn           func(ctx context.Context, id int64) (*model.FeedbackSession, error)
	listByParticipantFn func(ctx context.Context, userID string) ([]model.FeedbackSession, error)
	advanceStepFn       func(ctx context.Context, id int64, expected model.FeedbackStatus, step model.Step) (*model.FeedbackSession, error)
}

func (m *mockFeedbackStore) Create(ctx context.Context, sess *model.FeedbackSession) error {
	if m.createFn != nil {
		return m.createFn(ctx, sess)
	}
	return nil
}

func (m *mockFeedbackStore) GetByID(ctx context.Context, id int64) (*model.FeedbackSession, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockFeedbackStore) ListByParticipant(ctx context.Context, userID string) ([]model.FeedbackSession, error) {
	if m.listByParticipantFn != nil {
		return m.listByParticipantFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockFeedbackStore) AdvanceStep(ctx context.Context, id int64, expected model.FeedbackStatus, step model.Step) (*model.FeedbackSession, error) {
	if m.advanceStepFn != nil {
		return m.advanceStepFn(ctx, id, expected, step)
	}
	return nil, store.ErrNotFound
}

type mockUserStore struct {
	getByIDFn             func(ctx context.Context, id string) (*model.User, error)
	listVerifiedMentorsFn func(ctx context.Context) ([]model.MentorSummary, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) ListVerifiedMentors(ctx context.Context) ([]model.MentorSummary, error) {
	if m.listVerifiedMentorsFn != nil {
		return m.listVerifiedMentorsFn(ctx)
	}
	return nil, nil
}

type mockStorage struct {
	putFn func(ctx context.Context, pathHint string, data []byte, contentType string) (string, error)
	calls []string
}

func (m *mockStorage) Put(ctx context.Context, pathHint string, data []byte, contentType string) (string, error) {
	m.calls = append(m.calls, pathHint)
	if m.putFn != nil {
		return m.putFn(ctx, pathHint, data, contentType)
	}
	return "https://cdn.example.com/" + pathHint, nil
}
