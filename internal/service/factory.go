package service

import (
	"github.com/mortyverse/Geurim-Lab/internal/blob"
	"github.com/mortyverse/Geurim-Lab/internal/store"
)

type Services struct {
	stores    *store.Stores
	storage   blob.Storage
	authState *AuthState
}

func NewServices(stores *store.Stores, storage blob.Storage) *Services {
	return &Services{
		stores:    stores,
		storage:   storage,
		authState: NewAuthState(),
	}
}

func (s *Services) Feedback() FeedbackService {
	return NewFeedbackService(s.stores.Feedbacks(), s.stores.Users(), s.storage)
}

func (s *Services) Users() store.UserStore {
	return s.stores.Users()
}

func (s *Services) AuthState() *AuthState {
	return s.authState
}
