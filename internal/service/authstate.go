package service

import (
	"sync"

	"github.com/mortyverse/Geurim-Lab/internal/model"
)

// AuthState is the process-scoped holder of the currently authenticated user,
// with an explicit subscribe/unsubscribe lifecycle. Screens observe it
// instead of each re-deriving the session from the identity collaborator.
type AuthState struct {
	mu      sync.RWMutex
	current *model.User
	subs    map[int]func(*model.User)
	nextSub int
}

func NewAuthState() *AuthState {
	return &AuthState{subs: make(map[int]func(*model.User))}
}

// Current returns the signed-in user, or nil when signed out.
func (a *AuthState) Current() *model.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// Set replaces the current user (nil on sign-out) and notifies subscribers.
func (a *AuthState) Set(u *model.User) {
	a.mu.Lock()
	a.current = u
	fns := make([]func(*model.User), 0, len(a.subs))
	for _, fn := range a.subs {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	// Deliver outside the lock so a subscriber may call back in.
	for _, fn := range fns {
		fn(u)
	}
}

// Subscribe registers fn for auth changes, delivers the current value
// immediately, and returns the unsubscribe func.
func (a *AuthState) Subscribe(fn func(*model.User)) (unsubscribe func()) {
	a.mu.Lock()
	token := a.nextSub
	a.nextSub++
	a.subs[token] = fn
	current := a.current
	a.mu.Unlock()

	fn(current)

	return func() {
		a.mu.Lock()
		delete(a.subs, token)
		a.mu.Unlock()
	}
}
