package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/datebook/internal/store"
)

// MockUserStore is a thread-safe in-memory implementation of the user store
// consumed by the API for testing.
type MockUserStore struct {
	mu    sync.Mutex
	Users map[string]store.UserRow // keyed by email

	InsertErr error
	GetErr    error
	ListErr   error
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: make(map[string]store.UserRow)}
}

func (m *MockUserStore) InsertUser(_ context.Context, id, username, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return m.InsertErr
	}
	if _, exists := m.Users[email]; exists {
		return store.ErrEmailTaken
	}
	m.Users[email] = store.UserRow{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return nil
}

func (m *MockUserStore) GetUserByEmail(_ context.Context, email string) (*store.UserRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	u, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (m *MockUserStore) ListUsers(_ context.Context) ([]store.UserRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var users []store.UserRow
	for _, u := range m.Users {
		users = append(users, u)
	}
	return users, nil
}
