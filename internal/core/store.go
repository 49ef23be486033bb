// Package store provides the in-memory account storage behind the stub
// account service. The real service owns persistence; the stub only needs
// enough state to exercise the client pipeline end to end.
package store

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/duynhne/account-sdk/internal/core/domain"
)

// AccountStore is a mutex-guarded account map keyed by id.
type AccountStore struct {
	mu        sync.Mutex
	byID      map[string]domain.User
	passwords map[string]string
	nextID    int
}

// NewAccountStore creates an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:      make(map[string]domain.User),
		passwords: make(map[string]string),
		nextID:    1,
	}
}

// Seed inserts an account with a known id and password, used to provision the
// identity behind the stub's bearer credential.
func (s *AccountStore) Seed(user domain.User, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[user.ID] = user
	s.passwords[user.ID] = password
}

// Create registers a new account. Email casing is normalized: the server is
// the source of truth for the representation it hands back.
func (s *AccountStore) Create(name, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range s.byID {
		if u.Email == email {
			return nil, fmt.Errorf("create account %q: %w", email, domain.ErrUserExists)
		}
	}

	user := domain.User{
		ID:    strconv.Itoa(s.nextID),
		Name:  name,
		Email: email,
	}
	s.nextID++
	s.byID[user.ID] = user
	s.passwords[user.ID] = password

	return &user, nil
}

// Get returns the account with the given id.
func (s *AccountStore) Get(id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("get account %q: %w", id, domain.ErrUserNotFound)
	}
	return &user, nil
}

// UpdateProfile applies a profile update. When the record carries a password
// change, the current password must match the stored one.
func (s *AccountStore) UpdateProfile(id string, record domain.AccountRecord) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("update account %q: %w", id, domain.ErrUserNotFound)
	}

	if record.OldPassword != "" {
		if s.passwords[id] != record.OldPassword {
			return nil, fmt.Errorf("update account %q: %w", id, domain.ErrWrongPassword)
		}
		s.passwords[id] = record.Password
	}

	user.Name = record.Name
	user.Email = strings.ToLower(record.Email)
	s.byID[id] = user

	return &user, nil
}

// SetAvatar stores a new avatar payload and regenerates the avatar URL.
func (s *AccountStore) SetAvatar(id string, filename string, data io.Reader) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("set avatar for account %q: %w", id, domain.ErrUserNotFound)
	}

	n, err := io.Copy(io.Discard, data)
	if err != nil {
		return nil, fmt.Errorf("read avatar payload: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("set avatar for account %q: empty payload", id)
	}

	user.AvatarURL = fmt.Sprintf("http://localhost/files/%s-%s", id, filename)
	s.byID[id] = user

	return &user, nil
}
