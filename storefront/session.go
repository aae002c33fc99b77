package storefront

import (
	"encoding/json"
	"fmt"
	"sync"

	"mithai-mahal/models"
)

const (
	tokenKey = "authToken"
	userKey  = "user"
)

// Session holds the signed-in user's token and profile across restarts.
type Session struct {
	mu      sync.RWMutex
	storage Storage
	token   string
	user    *models.User
}

// LoadSession restores a previous sign-in. Both the token and the user must
// be present, otherwise the session starts signed out.
func LoadSession(storage Storage) (*Session, error) {
	s := &Session{storage: storage}

	token, hasToken, err := storage.Get(tokenKey)
	if err != nil {
		return nil, err
	}
	rawUser, hasUser, err := storage.Get(userKey)
	if err != nil {
		return nil, err
	}
	if !hasToken || !hasUser {
		return s, nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	s.token = string(token)
	s.user = &user
	return s, nil
}

func (s *Session) Set(resp models.AuthResponse) error {
	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.Set(tokenKey, []byte(resp.Token)); err != nil {
		return err
	}
	if err := s.storage.Set(userKey, rawUser); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := resp.User
	s.token = resp.Token
	s.user = &user
	return nil
}

func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Delete(tokenKey); err != nil {
		return err
	}
	return s.storage.Delete(userKey)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	user, ok := s.User()
	return ok && user.Role == models.RoleAdmin
}
