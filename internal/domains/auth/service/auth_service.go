package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mineral-catalog/internal/domains/auth/model"
	"mineral-catalog/pkg/logger"
)

// Account seeds the user table.
type Account struct {
	Username string
	Password string
}

type authService struct {
	mu    sync.RWMutex
	users map[string][]byte // username -> bcrypt hash

	adminUsername string
	sessions      SessionStore
	cost          int
	now           func() time.Time
}

// NewAuthService hashes the seed accounts with cost. adminUsername is the
// only account whose sessions are admin sessions.
func NewAuthService(adminUsername string, seed []Account, sessions SessionStore, cost int) (AuthService, error) {
	s := &authService{
		users:         make(map[string][]byte, len(seed)),
		adminUsername: adminUsername,
		sessions:      sessions,
		cost:          cost,
		now:           time.Now,
	}

	for _, a := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password of %s: %w", a.Username, err)
		}
		s.users[a.Username] = hash
	}

	return s, nil
}

func (s *authService) Register(ctx context.Context, username, password string) (*model.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, model.ErrInvalidUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.users[username]; exists {
		s.mu.Unlock()
		return nil, model.ErrUsernameTaken
	}
	s.users[username] = hash
	s.mu.Unlock()

	logger.Info("User registered", map[string]interface{}{"username": username})
	return s.createSession(ctx, username)
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.Session, error) {
	s.mu.RLock()
	hash, ok := s.users[username]
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.createSession(ctx, username)
}

func (s *authService) createSession(ctx context.Context, username string) (*model.Session, error) {
	session := &model.Session{
		Token:     uuid.NewString(),
		Username:  username,
		IsAdmin:   s.IsAdmin(username),
		CreatedAt: s.now(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, model.NewSessionStoreError("save", err)
	}
	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return model.NewSessionStoreError("delete", err)
	}
	return nil
}

func (s *authService) Session(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, model.NewSessionStoreError("get", err)
	}
	return session, nil
}

func (s *authService) IsAdmin(username string) bool {
	return username == s.adminUsername
}
