package service

import (
	"context"
	"sync"
	"time"

	"mineral-catalog/internal/domains/auth/model"
	"mineral-catalog/pkg/cache"
)

// ========================================
// IN-MEMORY STORE
// ========================================

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore keeps sessions in a map. A ttl of 0 never expires.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		sessions: map[string]*model.Session{},
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *memorySessionStore) Save(_ context.Context, s *model.Session) error {
	cp := *s
	m.mu.Lock()
	m.sessions[s.Token] = &cp
	m.mu.Unlock()
	return nil
}

func (m *memorySessionStore) Get(_ context.Context, token string) (*model.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if m.ttl > 0 && m.now().Sub(s.CreatedAt) > m.ttl {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, nil
	}

	cp := *s
	return &cp, nil
}

func (m *memorySessionStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// ========================================
// CACHE-BACKED STORE (Redis)
// ========================================

const sessionKeyPrefix = "session:"

type cacheSessionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheSessionStore stores sessions through c, letting the cache expire
// them after ttl.
func NewCacheSessionStore(c cache.Cache, ttl time.Duration) SessionStore {
	return &cacheSessionStore{cache: c, ttl: ttl}
}

func (r *cacheSessionStore) Save(ctx context.Context, s *model.Session) error {
	return r.cache.Set(ctx, sessionKeyPrefix+s.Token, s, r.ttl)
}

func (r *cacheSessionStore) Get(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	found, err := r.cache.Get(ctx, sessionKeyPrefix+token, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

func (r *cacheSessionStore) Delete(ctx context.Context, token string) error {
	return r.cache.Delete(ctx, sessionKeyPrefix+token)
}
