package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/faq-widget/pkg/util"
)

// Manager owns the live sessions keyed by id. A session lives from mount
// (Create) until unmount (Delete) or until it has been idle for IdleTTL.
type Manager struct {
	cfg      Config
	answerer Answerer
	logger   *slog.Logger
	now      util.Clock

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager constructs an empty session registry.
func NewManager(cfg Config, answerer Answerer, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		answerer: answerer,
		logger:   logger,
		now:      util.NowUTC,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Config exposes the widget options shared by all sessions.
func (m *Manager) Config() Config {
	return m.cfg
}

// Create mounts a new session.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		return nil, ErrSessionLimit
	}
	session := newSession(uuid.New(), m.cfg, m.answerer, m.logger, m.now)
	m.sessions[session.ID()] = session
	m.logger.Debug("chat session created", "session_id", session.ID().String(), "active", len(m.sessions))
	return session, nil
}

// Get looks up a live session.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete unmounts a session and stops its worker.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	session.Discard()
	return nil
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep discards sessions idle for longer than IdleTTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}
	now := m.now()
	var expired []*Session
	m.mu.Lock()
	for id, session := range m.sessions {
		if session.idleSince(now) > m.cfg.IdleTTL {
			expired = append(expired, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, session := range expired {
		session.Discard()
	}
	if len(expired) > 0 {
		m.logger.Info("expired idle chat sessions", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps idle sessions until ctx is cancelled, then discards the rest.
func (m *Manager) Run(ctx context.Context) {
	defer m.Shutdown()
	if m.cfg.IdleTTL <= 0 {
		<-ctx.Done()
		return
	}
	interval := m.cfg.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Shutdown discards every live session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()
	for _, session := range sessions {
		session.Discard()
	}
}
