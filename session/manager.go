package session

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"menu-builder-api/gateway"
)

// Manager hands out one live editing session per menu so the stateless HTTP
// surface still gets the coalescing save semantics of a long-lived session.
type Manager struct {
	gw  gateway.Gateway
	bus EventBus.Bus

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session registry over a gateway and event bus
func NewManager(gw gateway.Gateway, bus EventBus.Bus) *Manager {
	return &Manager{
		gw:       gw,
		bus:      bus,
		sessions: make(map[string]*Session),
	}
}

// Bus exposes the change-notification bus for subscribers
func (m *Manager) Bus() EventBus.Bus { return m.bus }

// Gateway exposes the underlying persistence gateway
func (m *Manager) Gateway() gateway.Gateway { return m.gw }

// Get returns the live session for a menu, loading the draft on first use
func (m *Manager) Get(ctx context.Context, menuID string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[menuID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	doc, err := m.gw.LoadDraft(ctx, menuID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[menuID]; ok {
		return s, nil
	}
	s := New(menuID, doc, m.gw, m.bus)
	m.sessions[menuID] = s
	zap.S().Debugw("editing session opened", "menu_id", menuID)
	return s, nil
}

// Drop closes the session for a menu, waiting out any in-flight persist
func (m *Manager) Drop(menuID string) {
	m.mu.Lock()
	s, ok := m.sessions[menuID]
	delete(m.sessions, menuID)
	m.mu.Unlock()
	if ok {
		s.Flush()
	}
}

// Shutdown flushes every live session
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()
	for _, s := range sessions {
		s.Flush()
	}
}
