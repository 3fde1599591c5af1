package state

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/model"
)

// Manager хранит сессии пользователей в памяти процесса
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*model.Session // chatID -> Session
	now      func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*model.Session),
		now:      time.Now,
	}
}

// Get возвращает копию сессии, чтобы избежать race condition
func (sm *Manager) Get(_ context.Context, chatID int64) (*model.Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if s, exists := sm.sessions[chatID]; exists {
		return s.Clone(), nil
	}
	return nil, nil
}

// Save сохраняет копию сессии
func (sm *Manager) Save(_ context.Context, session *model.Session) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	c := session.Clone()
	c.UpdatedAt = sm.now()
	sm.sessions[session.ChatID] = c
	return nil
}

// Delete удаляет сессию
func (sm *Manager) Delete(_ context.Context, chatID int64) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, chatID)
	return nil
}

// PurgeIdle удаляет сессии, которые не менялись дольше ttl
func (sm *Manager) PurgeIdle(_ context.Context, ttl time.Duration) (int, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-ttl)
	purged := 0
	for chatID, s := range sm.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(sm.sessions, chatID)
			purged++
		}
	}
	return purged, nil
}

// Len количество активных сессий
func (sm *Manager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
