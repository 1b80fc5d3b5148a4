package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
)

// SessionTTL faolsizlikdan keyin sessiya tugaydi
const SessionTTL = 24 * time.Hour

type memoryEditorRepository struct {
	mu       sync.RWMutex
	sessions map[int64]entity.EditorSession
	actions  []entity.EditorAction
	now      func() time.Time
}

// NewMemoryEditorRepository in-memory muharrir repository yaratish
func NewMemoryEditorRepository() repository.EditorRepository {
	return newMemoryEditorRepository(time.Now)
}

func newMemoryEditorRepository(now func() time.Time) *memoryEditorRepository {
	return &memoryEditorRepository{
		sessions: make(map[int64]entity.EditorSession),
		now:      now,
	}
}

// CreateSession sessiya yaratish
func (m *memoryEditorRepository) CreateSession(ctx context.Context, session entity.EditorSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.LastActivity = m.now()
	m.sessions[session.UserID] = session
	return nil
}

// Touch faollikni yangilash
func (m *memoryEditorRepository) Touch(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[userID]
	if !exists {
		return fmt.Errorf("session not found for user %d", userID)
	}
	session.LastActivity = m.now()
	m.sessions[userID] = session
	return nil
}

// DeleteSession sessiyani o'chirish (logout)
func (m *memoryEditorRepository) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// IsEditor foydalanuvchi muharrirligini tekshirish
func (m *memoryEditorRepository) IsEditor(ctx context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return false, nil
	}
	return m.now().Sub(session.LastActivity) <= SessionTTL, nil
}

// LogAction harakatni yozib qo'yish
func (m *memoryEditorRepository) LogAction(ctx context.Context, action entity.EditorAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	return nil
}

// Actions oxirgi harakatlar
func (m *memoryEditorRepository) Actions(ctx context.Context, limit int) ([]entity.EditorAction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.EditorAction, 0, len(m.actions))
	for i := len(m.actions) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.actions[i])
	}
	return out, nil
}
