package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
)

type memoryConversationRepository struct {
	mu            sync.RWMutex
	conversations map[int64]*entity.Conversation
	maxSize       int
}

// NewMemoryConversationRepository har bir foydalanuvchi uchun oxirgi maxSize ta suhbat
func NewMemoryConversationRepository(maxSize int) repository.ConversationRepository {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &memoryConversationRepository{
		conversations: make(map[int64]*entity.Conversation),
		maxSize:       maxSize,
	}
}

// SaveTurn savol-javobni saqlash
func (m *memoryConversationRepository) SaveTurn(ctx context.Context, turn entity.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, exists := m.conversations[turn.UserID]
	if !exists {
		conv = &entity.Conversation{UserID: turn.UserID}
		m.conversations[turn.UserID] = conv
	}

	conv.Turns = append(conv.Turns, turn)
	conv.LastUsed = time.Now()

	// Maksimal hajmni nazorat qilish
	if len(conv.Turns) > m.maxSize {
		conv.Turns = append([]entity.Turn(nil), conv.Turns[len(conv.Turns)-m.maxSize:]...)
	}
	return nil
}

// History oxirgi limit ta suhbat
func (m *memoryConversationRepository) History(ctx context.Context, userID int64, limit int) ([]entity.Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, exists := m.conversations[userID]
	if !exists {
		return []entity.Turn{}, nil
	}

	turns := conv.Turns
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return append([]entity.Turn(nil), turns...), nil
}

// Clear foydalanuvchi tarixini tozalash
func (m *memoryConversationRepository) Clear(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.conversations, userID)
	return nil
}
