package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
	"github.com/yourusername/deep-coffee/internal/metrics"
)

// ErrAssistantDisabled AI kaliti berilmagan
var ErrAssistantDisabled = errors.New("barista assistant is disabled")

const (
	baristaTimeout = 20 * time.Second
	historyTurns   = 10
)

// BaristaUseCase menyu haqida savollarga AI javobi
type BaristaUseCase interface {
	Ask(ctx context.Context, userID int64, username, question string) (string, error)
	ClearHistory(ctx context.Context, userID int64) error
	Enabled() bool
}

type baristaUseCase struct {
	aiRepo   repository.AIRepository
	convRepo repository.ConversationRepository
	menu     MenuUseCase
	metrics  *metrics.Recorder
	log      *logrus.Logger
}

// NewBaristaUseCase aiRepo nil bo'lsa yordamchi o'chiq
func NewBaristaUseCase(
	aiRepo repository.AIRepository,
	convRepo repository.ConversationRepository,
	menu MenuUseCase,
	recorder *metrics.Recorder,
	logger *logrus.Logger,
) BaristaUseCase {
	return &baristaUseCase{
		aiRepo:   aiRepo,
		convRepo: convRepo,
		menu:     menu,
		metrics:  recorder,
		log:      logger,
	}
}

// Enabled AI ulanganligini tekshirish
func (u *baristaUseCase) Enabled() bool {
	return u.aiRepo != nil
}

// Ask savolni joriy menyu konteksti bilan AI ga yuborish
func (u *baristaUseCase) Ask(ctx context.Context, userID int64, username, question string) (string, error) {
	if u.aiRepo == nil {
		return "", ErrAssistantDisabled
	}

	// AI so'rovlarini osilib qolmasligi uchun timeout
	ctx, cancel := context.WithTimeout(ctx, baristaTimeout)
	defer cancel()

	history, err := u.convRepo.History(ctx, userID, historyTurns)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	menuContext, err := u.menu.MenuAsText(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to build menu context: %w", err)
	}

	u.log.WithFields(logrus.Fields{
		"user_id": userID,
		"history": len(history),
	}).Debug("Use Case: asking barista")

	started := time.Now()
	answer, err := u.aiRepo.Answer(ctx, menuContext, question, history)
	u.metrics.BaristaLatency(time.Since(started).Seconds())
	if err != nil {
		u.log.WithError(err).Error("Use Case: barista answer failed")
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	turn := entity.Turn{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now(),
	}
	if err := u.convRepo.SaveTurn(ctx, turn); err != nil {
		return "", fmt.Errorf("failed to save turn: %w", err)
	}

	return answer, nil
}

// ClearHistory foydalanuvchi tarixini tozalash
func (u *baristaUseCase) ClearHistory(ctx context.Context, userID int64) error {
	return u.convRepo.Clear(ctx, userID)
}
