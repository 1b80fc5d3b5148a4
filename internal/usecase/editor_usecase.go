package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
)

// ErrNotEditor foydalanuvchi muharrir emas
var ErrNotEditor = errors.New("user is not an editor")

// EditorUseCase muharrir bilan bog'liq business logic
type EditorUseCase interface {
	// Login parol to'g'ri bo'lsa sessiya ochadi
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout sessiyani yopish
	Logout(ctx context.Context, userID int64) error

	// IsEditor muharrir ekanligini tekshirish
	IsEditor(ctx context.Context, userID int64) (bool, error)

	// RecordSubmission qo'shilgan elementni harakatlar jurnaliga yozish
	RecordSubmission(ctx context.Context, userID int64, item entity.MenuItem) error

	// RecentActions oxirgi harakatlar
	RecentActions(ctx context.Context, limit int) ([]entity.EditorAction, error)
}

type editorUseCase struct {
	editorRepo repository.EditorRepository
	password   string
	log        *logrus.Logger
}

// NewEditorUseCase password bo'sh bo'lsa hech kim login qila olmaydi
func NewEditorUseCase(editorRepo repository.EditorRepository, password string, logger *logrus.Logger) EditorUseCase {
	return &editorUseCase{
		editorRepo: editorRepo,
		password:   password,
		log:        logger,
	}
}

// Login muharrir login qilish
func (u *editorUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	if u.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(u.password)) != 1 {
		u.log.WithField("user_id", userID).Warn("Use Case: editor login rejected")
		return false, nil
	}

	session := entity.EditorSession{
		UserID:       userID,
		LoginTime:    time.Now(),
		LastActivity: time.Now(),
	}
	if err := u.editorRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.logAction(ctx, userID, "login", "Editor logged in")
	u.log.WithField("user_id", userID).Info("Use Case: editor logged in")
	return true, nil
}

// Logout muharrir logout qilish
func (u *editorUseCase) Logout(ctx context.Context, userID int64) error {
	if err := u.editorRepo.DeleteSession(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	u.logAction(ctx, userID, "logout", "Editor logged out")
	return nil
}

// IsEditor faol sessiya bo'lsa faollik vaqtini yangilaydi
func (u *editorUseCase) IsEditor(ctx context.Context, userID int64) (bool, error) {
	ok, err := u.editorRepo.IsEditor(ctx, userID)
	if err != nil || !ok {
		return false, err
	}
	if err := u.editorRepo.Touch(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}

// RecordSubmission qo'shilgan elementni jurnalga yozish
func (u *editorUseCase) RecordSubmission(ctx context.Context, userID int64, item entity.MenuItem) error {
	ok, err := u.editorRepo.IsEditor(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotEditor
	}

	u.logAction(ctx, userID, "add_item", fmt.Sprintf("Added %s (%s) to %s", item.Name, item.ID, item.Category))
	return nil
}

// RecentActions oxirgi harakatlar
func (u *editorUseCase) RecentActions(ctx context.Context, limit int) ([]entity.EditorAction, error) {
	return u.editorRepo.Actions(ctx, limit)
}

func (u *editorUseCase) logAction(ctx context.Context, userID int64, action, details string) {
	err := u.editorRepo.LogAction(ctx, entity.EditorAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
	if err != nil {
		u.log.WithError(err).Warn("Use Case: failed to log editor action")
	}
}
