package repository

import (
	"context"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// EditorRepository muharrir sessiyalari
type EditorRepository interface {
	CreateSession(ctx context.Context, session entity.EditorSession) error

	// Touch oxirgi faollik vaqtini yangilash
	Touch(ctx context.Context, userID int64) error

	DeleteSession(ctx context.Context, userID int64) error

	IsEditor(ctx context.Context, userID int64) (bool, error)

	LogAction(ctx context.Context, action entity.EditorAction) error

	// Actions oxirgi harakatlar, yangisi birinchi
	Actions(ctx context.Context, limit int) ([]entity.EditorAction, error)
}
