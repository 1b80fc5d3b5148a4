package repository

import (
	"context"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// ConversationRepository barista suhbatlari tarixi
type ConversationRepository interface {
	SaveTurn(ctx context.Context, turn entity.Turn) error

	// History oxirgi limit ta savol-javob, eskisi birinchi
	History(ctx context.Context, userID int64, limit int) ([]entity.Turn, error)

	Clear(ctx context.Context, userID int64) error
}
