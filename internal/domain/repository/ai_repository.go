package repository

import (
	"context"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// AIRepository barista yordamchisi uchun AI
type AIRepository interface {
	// Answer menyu konteksti va tarix bilan savolga javob
	Answer(ctx context.Context, menuContext, question string, history []entity.Turn) (string, error)
}
