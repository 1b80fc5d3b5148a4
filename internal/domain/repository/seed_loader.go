package repository

import (
	"context"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// SeedLoader boshlang'ich katalogni o'qish
type SeedLoader interface {
	LoadSeed(ctx context.Context) ([]entity.MenuItem, error)
}

// CandidateParser fayldan qo'shiladigan qoralamalarni o'qish
type CandidateParser interface {
	ParseCandidates(ctx context.Context, data []byte) ([]entity.CandidateItem, error)
}
