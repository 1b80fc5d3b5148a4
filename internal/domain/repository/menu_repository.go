package repository

import (
	"context"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// MenuRepository sessiya davomidagi menyu katalogi
type MenuRepository interface {
	// Items barcha elementlar, qo'shilish tartibida
	Items(ctx context.Context) ([]entity.MenuItem, error)

	// Categories katalogdagi kategoriyalar, birinchi uchragan tartibda
	Categories(ctx context.Context) ([]string, error)

	// Append yangi element qo'shish. ID band bo'lsa entity.ErrDuplicateID
	Append(ctx context.Context, item entity.MenuItem) error

	// GetByID ID bo'yicha element. Topilmasa entity.ErrItemNotFound
	GetByID(ctx context.Context, id string) (*entity.MenuItem, error)

	// NextID yangi ID yaratish
	NextID() string

	// Search nom, tavsif va kategoriya bo'yicha qidirish
	Search(ctx context.Context, query string) ([]entity.MenuItem, error)

	// Len elementlar soni
	Len(ctx context.Context) (int, error)
}
