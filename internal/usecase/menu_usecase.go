package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/catalog"
	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
	"github.com/yourusername/deep-coffee/internal/metrics"
	"github.com/yourusername/deep-coffee/internal/validation"
)

// MenuUseCase menyu bilan bog'liq business logic
type MenuUseCase interface {
	// Submit qoralamani tekshirib katalogga qo'shish.
	// Noto'g'ri bo'lsa *entity.ValidationError, katalog o'zgarmaydi.
	Submit(ctx context.Context, candidate entity.CandidateItem) (*entity.MenuItem, error)

	// List kategoriya bo'yicha ko'rinadigan ro'yxat (catalog.AllCategories = hammasi)
	List(ctx context.Context, category string) ([]entity.MenuItem, error)

	// Categories mavjud kategoriyalar
	Categories(ctx context.Context) ([]string, error)

	// Detail bitta element. Topilmasa entity.ErrItemNotFound
	Detail(ctx context.Context, id string) (*entity.MenuItem, error)

	// Search matn bo'yicha qidirish
	Search(ctx context.Context, query string) ([]entity.MenuItem, error)

	// MenuAsText kategoriyalar bo'yicha guruhlangan menyu (AI uchun)
	MenuAsText(ctx context.Context) (string, error)
}

type menuUseCase struct {
	menuRepo repository.MenuRepository
	rules    *validation.Rules
	metrics  *metrics.Recorder
	log      *logrus.Logger
}

// NewMenuUseCase yangi MenuUseCase yaratish
func NewMenuUseCase(
	menuRepo repository.MenuRepository,
	rules *validation.Rules,
	recorder *metrics.Recorder,
	logger *logrus.Logger,
) MenuUseCase {
	return &menuUseCase{
		menuRepo: menuRepo,
		rules:    rules,
		metrics:  recorder,
		log:      logger,
	}
}

// Submit tekshirish -> ID berish -> qo'shish. ID to'qnashsa bir marta qayta urinadi.
func (u *menuUseCase) Submit(ctx context.Context, candidate entity.CandidateItem) (*entity.MenuItem, error) {
	candidate = trimCandidate(candidate)
	result := u.rules.ValidateCandidate(candidate)
	if !result.Valid() {
		u.log.WithField("fields", result.Fields()).Info("Use Case: candidate rejected by validation")
		u.metrics.Submission(metrics.OutcomeInvalid)
		return nil, &entity.ValidationError{Result: result}
	}

	item := candidate.Promote(u.menuRepo.NextID())
	err := u.menuRepo.Append(ctx, item)
	if errors.Is(err, entity.ErrDuplicateID) {
		u.log.WithField("id", item.ID).Warn("Use Case: generated id collided, retrying once")
		u.metrics.Submission(metrics.OutcomeRetried)

		item.ID = u.menuRepo.NextID()
		err = u.menuRepo.Append(ctx, item)
		if errors.Is(err, entity.ErrDuplicateID) {
			u.log.WithField("id", item.ID).Error("Use Case: id generator collided twice")
			u.metrics.Submission(metrics.OutcomeFault)
			return nil, fmt.Errorf("%w: %s", entity.ErrIDGeneratorFault, item.ID)
		}
	}
	if err != nil {
		u.log.WithError(err).Error("Use Case: failed to append menu item")
		return nil, fmt.Errorf("failed to append menu item: %w", err)
	}

	u.log.WithFields(logrus.Fields{
		"id":       item.ID,
		"name":     item.Name,
		"category": item.Category,
	}).Info("Use Case: menu item added")
	u.metrics.Submission(metrics.OutcomeAdded)
	if n, err := u.menuRepo.Len(ctx); err == nil {
		u.metrics.CatalogSize(n)
	}

	return &item, nil
}

// List kategoriya bo'yicha filtrlash
func (u *menuUseCase) List(ctx context.Context, category string) ([]entity.MenuItem, error) {
	items, err := u.menuRepo.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	return catalog.Select(items, category), nil
}

// Categories mavjud kategoriyalar
func (u *menuUseCase) Categories(ctx context.Context) ([]string, error) {
	return u.menuRepo.Categories(ctx)
}

// Detail bitta element
func (u *menuUseCase) Detail(ctx context.Context, id string) (*entity.MenuItem, error) {
	return u.menuRepo.GetByID(ctx, id)
}

// Search matn bo'yicha qidirish
func (u *menuUseCase) Search(ctx context.Context, query string) ([]entity.MenuItem, error) {
	return u.menuRepo.Search(ctx, query)
}

// MenuAsText menyuni matn ko'rinishida olish
func (u *menuUseCase) MenuAsText(ctx context.Context) (string, error) {
	items, err := u.menuRepo.Items(ctx)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", fmt.Errorf("menu is empty")
	}

	var sb strings.Builder
	sb.WriteString("=== DEEP PREMIUM COFFEE MENÜSÜ ===\n")

	// Kategoriyalar birinchi uchragan tartibda
	for _, category := range catalog.DeriveCategories(items) {
		sb.WriteString(fmt.Sprintf("\n📂 %s:\n", category))
		for i, item := range catalog.Select(items, category) {
			sb.WriteString(fmt.Sprintf("%d. %s - %s", i+1, item.Name, item.Price))
			if item.Description != "" {
				sb.WriteString(fmt.Sprintf("\n   %s", item.Description))
			}
			if len(item.Ingredients) > 0 {
				sb.WriteString(fmt.Sprintf("\n   Malzemeler: %s", strings.Join(item.Ingredients, ", ")))
			}
			if item.PreparationTime != "" {
				sb.WriteString(fmt.Sprintf("\n   Hazırlanma: %s", item.PreparationTime))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// trimCandidate chetdagi bo'shliqlar bilan dublikat kategoriya chiqmasin
func trimCandidate(c entity.CandidateItem) entity.CandidateItem {
	return entity.CandidateItem{
		Name:        strings.TrimSpace(c.Name),
		Price:       strings.TrimSpace(c.Price),
		Description: strings.TrimSpace(c.Description),
		Image:       strings.TrimSpace(c.Image),
		Category:    strings.TrimSpace(c.Category),
	}
}
