package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/yourusername/deep-coffee/internal/catalog"
	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
)

type memoryMenuRepository struct {
	mu         sync.RWMutex
	items      []entity.MenuItem
	index      map[string]int // ID -> items dagi o'rni
	categories []string       // har bir o'zgarishda items dan qayta hisoblanadi
	newID      func() string
}

// NewMemoryMenuRepository seed ro'yxatidan in-memory katalog yaratish.
// newID nil bo'lsa uuid ishlatiladi.
func NewMemoryMenuRepository(seed []entity.MenuItem, newID func() string) (repository.MenuRepository, error) {
	if newID == nil {
		newID = uuid.NewString
	}

	m := &memoryMenuRepository{
		items: make([]entity.MenuItem, 0, len(seed)),
		index: make(map[string]int, len(seed)),
		newID: newID,
	}

	for _, item := range seed {
		if item.ID == "" {
			return nil, fmt.Errorf("seed item %q has no id", item.Name)
		}
		if _, exists := m.index[item.ID]; exists {
			return nil, fmt.Errorf("seed: %w: %s", entity.ErrDuplicateID, item.ID)
		}
		m.index[item.ID] = len(m.items)
		m.items = append(m.items, item)
	}
	m.categories = catalog.DeriveCategories(m.items)

	return m, nil
}

// Items barcha elementlar nusxasi
func (m *memoryMenuRepository) Items(ctx context.Context) ([]entity.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]entity.MenuItem(nil), m.items...), nil
}

// Categories kategoriyalar nusxasi
func (m *memoryMenuRepository) Categories(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.categories...), nil
}

// Append element qo'shish. Hammasi yoki hech narsa.
func (m *memoryMenuRepository) Append(ctx context.Context, item entity.MenuItem) error {
	if item.ID == "" {
		return errors.New("menu item id is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.index[item.ID]; exists {
		return fmt.Errorf("%w: %s", entity.ErrDuplicateID, item.ID)
	}

	m.index[item.ID] = len(m.items)
	m.items = append(m.items, item)
	m.categories = catalog.DeriveCategories(m.items)
	return nil
}

// GetByID ID bo'yicha elementni olish
func (m *memoryMenuRepository) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pos, exists := m.index[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entity.ErrItemNotFound, id)
	}
	item := m.items[pos]
	return &item, nil
}

// NextID yangi ID
func (m *memoryMenuRepository) NextID() string {
	return m.newID()
}

// Search nom, tavsif va kategoriyada qidirish. Harf registri va diakritika hisobga olinmaydi.
func (m *memoryMenuRepository) Search(ctx context.Context, query string) ([]entity.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	var results []entity.MenuItem
	for _, item := range m.items {
		haystack := foldText(item.Name + " " + item.Description + " " + item.Category + " " + item.LongDescription)
		if matchAllTokens(tokens, haystack) {
			results = append(results, item)
		}
	}
	return results, nil
}

// Len elementlar soni
func (m *memoryMenuRepository) Len(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items), nil
}

// Qidiruv yordamchi funksiyalar

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText "Sıcak İçecekler" -> "sicak icecekler"
func foldText(s string) string {
	// ı va İ NFD da ajralmaydi
	s = strings.NewReplacer("ı", "i", "İ", "i", "I", "i").Replace(s)
	folded, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func queryTokens(q string) []string {
	separators := []string{",", ".", "?", "!", ";", ":", "/", "\\", "-", "_"}
	for _, sep := range separators {
		q = strings.ReplaceAll(q, sep, " ")
	}

	var tokens []string
	for _, f := range strings.Fields(foldText(q)) {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func matchAllTokens(tokens []string, haystack string) bool {
	for _, t := range tokens {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
