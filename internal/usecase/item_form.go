package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// ErrFormClosed yopiq formani tahrirlashga urinish
var ErrFormClosed = errors.New("item form is closed")

// Form maydonlari
const (
	FieldName        = "name"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldCategory    = "category"
)

// FormFields kiritish tartibi
var FormFields = []string{FieldName, FieldPrice, FieldDescription, FieldImage, FieldCategory}

// ItemForm qo'shish oynasi holati: Closed yoki Open(draft).
// Kategoriya tanlagich ham shu draft ga yozadi.
type ItemForm struct {
	menu MenuUseCase

	mu     sync.Mutex
	open   bool
	draft  entity.CandidateItem
	errors map[string]string
}

// NewItemForm yopiq forma
func NewItemForm(menu MenuUseCase) *ItemForm {
	return &ItemForm{menu: menu}
}

// Open bo'sh draft bilan ochish
func (f *ItemForm) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.open = true
	f.draft = entity.CandidateItem{}
	f.errors = nil
}

// IsOpen forma ochiqligini tekshirish
func (f *ItemForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// SetField bitta maydonni o'zgartirish. Tekshiruv yo'q.
func (f *ItemForm) SetField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return ErrFormClosed
	}

	switch field {
	case FieldName:
		f.draft.Name = value
	case FieldPrice:
		f.draft.Price = value
	case FieldDescription:
		f.draft.Description = value
	case FieldImage:
		f.draft.Image = value
	case FieldCategory:
		f.draft.Category = value
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	return nil
}

// PickCategory tanlagichdan kategoriya yozish
func (f *ItemForm) PickCategory(category string) error {
	return f.SetField(FieldCategory, category)
}

// Draft joriy qoralama nusxasi
func (f *ItemForm) Draft() entity.CandidateItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors oxirgi Submit dagi maydon xatolari
func (f *ItemForm) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Cancel draft ni tashlab yopish
func (f *ItemForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.open = false
	f.draft = entity.CandidateItem{}
	f.errors = nil
}

// Submit muvaffaqiyatda yopiladi va tozalanadi. Xatoda draft saqlanadi va xatolar biriktiriladi.
func (f *ItemForm) Submit(ctx context.Context) (*entity.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return nil, ErrFormClosed
	}

	item, err := f.menu.Submit(ctx, f.draft)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			f.errors = verr.Result.Errors
		}
		return nil, err
	}

	f.open = false
	f.draft = entity.CandidateItem{}
	f.errors = nil
	return item, nil
}
