package entity

import "errors"

var (
	// ErrDuplicateID katalogda shu ID allaqachon bor
	ErrDuplicateID = errors.New("menu item id already exists")

	// ErrItemNotFound ID bo'yicha element topilmadi
	ErrItemNotFound = errors.New("menu item not found")

	// ErrIDGeneratorFault qayta urinishdan keyin ham ID to'qnashdi
	ErrIDGeneratorFault = errors.New("id generator produced a colliding id twice")
)

// MenuItem menyudagi bitta mahsulot
type MenuItem struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Price           string   `json:"price" yaml:"price"` // "45₺" ko'rinishida, son emas
	Description     string   `json:"description" yaml:"description"`
	Image           string   `json:"image" yaml:"image"`
	Category        string   `json:"category" yaml:"category"`
	LongDescription string   `json:"longDescription,omitempty" yaml:"longDescription"`
	Ingredients     []string `json:"ingredients,omitempty" yaml:"ingredients"`
	PreparationTime string   `json:"preparationTime,omitempty" yaml:"preparationTime"`
}

// CandidateItem hali tekshirilmagan qoralama (ID yo'q)
type CandidateItem struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// Promote qoralamadan yangi ID bilan MenuItem yasash
func (c CandidateItem) Promote(id string) MenuItem {
	return MenuItem{
		ID:          id,
		Name:        c.Name,
		Price:       c.Price,
		Description: c.Description,
		Image:       c.Image,
		Category:    c.Category,
	}
}
