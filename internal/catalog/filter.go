// Package catalog menyu ro'yxatidan ko'rinadigan qismni ajratuvchi sof funksiyalar.
package catalog

import "github.com/yourusername/deep-coffee/internal/domain/entity"

// AllCategories tanlanmagan holat ("Tümü")
const AllCategories = ""

// Select kategoriya bo'yicha filtrlash. AllCategories bo'lsa items o'zi qaytadi.
// Katalogda yo'q kategoriya uchun bo'sh (nil emas) ro'yxat.
func Select(items []entity.MenuItem, category string) []entity.MenuItem {
	if category == AllCategories {
		return items
	}

	selected := make([]entity.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			selected = append(selected, item)
		}
	}
	return selected
}

// DeriveCategories takrorlanmas kategoriyalar, birinchi uchragan tartibda
func DeriveCategories(items []entity.MenuItem) []string {
	seen := make(map[string]struct{}, len(items))
	categories := make([]string, 0)
	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}

// ContainsCategory tanlov hali tirikligini tekshirish
func ContainsCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

// NextCategory chiplar bo'ylab aylanish: Tümü -> birinchi -> ... -> oxirgi -> Tümü.
// step manfiy bo'lsa orqaga.
func NextCategory(categories []string, current string, step int) string {
	// 0-pozitsiya AllCategories
	pos := 0
	for i, c := range categories {
		if c == current {
			pos = i + 1
			break
		}
	}
	n := len(categories) + 1
	pos = ((pos+step)%n + n) % n
	if pos == 0 {
		return AllCategories
	}
	return categories[pos-1]
}
