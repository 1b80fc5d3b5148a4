package entity

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationResult maydon -> xabar. Bo'sh bo'lsa Valid.
type ValidationResult struct {
	Errors map[string]string `json:"errors,omitempty"`
}

// Valid xatolar yo'qligini tekshirish
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Fields xatoli maydonlar, alifbo tartibida
func (r ValidationResult) Fields() []string {
	fields := make([]string, 0, len(r.Errors))
	for f := range r.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidationError foydalanuvchi tuzatishi mumkin bo'lgan xato
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Result.Errors))
	for _, f := range e.Result.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Result.Errors[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
