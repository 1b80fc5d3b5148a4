// Package validation menyu qoralamasi va aloqa formasi qoidalari.
package validation

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// PricePattern raqamlar va darhol ₺ belgisi ("45₺")
var PricePattern = regexp.MustCompile(`^[0-9]+₺$`)

type candidateForm struct {
	Name        string `json:"name" validate:"notblank,min=2"`
	Price       string `json:"price" validate:"notblank,menuprice"`
	Description string `json:"description" validate:"notblank,min=10"`
	Image       string `json:"image" validate:"notblank,absurl"`
	Category    string `json:"category" validate:"notblank"`
}

type contactForm struct {
	Name    string `json:"name" validate:"notblank,min=2"`
	Email   string `json:"email" validate:"notblank,email"`
	Message string `json:"message" validate:"notblank,min=10"`
}

var candidateMessages = map[string]string{
	"name.notblank":        "Ürün adı zorunludur",
	"name.min":             "Ürün adı en az 2 karakter olmalıdır",
	"price.notblank":       "Fiyat zorunludur",
	"price.menuprice":      "Fiyat rakamlardan oluşmalı ve ₺ ile bitmelidir (örn. 45₺)",
	"description.notblank": "Açıklama zorunludur",
	"description.min":      "Açıklama en az 10 karakter olmalıdır",
	"image.notblank":       "Görsel adresi zorunludur",
	"image.absurl":         "Geçerli bir görsel URL'si giriniz",
	"category.notblank":    "Kategori zorunludur",
}

var contactMessages = map[string]string{
	"name.notblank":    "İsim alanı zorunludur",
	"name.min":         "Ad en az 2 karakter olmalıdır",
	"email.notblank":   "E-posta alanı zorunludur",
	"email.email":      "Geçerli bir e-posta adresi giriniz",
	"message.notblank": "Mesaj alanı zorunludur",
	"message.min":      "Mesaj en az 10 karakter olmalıdır",
}

// Rules qoidalar to'plami. Bir nechta goroutine dan ishlatish xavfsiz.
type Rules struct {
	validate *validator.Validate
}

// NewRules yangi qoidalar to'plami
func NewRules() *Rules {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Xatolar faqat ro'yxatdan o'tkazishda chiqadi, teglar statik
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.ValidString(s) && strings.TrimSpace(s) != ""
	})
	_ = v.RegisterValidation("menuprice", func(fl validator.FieldLevel) bool {
		return PricePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("absurl", func(fl validator.FieldLevel) bool {
		return IsAbsoluteURL(fl.Field().String())
	})

	return &Rules{validate: v}
}

// ValidateCandidate har bir maydonni alohida tekshiradi, barcha xatolar birga qaytadi
func (r *Rules) ValidateCandidate(c entity.CandidateItem) entity.ValidationResult {
	return r.run(candidateForm{
		Name:        c.Name,
		Price:       c.Price,
		Description: c.Description,
		Image:       c.Image,
		Category:    c.Category,
	}, candidateMessages)
}

// ValidateContact aloqa formasini tekshirish
func (r *Rules) ValidateContact(m entity.ContactMessage) entity.ValidationResult {
	return r.run(contactForm{
		Name:    m.Name,
		Email:   m.Email,
		Message: m.Message,
	}, contactMessages)
}

func (r *Rules) run(form any, messages map[string]string) entity.ValidationResult {
	err := r.validate.Struct(form)
	if err == nil {
		return entity.ValidationResult{}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError faqat noto'g'ri argumentda bo'ladi
		return entity.ValidationResult{Errors: map[string]string{"_": err.Error()}}
	}

	result := entity.ValidationResult{Errors: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		result.Errors[fe.Field()] = msg
	}
	return result
}

// IsAbsoluteURL sxema va host bor bo'lishi kerak. Manzilga murojaat qilinmaydi.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
