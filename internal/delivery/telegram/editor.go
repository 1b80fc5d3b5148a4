package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/usecase"
)

const maxUploadSize = 5 * 1024 * 1024

// formSession /add oynasi. Kategoriya tanlagich ham shu form ga yozadi.
type formSession struct {
	form *usecase.ItemForm
	step int
	// Submit xatosidan keyin faqat shu qadamlar qayta so'raladi
	fixing []int
}

// next keyingi qadam; done=true bo'lsa yuborish vaqti
func (s *formSession) next() (step int, done bool) {
	if len(s.fixing) > 0 {
		s.fixing = s.fixing[1:]
		if len(s.fixing) == 0 {
			return s.step, true
		}
		s.step = s.fixing[0]
		return s.step, false
	}

	s.step++
	if s.step >= len(usecase.FormFields) {
		return s.step, true
	}
	return s.step, false
}

var fieldPrompts = map[string]string{
	usecase.FieldName:        "📝 Ürün adını yazın:",
	usecase.FieldPrice:       "💰 Fiyatı yazın (örn. 45₺):",
	usecase.FieldDescription: "📄 Kısa açıklama yazın (en az 10 karakter):",
	usecase.FieldImage:       "🖼 Görsel URL'sini yazın (https://...):",
	usecase.FieldCategory:    "📂 Kategori seçin veya yeni kategori adını yazın:",
}

var fieldLabels = map[string]string{
	usecase.FieldName:        "Ad",
	usecase.FieldPrice:       "Fiyat",
	usecase.FieldDescription: "Açıklama",
	usecase.FieldImage:       "Görsel",
	usecase.FieldCategory:    "Kategori",
	"email":                  "E-posta",
	"message":                "Mesaj",
}

// handleEditorCommand muharrir login boshlash
func (h *BotHandler) handleEditorCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	// Allaqachon muharrir bo'lsa
	if ok, _ := h.editor.IsEditor(ctx, userID); ok {
		h.sendMessage(message.Chat.ID, "Zaten editör olarak giriş yaptınız. /add ile ürün ekleyebilirsiniz.")
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(message.Chat.ID, "🔐 Editör şifresini girin:")
}

// handlePasswordInput parol kiritilganini qayta ishlash
func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	h.setAwaitingPassword(userID, false)

	// Xabarni o'chirish (xavfsizlik uchun)
	if _, err := h.out.Request(tgbotapi.NewDeleteMessage(message.Chat.ID, message.MessageID)); err != nil {
		h.log.Debugf("Failed to delete password message: %v", err)
	}

	success, err := h.editor.Login(ctx, userID, message.Text)
	if err != nil {
		h.log.Errorf("Login error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Giriş sırasında hata oluştu.")
		return
	}
	if !success {
		h.sendMessage(message.Chat.ID, "❌ Hatalı şifre!")
		return
	}

	h.sendMessage(message.Chat.ID, `✅ Editör paneline hoş geldiniz!

/add - Menüye yeni ürün ekle
Excel (.xlsx) dosyası gönderin - toplu ürün ekleme
/logout - Çıkış`)
}

// handleLogoutCommand muharrir chiqishi
func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	h.dropForm(userID)

	if err := h.editor.Logout(ctx, userID); err != nil {
		h.log.Errorf("Logout error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Çıkış sırasında hata oluştu.")
		return
	}
	h.sendMessage(message.Chat.ID, "👋 Editör oturumu kapatıldı.")
}

// handleAddCommand qo'shish oynasini ochish
func (h *BotHandler) handleAddCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if ok, _ := h.editor.IsEditor(ctx, userID); !ok {
		h.sendMessage(chatID, "❌ Bu komut sadece editörler içindir. /editor ile giriş yapın.")
		return
	}

	form := usecase.NewItemForm(h.menu)
	form.Open()

	h.formMu.Lock()
	h.forms[userID] = &formSession{form: form}
	h.formMu.Unlock()

	h.sendMessage(chatID, "➕ Yeni ürün ekleniyor. İptal için /cancel.")
	h.promptField(ctx, chatID, 0)
}

// handleCancelCommand ochiq formalarni yopish
func (h *BotHandler) handleCancelCommand(userID, chatID int64) {
	hadForm := h.dropForm(userID)
	hadContact := h.dropContactSession(userID)

	if hadForm || hadContact {
		h.sendMessage(chatID, "🚫 İptal edildi.")
		return
	}
	h.sendMessage(chatID, "Açık bir form yok.")
}

// handleFormInput joriy maydonga matn yozish
func (h *BotHandler) handleFormInput(ctx context.Context, userID, chatID int64, text string) {
	session, ok := h.getForm(userID)
	if !ok {
		return
	}

	h.formMu.Lock()
	field := usecase.FormFields[session.step]
	h.formMu.Unlock()

	if err := session.form.SetField(field, strings.TrimSpace(text)); err != nil {
		h.log.Warnf("Form field error: %v", err)
		h.dropForm(userID)
		return
	}
	h.advance(ctx, userID, chatID, session)
}

// handlePickCategory tanlagichdan kategoriya
func (h *BotHandler) handlePickCategory(ctx context.Context, userID, chatID int64, arg string) {
	session, ok := h.getForm(userID)
	if !ok {
		h.sendMessage(chatID, "Açık bir form yok. /add ile başlayın.")
		return
	}

	if arg == newToken {
		h.sendMessage(chatID, "✍️ Yeni kategori adını yazın:")
		return
	}

	categories, err := h.menu.Categories(ctx)
	if err != nil {
		h.log.Errorf("Categories error: %v", err)
		return
	}
	category, ok := decodeCategory(categories, arg)
	if !ok || category == "" {
		h.sendMessage(chatID, "Kategori bulunamadı, tekrar seçin.")
		h.sendCategoryPicker(ctx, chatID)
		return
	}

	if err := session.form.PickCategory(category); err != nil {
		h.log.Warnf("Pick category error: %v", err)
		return
	}

	h.formMu.Lock()
	atCategory := usecase.FormFields[session.step] == usecase.FieldCategory
	h.formMu.Unlock()

	// Eski tanlagich bosilsa faqat draft yangilanadi
	if !atCategory {
		h.sendMessage(chatID, "📂 Kategori: "+category)
		return
	}
	h.advance(ctx, userID, chatID, session)
}

func (h *BotHandler) advance(ctx context.Context, userID, chatID int64, session *formSession) {
	h.formMu.Lock()
	step, done := session.next()
	h.formMu.Unlock()

	if done {
		h.submitForm(ctx, userID, chatID)
		return
	}
	h.promptField(ctx, chatID, step)
}

func (h *BotHandler) promptField(ctx context.Context, chatID int64, step int) {
	field := usecase.FormFields[step]
	if field == usecase.FieldCategory {
		h.sendCategoryPicker(ctx, chatID)
		return
	}
	h.sendMessage(chatID, fieldPrompts[field])
}

// sendCategoryPicker mavjud kategoriyalar + yangi
func (h *BotHandler) sendCategoryPicker(ctx context.Context, chatID int64) {
	categories, err := h.menu.Categories(ctx)
	if err != nil {
		h.log.Errorf("Categories error: %v", err)
	}

	msg := tgbotapi.NewMessage(chatID, fieldPrompts[usecase.FieldCategory])
	msg.ReplyMarkup = categoryPicker(categories)
	h.send(msg)
}

func categoryPicker(categories []string) tgbotapi.InlineKeyboardMarkup {
	buttons := []tgbotapi.InlineKeyboardButton{}
	for i, c := range categories {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(c, fmt.Sprintf("%s:%d", cbPick, i)))
	}
	rows := chunkButtons(buttons, 2)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Yeni kategori", cbPick+":"+newToken),
		tgbotapi.NewInlineKeyboardButtonData("🚫 İptal", cbFormCancel),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// submitForm xatoda draft saqlanadi va birinchi xato maydon qayta so'raladi
func (h *BotHandler) submitForm(ctx context.Context, userID, chatID int64) {
	session, ok := h.getForm(userID)
	if !ok {
		return
	}

	if isEditor, _ := h.editor.IsEditor(ctx, userID); !isEditor {
		h.dropForm(userID)
		h.sendMessage(chatID, "⌛ Editör oturumunuz sona erdi. /editor ile tekrar giriş yapın.")
		return
	}

	item, err := session.form.Submit(ctx)
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		steps := invalidSteps(verr.Result.Errors)
		step := steps[0]
		h.formMu.Lock()
		session.step = step
		session.fixing = steps
		h.formMu.Unlock()

		h.sendMessage(chatID, "⚠️ Lütfen hataları düzeltin:\n"+formatFieldErrors(verr.Result.Errors))
		h.promptField(ctx, chatID, step)
		return
	case err != nil:
		h.log.Errorf("Submit error: %v", err)
		h.dropForm(userID)
		h.sendMessage(chatID, "❌ Ürün eklenemedi, lütfen tekrar deneyin.")
		return
	}

	h.dropForm(userID)
	if err := h.editor.RecordSubmission(ctx, userID, *item); err != nil {
		h.log.Warnf("Record submission error: %v", err)
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Ürün eklendi: %s · %s (%s)", item.Name, item.Price, item.Category))
}

// handleDocumentMessage Excel orqali ko'plab mahsulot qo'shish
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if ok, _ := h.editor.IsEditor(ctx, userID); !ok {
		h.sendMessage(chatID, "❌ Dosyaları sadece editörler yükleyebilir. /editor ile giriş yapın.")
		return
	}

	doc := message.Document
	if doc.FileSize > maxUploadSize {
		h.sendMessage(chatID, "❌ Dosya boyutu 5MB'ı geçmemelidir!")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(chatID, "❌ Sadece Excel (.xlsx) dosyaları kabul edilir!")
		return
	}

	h.sendMessage(chatID, "⏳ Dosya işleniyor...")

	data, err := h.download(doc.FileID)
	if err != nil {
		h.log.Errorf("File download error: %v", err)
		h.sendMessage(chatID, "❌ Dosya indirilemedi.")
		return
	}

	candidates, err := h.candidates.ParseCandidates(ctx, data)
	if err != nil {
		h.log.Errorf("Parse candidates error: %v", err)
		h.sendMessage(chatID, fmt.Sprintf("❌ Dosya okunamadı: %v", err))
		return
	}

	added := 0
	var failures []string
	for i, c := range candidates {
		item, err := h.menu.Submit(ctx, c)
		var verr *entity.ValidationError
		switch {
		case errors.As(err, &verr):
			failures = append(failures, fmt.Sprintf("%d. %s: %s", i+1, c.Name, strings.Join(fieldNames(verr.Result.Fields()), ", ")))
		case err != nil:
			failures = append(failures, fmt.Sprintf("%d. %s: %v", i+1, c.Name, err))
		default:
			added++
			if err := h.editor.RecordSubmission(ctx, userID, *item); err != nil {
				h.log.Warnf("Record submission error: %v", err)
			}
		}
	}

	report := fmt.Sprintf("✅ %d ürün eklendi, %d satır atlandı.", added, len(failures))
	if len(failures) > 0 {
		report += "\n\nHatalı satırlar:\n" + strings.Join(failures, "\n")
	}
	h.sendMessage(chatID, report)
}

// invalidSteps xato maydonlar forma tartibida, kamida bitta qadam
func invalidSteps(errs map[string]string) []int {
	var steps []int
	for i, f := range usecase.FormFields {
		if _, bad := errs[f]; bad {
			steps = append(steps, i)
		}
	}
	if len(steps) == 0 {
		steps = []int{0}
	}
	return steps
}

// formatFieldErrors forma tartibida, keyin qolganlari
func formatFieldErrors(errs map[string]string) string {
	order := append(append([]string{}, usecase.FormFields...), "email", "message")
	var lines []string
	for _, f := range order {
		if msg, ok := errs[f]; ok {
			lines = append(lines, fmt.Sprintf("• %s: %s", fieldLabel(f), msg))
		}
	}
	return strings.Join(lines, "\n")
}

func fieldNames(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldLabel(f))
	}
	return out
}

func fieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func (h *BotHandler) hasForm(userID int64) bool {
	_, ok := h.getForm(userID)
	return ok
}

func (h *BotHandler) getForm(userID int64) (*formSession, bool) {
	h.formMu.Lock()
	defer h.formMu.Unlock()
	s, ok := h.forms[userID]
	return s, ok
}

// dropForm draft ni tashlab yuborish
func (h *BotHandler) dropForm(userID int64) bool {
	h.formMu.Lock()
	defer h.formMu.Unlock()

	s, ok := h.forms[userID]
	if ok {
		s.form.Cancel()
		delete(h.forms, userID)
	}
	return ok
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.passwordMu.RLock()
	defer h.passwordMu.RUnlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.passwordMu.Lock()
	defer h.passwordMu.Unlock()

	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}
