package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

const (
	contactName = iota
	contactEmail
	contactMessage
)

var contactPrompts = []string{
	"👤 Adınız:",
	"📧 E-posta adresiniz:",
	"💬 Mesajınız (en az 10 karakter):",
}

type contactSession struct {
	step int
	msg  entity.ContactMessage
}

// startContact /contact komandasi
func (h *BotHandler) startContact(userID, chatID int64) {
	h.dropForm(userID)

	h.contactMu.Lock()
	h.contactSessions[userID] = &contactSession{}
	h.contactMu.Unlock()

	h.sendMessage(chatID, "📮 Bize ulaşın. İptal için /cancel.\n\n"+contactPrompts[contactName])
}

// handleContactInput bosqichma-bosqich aloqa formasi
func (h *BotHandler) handleContactInput(ctx context.Context, userID, chatID int64, text string) {
	h.contactMu.Lock()
	session, ok := h.contactSessions[userID]
	if !ok {
		h.contactMu.Unlock()
		return
	}

	value := strings.TrimSpace(text)
	switch session.step {
	case contactName:
		session.msg.Name = value
	case contactEmail:
		session.msg.Email = value
	case contactMessage:
		session.msg.Message = value
	}
	session.step++
	step := session.step
	msg := session.msg
	h.contactMu.Unlock()

	if step < len(contactPrompts) {
		h.sendMessage(chatID, contactPrompts[step])
		return
	}

	err := h.contact.Send(ctx, msg, func(delivered entity.ContactMessage) {
		h.sendMessage(chatID, "✅ Mesajınız başarıyla gönderildi!")
		h.forwardToStaff(delivered)
	})

	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		restart := firstInvalidContactStep(verr.Result.Errors)
		h.contactMu.Lock()
		session.step = restart
		h.contactMu.Unlock()

		h.sendMessage(chatID, "⚠️ Lütfen hataları düzeltin:\n"+formatFieldErrors(verr.Result.Errors))
		h.sendMessage(chatID, contactPrompts[restart])
		return
	case err != nil:
		h.log.Errorf("Contact send error: %v", err)
		h.dropContactSession(userID)
		h.sendMessage(chatID, "❌ Mesaj gönderilemedi.")
		return
	}

	h.dropContactSession(userID)
	h.sendMessage(chatID, "⏳ Gönderiliyor...")
}

func (h *BotHandler) forwardToStaff(m entity.ContactMessage) {
	if h.staffChatID == 0 {
		return
	}
	h.sendMessage(h.staffChatID, fmt.Sprintf("📮 Yeni iletişim mesajı\n👤 %s\n📧 %s\n\n%s", m.Name, m.Email, m.Message))
}

func firstInvalidContactStep(errs map[string]string) int {
	for i, f := range []string{"name", "email", "message"} {
		if _, bad := errs[f]; bad {
			return i
		}
	}
	return contactName
}

func (h *BotHandler) hasContactSession(userID int64) bool {
	h.contactMu.Lock()
	defer h.contactMu.Unlock()
	_, ok := h.contactSessions[userID]
	return ok
}

func (h *BotHandler) dropContactSession(userID int64) bool {
	h.contactMu.Lock()
	defer h.contactMu.Unlock()
	_, ok := h.contactSessions[userID]
	delete(h.contactSessions, userID)
	return ok
}
