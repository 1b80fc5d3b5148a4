package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/deep-coffee/internal/usecase"
)

// handleAsk baristaga savol
func (h *BotHandler) handleAsk(ctx context.Context, message *tgbotapi.Message, question string) {
	chatID := message.Chat.ID
	question = strings.TrimSpace(question)
	if question == "" {
		h.sendMessage(chatID, "Sorunuzu komutla birlikte yazın, örn. /ask Sütsüz ne önerirsiniz?")
		return
	}

	username := message.From.UserName
	if username == "" {
		username = message.From.FirstName
	}

	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := h.out.Request(typing); err != nil {
		h.log.Debugf("Chat action error: %v", err)
	}

	answer, err := h.barista.Ask(ctx, message.From.ID, username, question)
	switch {
	case errors.Is(err, usecase.ErrAssistantDisabled):
		h.sendMessage(chatID, "🤖 Barista asistanı şu anda kapalı. Menü için /menu.")
		return
	case isQuotaError(err):
		h.sendMessage(chatID, "⏳ Barista şu an çok yoğun, birazdan tekrar deneyin.")
		return
	case err != nil:
		h.log.Errorf("Barista error: %v", err)
		h.sendMessage(chatID, "❌ Üzgünüz, bir hata oluştu. Lütfen tekrar deneyin.")
		return
	}

	h.sendMessage(chatID, answer)
}

// handleClearCommand suhbat tarixini tozalash
func (h *BotHandler) handleClearCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.barista.ClearHistory(ctx, message.From.ID); err != nil {
		h.log.Errorf("Clear history error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Geçmiş temizlenemedi.")
		return
	}
	h.sendMessage(message.Chat.ID, "🧹 Sohbet geçmişi temizlendi.")
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "retry in") || strings.Contains(msg, "rate limit")
}
