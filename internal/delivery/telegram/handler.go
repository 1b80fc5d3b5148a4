package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/domain/repository"
	"github.com/yourusername/deep-coffee/internal/metrics"
	"github.com/yourusername/deep-coffee/internal/usecase"
)

// sender BotAPI ning handler ishlatadigan qismi
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Deps handler uchun use case lar
type Deps struct {
	Menu        usecase.MenuUseCase
	Contact     usecase.ContactUseCase
	Barista     usecase.BaristaUseCase
	Editor      usecase.EditorUseCase
	Candidates  repository.CandidateParser
	Metrics     *metrics.Recorder
	Logger      *logrus.Logger
	StaffChatID int64
}

// BotHandler Telegram bot handler
type BotHandler struct {
	api      *tgbotapi.BotAPI
	out      sender
	download func(fileID string) ([]byte, error)

	menu        usecase.MenuUseCase
	contact     usecase.ContactUseCase
	barista     usecase.BaristaUseCase
	editor      usecase.EditorUseCase
	candidates  repository.CandidateParser
	metrics     *metrics.Recorder
	log         *logrus.Logger
	staffChatID int64

	// Admin login kutilayotgan userlar
	passwordMu       sync.RWMutex
	awaitingPassword map[int64]bool

	// Har bir foydalanuvchining tanlagan kategoriyasi
	selectionMu sync.RWMutex
	selections  map[int64]string

	formMu sync.Mutex
	forms  map[int64]*formSession

	contactMu       sync.Mutex
	contactSessions map[int64]*contactSession
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(token string, deps Deps) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	h := newBotHandler(bot, deps)
	h.api = bot
	h.download = h.downloadFile
	return h, nil
}

func newBotHandler(out sender, deps Deps) *BotHandler {
	return &BotHandler{
		out:              out,
		menu:             deps.Menu,
		contact:          deps.Contact,
		barista:          deps.Barista,
		editor:           deps.Editor,
		candidates:       deps.Candidates,
		metrics:          deps.Metrics,
		log:              deps.Logger,
		staffChatID:      deps.StaffChatID,
		awaitingPassword: make(map[int64]bool),
		selections:       make(map[int64]string),
		forms:            make(map[int64]*formSession),
		contactSessions:  make(map[int64]*contactSession),
	}
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	h.log.Infof("Bot @%s ishga tushdi!", h.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.api.GetUpdatesChan(u)
	defer h.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			h.log.Info("Bot to'xtatilmoqda...")
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	userID := message.From.ID

	// Fayl yuborilgan bo'lsa
	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	// Parol kutilayotgan bo'lsa
	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, message)
		return
	}

	// Komandalarni qayta ishlash
	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if message.Text == "" {
		return
	}

	// Ochiq formalar birinchi
	if h.hasForm(userID) {
		h.handleFormInput(ctx, userID, message.Chat.ID, message.Text)
		return
	}
	if h.hasContactSession(userID) {
		h.handleContactInput(ctx, userID, message.Chat.ID, message.Text)
		return
	}

	h.handleFreeText(ctx, message)
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	switch message.Command() {
	case "start":
		h.sendMessage(chatID, welcomeMessage)
	case "help":
		h.sendMessage(chatID, helpMessage)
	case "menu":
		h.sendMenu(ctx, userID, chatID)
	case "contact":
		h.startContact(userID, chatID)
	case "ask":
		h.handleAsk(ctx, message, message.CommandArguments())
	case "clear":
		h.handleClearCommand(ctx, message)
	case "editor":
		h.handleEditorCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "add":
		h.handleAddCommand(ctx, message)
	case "cancel":
		h.handleCancelCommand(userID, chatID)
	default:
		h.sendMessage(chatID, "Bilinmeyen komut. Yardım için /help.")
	}
}

// handleCallback inline tugmalar
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.From == nil {
		return
	}

	// Callback ga javob (spinnerni to'xtatish)
	if _, err := h.out.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		h.log.Warnf("Callback javobida xatolik: %v", err)
	}

	action, arg := parseCallback(cq.Data)
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	userID := cq.From.ID

	switch action {
	case cbCategory, cbBack:
		h.showCategory(ctx, userID, chatID, messageID, arg)
	case cbItem:
		h.showItem(ctx, userID, chatID, messageID, arg)
	case cbPick:
		h.handlePickCategory(ctx, userID, chatID, arg)
	case cbFormCancel:
		h.handleCancelCommand(userID, chatID)
	default:
		h.log.WithField("data", cq.Data).Warn("Unknown callback")
	}
}

// handleFreeText forma yo'q bo'lganda: barista yoki qidiruv
func (h *BotHandler) handleFreeText(ctx context.Context, message *tgbotapi.Message) {
	if h.barista != nil && h.barista.Enabled() {
		h.handleAsk(ctx, message, message.Text)
		return
	}

	results, err := h.menu.Search(ctx, message.Text)
	if err != nil {
		h.log.Errorf("Search error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Arama sırasında hata oluştu.")
		return
	}
	if len(results) == 0 {
		h.sendMessage(message.Chat.ID, "🔍 Eşleşen ürün bulunamadı. Tüm menü için /menu.")
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, formatSearchResults(results))
	msg.ReplyMarkup = itemButtons(results)
	h.send(msg)
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	resp, err := http.Get(file.Link(h.api.Token))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (h *BotHandler) send(c tgbotapi.Chattable) {
	if _, err := h.out.Send(c); err != nil {
		h.log.Errorf("Failed to send message: %v", err)
	}
}

// sendMessage oddiy matn yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

// GetBotUsername bot username ni olish
func (h *BotHandler) GetBotUsername() string {
	if h.api == nil {
		return ""
	}
	return h.api.Self.UserName
}
