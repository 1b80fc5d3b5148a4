package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/deep-coffee/internal/catalog"
	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// Callback prefikslari. Telegram callback data 64 bayt bilan cheklangan,
// shuning uchun kategoriya nomi emas, indeksi yuboriladi.
const (
	cbCategory   = "cat"
	cbBack       = "back"
	cbItem       = "item"
	cbPick       = "pick"
	cbFormCancel = "form_cancel"

	allToken = "all"
	newToken = "new"
)

const chipsPerRow = 3

func parseCallback(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

// encodeCategory kategoriya -> callback argumenti
func encodeCategory(categories []string, category string) string {
	if category == catalog.AllCategories {
		return allToken
	}
	for i, c := range categories {
		if c == category {
			return strconv.Itoa(i)
		}
	}
	return allToken
}

// decodeCategory argument -> kategoriya. ok=false bo'lsa tanlov eskirgan.
func decodeCategory(categories []string, arg string) (string, bool) {
	if arg == allToken || arg == "" {
		return catalog.AllCategories, true
	}
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= len(categories) {
		return "", false
	}
	return categories[i], true
}

// sendMenu /menu komandasi
func (h *BotHandler) sendMenu(ctx context.Context, userID, chatID int64) {
	text, markup, err := h.renderMenuFor(ctx, userID)
	if err != nil {
		h.log.Errorf("Menu render error: %v", err)
		h.sendMessage(chatID, "❌ Menü yüklenemedi.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	h.send(msg)
}

// showCategory chip bosilganda xabarni tahrirlash
func (h *BotHandler) showCategory(ctx context.Context, userID, chatID int64, messageID int, arg string) {
	categories, err := h.menu.Categories(ctx)
	if err != nil {
		h.log.Errorf("Categories error: %v", err)
		return
	}

	category, ok := decodeCategory(categories, arg)
	if !ok {
		// Eskirgan tanlov: bo'sh ro'yxat
		text, markup := renderMenu(nil, categories, catalog.AllCategories)
		h.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup))
		return
	}
	h.setSelection(userID, category)

	text, markup, err := h.renderMenuFor(ctx, userID)
	if err != nil {
		h.log.Errorf("Menu render error: %v", err)
		return
	}
	h.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup))
}

// showItem mahsulot tafsilotlari
func (h *BotHandler) showItem(ctx context.Context, userID, chatID int64, messageID int, id string) {
	categories, _ := h.menu.Categories(ctx)
	back := backKeyboard(encodeCategory(categories, h.getSelection(userID)))

	item, err := h.menu.Detail(ctx, id)
	if errors.Is(err, entity.ErrItemNotFound) {
		h.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "😕 Ürün bulunamadı.", back))
		return
	}
	if err != nil {
		h.log.Errorf("Detail error: %v", err)
		return
	}

	h.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, formatItemDetail(*item), back))
}

func (h *BotHandler) renderMenuFor(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	categories, err := h.menu.Categories(ctx)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	selected := h.getSelection(userID)
	items, err := h.menu.List(ctx, selected)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	h.metrics.MenuView("telegram", selected)
	text, markup := renderMenu(items, categories, selected)
	return text, markup, nil
}

// renderMenu ro'yxat matni va chip + mahsulot tugmalari
func renderMenu(items []entity.MenuItem, categories []string, selected string) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("☕ DEEP Premium Coffee Menü\n")
	sb.WriteString(fmt.Sprintf("Kategori: %s\n\n", categoryLabel(selected)))

	if len(items) == 0 {
		sb.WriteString("Bu kategoride henüz ürün yok.")
	}
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s · %s\n   %s\n", i+1, item.Name, item.Price, item.Description))
	}

	rows := categoryChips(categories, selected)
	rows = append(rows, itemButtons(items).InlineKeyboard...)
	return strings.TrimRight(sb.String(), "\n"), tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func categoryLabel(category string) string {
	if category == catalog.AllCategories {
		return "Tümü"
	}
	return category
}

// categoryChips "Tümü" birinchi, keyin birinchi uchragan tartibda
func categoryChips(categories []string, selected string) [][]tgbotapi.InlineKeyboardButton {
	chip := func(label, data string, active bool) tgbotapi.InlineKeyboardButton {
		if active {
			label = "✅ " + label
		}
		return tgbotapi.NewInlineKeyboardButtonData(label, data)
	}

	buttons := []tgbotapi.InlineKeyboardButton{
		chip("Tümü", cbCategory+":"+allToken, selected == catalog.AllCategories),
	}
	for i, c := range categories {
		buttons = append(buttons, chip(c, fmt.Sprintf("%s:%d", cbCategory, i), selected == c))
	}
	return chunkButtons(buttons, chipsPerRow)
}

func itemButtons(items []entity.MenuItem) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, item := range items {
		label := fmt.Sprintf("%s · %s", item.Name, item.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbItem+":"+item.ID),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func backKeyboard(categoryArg string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Menüye dön", cbBack+":"+categoryArg),
		),
	)
}

func chunkButtons(buttons []tgbotapi.InlineKeyboardButton, size int) [][]tgbotapi.InlineKeyboardButton {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, b := range buttons {
		row = append(row, b)
		if len(row) == size {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// formatItemDetail tafsilotlar sahifasi
func formatItemDetail(item entity.MenuItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("☕ %s · %s\n", item.Name, item.Price))
	sb.WriteString(fmt.Sprintf("📂 %s\n\n", item.Category))

	desc := item.LongDescription
	if desc == "" {
		desc = item.Description
	}
	sb.WriteString(desc + "\n")

	if len(item.Ingredients) > 0 {
		sb.WriteString("\n🧾 İçindekiler:\n")
		for _, ing := range item.Ingredients {
			sb.WriteString("• " + ing + "\n")
		}
	}
	if item.PreparationTime != "" {
		sb.WriteString(fmt.Sprintf("\n⏱ Hazırlanma süresi: %s\n", item.PreparationTime))
	}
	sb.WriteString("\n🖼 " + item.Image)
	return sb.String()
}

func formatSearchResults(items []entity.MenuItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔍 %d ürün bulundu:\n", len(items)))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("• %s · %s (%s)\n", item.Name, item.Price, item.Category))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (h *BotHandler) setSelection(userID int64, category string) {
	h.selectionMu.Lock()
	defer h.selectionMu.Unlock()
	h.selections[userID] = category
}

func (h *BotHandler) getSelection(userID int64) string {
	h.selectionMu.RLock()
	defer h.selectionMu.RUnlock()
	return h.selections[userID]
}
