package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
	"github.com/yourusername/deep-coffee/internal/infrastructure/storage"
	"github.com/yourusername/deep-coffee/internal/usecase"
	"github.com/yourusername/deep-coffee/internal/validation"
)

func newTestModel(t *testing.T) (Model, repository.MenuRepository) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo, err := storage.NewMemoryMenuRepository([]entity.MenuItem{
		{ID: "1", Name: "Espresso", Price: "30₺", Description: "Yoğun kahve deneyimi", Image: "https://example.com/e.jpg", Category: "Sıcak İçecekler", PreparationTime: "2-3 dakika"},
		{ID: "2", Name: "Cappuccino", Price: "45₺", Description: "Espresso ve süt köpüğü", Image: "https://example.com/c.jpg", Category: "Sıcak İçecekler"},
		{ID: "3", Name: "Latte", Price: "42₺", Description: "Espresso ve bol süt", Image: "https://example.com/l.jpg", Category: "Sıcak İçecekler"},
		{ID: "4", Name: "Cold Brew", Price: "55₺", Description: "18 saat demlenmiş", Image: "https://example.com/cb.jpg", Category: "Soğuk İçecekler"},
	}, nil)
	require.NoError(t, err)

	menu := usecase.NewMenuUseCase(repo, validation.NewRules(), nil, logger)
	return NewModel(context.Background(), menu, 120, nil, logger), repo
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyPgDown   = tea.KeyMsg{Type: tea.KeyPgDown}
	keyPgUp     = tea.KeyMsg{Type: tea.KeyPgUp}
	keyCtrlP    = tea.KeyMsg{Type: tea.KeyCtrlP}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func TestCategoryChips(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Len(t, m.items, 4)

	m = press(m, keyTab)
	assert.Equal(t, "Sıcak İçecekler", m.selected)
	assert.Len(t, m.items, 3)

	m = press(m, keyTab)
	assert.Equal(t, "Soğuk İçecekler", m.selected)
	assert.Len(t, m.items, 1)

	m = press(m, keyTab)
	assert.Equal(t, "", m.selected)
	assert.Len(t, m.items, 4)

	m = press(m, keyShiftTab)
	assert.Equal(t, "Soğuk İçecekler", m.selected)
}

func TestScrollDrivesTransforms(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, keyDown)
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, 120.0, m.driver.Offset())

	first := m.driver.Transform(0)
	assert.InDelta(t, 0.5, first.Scale, 1e-9)
	assert.InDelta(t, 0.0, first.Opacity, 1e-9)
	assert.NotContains(t, m.View(), "Espresso · 30₺")

	m = press(m, keyPgDown)
	assert.Equal(t, 3, m.cursor)
	m = press(m, keyPgDown)
	assert.Equal(t, 3, m.cursor, "cursor clamps at the last item")

	m = press(m, keyPgUp, keyPgUp)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0.0, m.driver.Offset())
	assert.Contains(t, m.View(), "Espresso · 30₺")

	// Kategoriya almashsa scroll boshiga qaytadi
	m = press(m, keyDown, keyTab)
	assert.Equal(t, 0.0, m.driver.Offset())
}

func TestDetailView(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, keyEnter)
	require.Equal(t, viewDetail, m.currentView)
	assert.Equal(t, "1", m.detail.ID)
	assert.Contains(t, m.View(), "2-3 dakika")

	m = press(m, keyEsc)
	assert.Equal(t, viewMenu, m.currentView)
}

func TestAddItemForm(t *testing.T) {
	m, repo := newTestModel(t)
	ctx := context.Background()

	m = press(m, runes("a"))
	require.Equal(t, viewForm, m.currentView)

	m = press(m,
		runes("Mocha"), keyEnter,
		runes("50TL"), keyEnter,
		runes("Çikolatalı özel karışım kahve"), keyEnter,
		runes("https://example.com/m.jpg"), keyEnter,
	)
	assert.Equal(t, 4, m.focus)

	// Tanlagich shu draft ga yozadi
	m = press(m, keyCtrlP)
	assert.Equal(t, "Sıcak İçecekler", m.form.Draft().Category)
	assert.Equal(t, "Sıcak İçecekler", m.inputs[4].Value())

	m = press(m, keyCtrlS)
	assert.Equal(t, viewForm, m.currentView)
	assert.Contains(t, m.fieldErrors, "price")
	assert.Equal(t, 1, m.focus)
	n, _ := repo.Len(ctx)
	assert.Equal(t, 4, n)

	// Draft saqlangan
	assert.Equal(t, "Mocha", m.form.Draft().Name)

	m.inputs[1].SetValue("")
	m = press(m, runes("50₺"), keyCtrlS)
	assert.Equal(t, viewMenu, m.currentView)
	assert.Contains(t, m.status, "Mocha")

	n, _ = repo.Len(ctx)
	assert.Equal(t, 5, n)
	assert.Len(t, m.items, 5)
}

func TestAddItemForm_NewCategoryAndCancel(t *testing.T) {
	m, repo := newTestModel(t)

	m = press(m, runes("a"),
		runes("San Sebastian"), keyTab,
		runes("90₺"), keyTab,
		runes("Yanık cheesecake, ev yapımı"), keyTab,
		runes("https://example.com/s.jpg"), keyTab,
		runes("Tatlılar"), keyEnter,
	)
	require.Equal(t, viewMenu, m.currentView)
	assert.Equal(t, []string{"Sıcak İçecekler", "Soğuk İçecekler", "Tatlılar"}, m.categories)

	m = press(m, runes("a"), runes("Limonata"), keyEsc)
	assert.Equal(t, viewMenu, m.currentView)
	assert.False(t, m.form.IsOpen())

	n, _ := repo.Len(context.Background())
	assert.Equal(t, 5, n)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
