// Package tui terminal uchun menyu ko'rinishi.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/catalog"
	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/metrics"
	"github.com/yourusername/deep-coffee/internal/presentation"
	"github.com/yourusername/deep-coffee/internal/usecase"
)

const (
	viewMenu   = "menu"
	viewDetail = "detail"
	viewForm   = "form"

	pageSize = 3
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#6F4E37")).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6F4E37")).
			Padding(0, 1)

	activeChipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#C8A27A")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Bold(true)

	fadedStyle = lipgloss.NewStyle().Faint(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff453a"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var inputLabels = map[string]string{
	usecase.FieldName:        "Ad",
	usecase.FieldPrice:       "Fiyat",
	usecase.FieldDescription: "Açıklama",
	usecase.FieldImage:       "Görsel URL",
	usecase.FieldCategory:    "Kategori",
}

// Model ilova holati. Kategoriya tanlovi va draft shu ekran ga tegishli.
type Model struct {
	ctx     context.Context
	menu    usecase.MenuUseCase
	metrics *metrics.Recorder
	log     *logrus.Logger

	driver     *presentation.Driver
	categories []string
	selected   string
	items      []entity.MenuItem
	cursor     int

	detail *entity.MenuItem

	form        *usecase.ItemForm
	inputs      []textinput.Model
	focus       int
	fieldErrors map[string]string

	currentView string
	status      string
	error       string
}

// NewModel katalogdan birinchi ko'rinish
func NewModel(ctx context.Context, menu usecase.MenuUseCase, itemHeight float64, recorder *metrics.Recorder, logger *logrus.Logger) Model {
	inputs := make([]textinput.Model, len(usecase.FormFields))
	for i, field := range usecase.FormFields {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-11s ", inputLabels[field]+":")
		ti.Width = 48
		inputs[i] = ti
	}
	inputs[2].Placeholder = "en az 10 karakter"
	inputs[1].Placeholder = "45₺"
	inputs[3].Placeholder = "https://..."
	inputs[4].Placeholder = "ctrl+p ile seç veya yaz"

	m := Model{
		ctx:         ctx,
		menu:        menu,
		metrics:     recorder,
		log:         logger,
		driver:      presentation.NewDriver(itemHeight),
		form:        usecase.NewItemForm(menu),
		inputs:      inputs,
		currentView: viewMenu,
	}
	m.reload()
	return m
}

// Run dasturni alt screen da ishga tushirish
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentView {
	case viewMenu:
		return m.updateMenu(key)
	case viewDetail:
		return m.updateDetail(key)
	case viewForm:
		return m.updateForm(key)
	}
	return m, nil
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.selectCategory(catalog.NextCategory(m.categories, m.selected, 1))
	case "shift+tab":
		m.selectCategory(catalog.NextCategory(m.categories, m.selected, -1))
	case "down", "j":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-1)
	case "pgdown":
		m.moveCursor(pageSize)
	case "pgup":
		m.moveCursor(-pageSize)
	case "enter":
		if len(m.items) == 0 {
			return m, nil
		}
		item, err := m.menu.Detail(m.ctx, m.items[m.cursor].ID)
		if err != nil {
			m.error = "Ürün bulunamadı"
			return m, nil
		}
		m.detail = item
		m.currentView = viewDetail
	case "a":
		return m.openForm()
	}
	return m, nil
}

func (m Model) updateDetail(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "enter":
		m.detail = nil
		m.currentView = viewMenu
	}
	return m, nil
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.form.Open()
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.fieldErrors = nil
	m.status = ""
	m.error = ""
	m.currentView = viewForm
	return m, m.focusInput(0)
}

func (m Model) updateForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.form.Cancel()
		m.fieldErrors = nil
		m.currentView = viewMenu
		return m, nil
	case "tab", "down":
		return m, m.focusInput((m.focus + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m, m.focusInput((m.focus - 1 + len(m.inputs)) % len(m.inputs))
	case "ctrl+p":
		// Tanlagich shu draft ga yozadi
		next := catalog.NextCategory(m.categories, m.form.Draft().Category, 1)
		if next == catalog.AllCategories && len(m.categories) > 0 {
			next = m.categories[0]
		}
		if err := m.form.PickCategory(next); err == nil {
			m.inputs[len(m.inputs)-1].SetValue(next)
		}
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.focus == len(m.inputs)-1 {
			return m.submit()
		}
		return m, m.focusInput(m.focus + 1)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	_ = m.form.SetField(usecase.FormFields[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	item, err := m.form.Submit(m.ctx)
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		m.fieldErrors = m.form.Errors()
		for i, f := range usecase.FormFields {
			if _, bad := m.fieldErrors[f]; bad {
				return m, m.focusInput(i)
			}
		}
		return m, nil
	case err != nil:
		m.log.Errorf("Submit error: %v", err)
		m.form.Cancel()
		m.error = "Ürün eklenemedi"
		m.currentView = viewMenu
		return m, nil
	}

	m.fieldErrors = nil
	m.status = fmt.Sprintf("Eklendi: %s · %s", item.Name, item.Price)
	m.currentView = viewMenu
	m.reload()
	return m, nil
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) selectCategory(category string) {
	m.selected = category
	m.cursor = 0
	m.driver.Scroll(0)
	m.reload()
}

// moveCursor kursor va scroll offset birga yuradi
func (m *Model) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	m.driver.Scroll(float64(m.cursor) * m.driver.ItemHeight())
}

// reload katalog o'zgargandan keyin kategoriya va ro'yxatni yangilash
func (m *Model) reload() {
	categories, err := m.menu.Categories(m.ctx)
	if err != nil {
		m.error = err.Error()
		return
	}
	m.categories = categories

	items, err := m.menu.List(m.ctx, m.selected)
	if err != nil {
		m.error = err.Error()
		return
	}
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = 0
		m.driver.Scroll(0)
	}
	m.metrics.MenuView("tui", m.selected)
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case viewDetail:
		return docStyle.Render(detailView(*m.detail))
	case viewForm:
		return docStyle.Render(m.formView())
	default:
		return docStyle.Render(m.menuView())
	}
}

func (m Model) menuView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("DEEP Premium Coffee") + "\n\n")
	sb.WriteString(chipsView(m.categories, m.selected) + "\n\n")

	if len(m.items) == 0 {
		sb.WriteString(fadedStyle.Render("Bu kategoride henüz ürün yok.") + "\n")
	}
	for i, t := range m.driver.Transforms(len(m.items)) {
		// Butunlay so'ngan kartochkalar tepada qolib ketgan
		if t.Opacity <= 0 {
			continue
		}
		item := m.items[i]
		line := fmt.Sprintf("%s · %s  %s", item.Name, item.Price, item.Description)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render("▸ " + line)
		case t.Opacity < 1 || t.Scale < 1:
			line = fadedStyle.Render("  " + line)
		default:
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}

	if m.status != "" {
		sb.WriteString("\n" + successStyle.Render(m.status) + "\n")
	}
	if m.error != "" {
		sb.WriteString("\n" + errorStyle.Render(m.error) + "\n")
	}
	sb.WriteString("\n" + helpStyle.Render("tab/shift+tab kategori • ↑/↓ pgup/pgdown kaydır • enter detay • a ekle • q çıkış"))
	return sb.String()
}

func chipsView(categories []string, selected string) string {
	chip := func(label string, active bool) string {
		if active {
			return activeChipStyle.Render(label)
		}
		return chipStyle.Render(label)
	}

	chips := []string{chip("Tümü", selected == catalog.AllCategories)}
	for _, c := range categories {
		chips = append(chips, chip(c, c == selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func detailView(item entity.MenuItem) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(item.Name+" · "+item.Price) + "\n\n")
	sb.WriteString(chipStyle.Render(item.Category) + "\n\n")

	desc := item.LongDescription
	if desc == "" {
		desc = item.Description
	}
	sb.WriteString(desc + "\n")

	if len(item.Ingredients) > 0 {
		sb.WriteString("\nİçindekiler:\n")
		for _, ing := range item.Ingredients {
			sb.WriteString("  • " + ing + "\n")
		}
	}
	if item.PreparationTime != "" {
		sb.WriteString("\nHazırlanma süresi: " + item.PreparationTime + "\n")
	}
	sb.WriteString("\n" + fadedStyle.Render(item.Image) + "\n")
	sb.WriteString("\n" + helpStyle.Render("esc menüye dön • q çıkış"))
	return sb.String()
}

func (m Model) formView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Yeni Ürün") + "\n\n")

	for i, field := range usecase.FormFields {
		sb.WriteString(m.inputs[i].View() + "\n")
		if msg, bad := m.fieldErrors[field]; bad {
			sb.WriteString(errorStyle.Render("  "+msg) + "\n")
		}
	}

	sb.WriteString("\n" + helpStyle.Render("tab sonraki alan • ctrl+p kategori seç • ctrl+s kaydet • esc iptal"))
	return sb.String()
}
