package parser

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	return f
}

func TestDefaultSeedLoader(t *testing.T) {
	items, err := NewDefaultSeedLoader().LoadSeed(context.Background())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(items), 3)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "Espresso", items[0].Name)
	assert.Equal(t, "30₺", items[0].Price)
	assert.Equal(t, "Sıcak İçecekler", items[0].Category)
	assert.Equal(t, []string{"Premium kahve çekirdekleri", "Filtre su"}, items[0].Ingredients)

	seen := map[string]bool{}
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate seed id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestYAMLSeedLoader_Errors(t *testing.T) {
	_, err := NewYAMLSeedLoader([]byte("items: []")).LoadSeed(context.Background())
	assert.Error(t, err)

	_, err = NewYAMLSeedLoader([]byte("items:\n  - id: x\n    colour: red\n")).LoadSeed(context.Background())
	assert.Error(t, err, "unknown fields are rejected")
}

func TestExcelMenuParser_LoadSeed(t *testing.T) {
	f := writeWorkbook(t, [][]interface{}{
		{"ID", "Ad", "Fiyat", "Açıklama", "Görsel", "Kategori", "Malzemeler"},
		{"10", "Türk Kahvesi", 35, "Közde pişirilmiş geleneksel kahve", "https://deepcoffee.example/tk.jpg", "Sıcak İçecekler", "Kahve, Su"},
		{},
		{"", "Limonata", "40₺", "Ev yapımı taze limonata", "https://deepcoffee.example/l.jpg", "Soğuk İçecekler", ""},
		{"12", "", "10₺"},
	})
	path := filepath.Join(t.TempDir(), "menu.xlsx")
	require.NoError(t, f.SaveAs(path))

	items, err := NewExcelMenuParser(path, quietLogger()).LoadSeed(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "10", items[0].ID)
	assert.Equal(t, "35₺", items[0].Price)
	assert.Equal(t, []string{"Kahve", "Su"}, items[0].Ingredients)
	assert.Len(t, items[1].ID, 36)
	assert.Equal(t, "Soğuk İçecekler", items[1].Category)
}

func TestExcelMenuParser_ParseCandidates(t *testing.T) {
	f := writeWorkbook(t, [][]interface{}{
		{"name", "price", "description", "image", "category"},
		{"Mocha", "50₺", "Çikolatalı özel karışım kahve", "https://example.com/m.jpg", "Sıcak İçecekler"},
		{"M", "50TL", "short", "not-a-url", ""},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	candidates, err := NewExcelMenuParser("", quietLogger()).ParseCandidates(context.Background(), buf.Bytes())
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, "Mocha", candidates[0].Name)
	assert.Equal(t, "50TL", candidates[1].Price)
}

func TestExcelMenuParser_RequiresNameColumn(t *testing.T) {
	f := writeWorkbook(t, [][]interface{}{
		{"fiyat", "kategori"},
		{"10₺", "Tatlılar"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = NewExcelMenuParser("", quietLogger()).ParseCandidates(context.Background(), buf.Bytes())
	assert.Error(t, err)

	_, err = NewExcelMenuParser("", quietLogger()).LoadSeed(context.Background())
	assert.Error(t, err)
}

func TestNormalizePrice(t *testing.T) {
	assert.Equal(t, "45₺", normalizePrice("45"))
	assert.Equal(t, "45₺", normalizePrice("45₺"))
	assert.Equal(t, "4.5", normalizePrice("4.5"))
	assert.Equal(t, "", normalizePrice(""))
}
