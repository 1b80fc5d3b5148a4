package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

// menuRow jadvaldagi bitta qator
type menuRow struct {
	ID              string
	Name            string
	Price           string
	Description     string
	Image           string
	Category        string
	LongDescription string
	Ingredients     []string
	PreparationTime string
}

// ExcelMenuParser Excel menyu jadvalini o'qiydi. Birinchi qator sarlavha bo'lishi shart.
type ExcelMenuParser struct {
	path string
	log  *logrus.Logger
}

// NewExcelMenuParser path bo'sh bo'lsa faqat ParseCandidates ishlaydi
func NewExcelMenuParser(path string, logger *logrus.Logger) *ExcelMenuParser {
	return &ExcelMenuParser{path: path, log: logger}
}

// LoadSeed fayldan boshlang'ich katalog. ID ustuni bo'lmasa uuid beriladi.
func (e *ExcelMenuParser) LoadSeed(ctx context.Context) ([]entity.MenuItem, error) {
	if e.path == "" {
		return nil, fmt.Errorf("excel seed path is empty")
	}

	f, err := excelize.OpenFile(e.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	rows, err := e.parseWorkbook(f)
	if err != nil {
		return nil, err
	}

	items := make([]entity.MenuItem, 0, len(rows))
	for _, r := range rows {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, entity.MenuItem{
			ID:              id,
			Name:            r.Name,
			Price:           r.Price,
			Description:     r.Description,
			Image:           r.Image,
			Category:        r.Category,
			LongDescription: r.LongDescription,
			Ingredients:     r.Ingredients,
			PreparationTime: r.PreparationTime,
		})
	}

	e.log.WithFields(logrus.Fields{"file": e.path, "items": len(items)}).Info("Seed menu loaded from excel")
	return items, nil
}

// ParseCandidates yuklangan fayldan qoralamalar. Tekshirish chaqiruvchida.
func (e *ExcelMenuParser) ParseCandidates(ctx context.Context, data []byte) ([]entity.CandidateItem, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	rows, err := e.parseWorkbook(f)
	if err != nil {
		return nil, err
	}

	candidates := make([]entity.CandidateItem, 0, len(rows))
	for _, r := range rows {
		candidates = append(candidates, entity.CandidateItem{
			Name:        r.Name,
			Price:       r.Price,
			Description: r.Description,
			Image:       r.Image,
			Category:    r.Category,
		})
	}
	return candidates, nil
}

func (e *ExcelMenuParser) parseWorkbook(f *excelize.File) ([]menuRow, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file has no data rows")
	}

	columns := mapColumns(rows[0])
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("excel header has no name column")
	}
	e.log.WithField("columns", columns).Debug("Excel column mapping")

	var parsed []menuRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		r := menuRow{
			ID:              cell(row, columns, "id"),
			Name:            cell(row, columns, "name"),
			Price:           normalizePrice(cell(row, columns, "price")),
			Description:     cell(row, columns, "description"),
			Image:           cell(row, columns, "image"),
			Category:        cell(row, columns, "category"),
			LongDescription: cell(row, columns, "longDescription"),
			Ingredients:     splitList(cell(row, columns, "ingredients")),
			PreparationTime: cell(row, columns, "preparationTime"),
		}
		if r.Name == "" {
			e.log.Warnf("Excel row %d: empty name - skipping", i+1)
			continue
		}
		parsed = append(parsed, r)
	}

	if len(parsed) == 0 {
		return nil, fmt.Errorf("no menu rows found in excel file (parsed %d rows)", len(rows)-1)
	}
	return parsed, nil
}

// mapColumns sarlavha nomlarini maydonlarga bog'lash (tr/en/uz)
func mapColumns(header []string) map[string]int {
	aliases := map[string][]string{
		"id":              {"id", "kod", "code"},
		"name":            {"name", "ad", "ürün", "urun", "isim", "nomi"},
		"price":           {"price", "fiyat", "narx"},
		"description":     {"description", "açıklama", "aciklama", "tavsif"},
		"image":           {"image", "görsel", "gorsel", "resim", "rasm"},
		"category":        {"category", "kategori", "kategoriya"},
		"longDescription": {"longdescription", "detay", "uzun açıklama"},
		"ingredients":     {"ingredients", "malzemeler", "tarkibi"},
		"preparationTime": {"preparationtime", "hazırlanma süresi", "süre", "sure"},
	}

	columns := make(map[string]int)
	for idx, raw := range header {
		h := strings.ToLower(strings.TrimSpace(raw))
		for field, names := range aliases {
			if _, taken := columns[field]; taken {
				continue
			}
			for _, n := range names {
				if h == n {
					columns[field] = idx
				}
			}
		}
	}
	return columns
}

func cell(row []string, columns map[string]int, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// normalizePrice "45" -> "45₺". Boshqa ko'rinishlar o'zgarmaydi va tekshiruvda ushlanadi.
func normalizePrice(s string) string {
	if s == "" {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	return s + "₺"
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
