// Package catalog loads product catalogs from spreadsheets.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marcp/critics-eye-backend/internal/app/model"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Column order of a catalog sheet. The first row is a header and is skipped.
const (
	colTitle = iota
	colDescription
	colType
	colAuthor
	colGenres
	colImage
	minColumns = colType + 1
)

const (
	maxTitleLen       = 50
	maxDescriptionLen = 255
	maxAuthorLen      = 50
	maxNameLen        = 50
)

var ErrNoRows = errors.New("no data found in spreadsheet")

// Entry is one validated spreadsheet row.
type Entry struct {
	Title       string
	Description string
	Type        string
	Author      string
	Genres      []string
	Image       string
}

// Summary reports what ReadFile accepted and rejected.
type Summary struct {
	TotalRows int
	Skipped   int
}

// ReadFile parses the first sheet of an xlsx workbook.
func ReadFile(path string) ([]Entry, Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, Summary{}, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to read rows: %w", err)
	}
	return ParseRows(rows)
}

// ParseRows validates raw sheet rows. Rows missing a title, description or
// type, rows over the column limits, and duplicate title+type pairs are
// skipped.
func ParseRows(rows [][]string) ([]Entry, Summary, error) {
	if len(rows) < 2 {
		return nil, Summary{}, ErrNoRows
	}

	summary := Summary{TotalRows: len(rows) - 1}
	seen := make(map[string]bool)
	var entries []Entry

	for _, row := range rows[1:] {
		if len(row) < minColumns {
			summary.Skipped++
			continue
		}

		entry := Entry{
			Title:       cell(row, colTitle),
			Description: cell(row, colDescription),
			Type:        cell(row, colType),
			Author:      cell(row, colAuthor),
			Genres:      splitGenres(cell(row, colGenres)),
			Image:       cell(row, colImage),
		}
		if !entry.valid() {
			summary.Skipped++
			continue
		}

		key := strings.ToLower(entry.Type + "|" + entry.Title)
		if seen[key] {
			summary.Skipped++
			continue
		}
		seen[key] = true
		entries = append(entries, entry)
	}

	return entries, summary, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitGenres(raw string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, g := range strings.Split(raw, ",") {
		g = strings.TrimSpace(g)
		if g == "" || seen[strings.ToLower(g)] {
			continue
		}
		seen[strings.ToLower(g)] = true
		out = append(out, g)
	}
	return out
}

func (e Entry) valid() bool {
	if e.Title == "" || e.Description == "" || e.Type == "" {
		return false
	}
	if len([]rune(e.Title)) > maxTitleLen ||
		len([]rune(e.Description)) > maxDescriptionLen ||
		len([]rune(e.Author)) > maxAuthorLen ||
		len([]rune(e.Type)) > maxNameLen {
		return false
	}
	for _, g := range e.Genres {
		if len([]rune(g)) > maxNameLen {
			return false
		}
	}
	return true
}

// Import stores entries as products owned by ownerID inside one transaction,
// creating missing product types and genres by name.
func Import(gdb *gorm.DB, ownerID uint, entries []Entry) (int, error) {
	created := 0
	err := gdb.Transaction(func(tx *gorm.DB) error {
		types := make(map[string]uint)
		genres := make(map[string]uint)

		for _, e := range entries {
			typeID, err := resolveType(tx, types, e.Type)
			if err != nil {
				return err
			}

			product := model.Product{
				Title:       e.Title,
				Description: e.Description,
				TypeID:      typeID,
				UserID:      ownerID,
				Author:      e.Author,
			}
			if e.Image != "" {
				image := e.Image
				product.Image = &image
			}
			if err := tx.Omit("Type", "User", "Genres").Create(&product).Error; err != nil {
				return fmt.Errorf("failed to create product %q: %w", e.Title, err)
			}

			for _, name := range e.Genres {
				genreID, err := resolveGenre(tx, genres, name)
				if err != nil {
					return err
				}
				link := model.ProductGenre{ProductID: product.ID, GenreID: genreID}
				if err := tx.Create(&link).Error; err != nil {
					return fmt.Errorf("failed to link genre %q: %w", name, err)
				}
			}
			created++
		}
		return nil
	})
	if err != nil {
		logger.Error("Catalog import rolled back", err)
		return 0, err
	}

	logger.Info("Catalog imported", map[string]interface{}{
		"products": created,
		"owner_id": ownerID,
	})
	return created, nil
}

func resolveType(tx *gorm.DB, cache map[string]uint, name string) (uint, error) {
	if id, ok := cache[strings.ToLower(name)]; ok {
		return id, nil
	}
	var pt model.ProductType
	if err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).Attrs(model.ProductType{Name: name}).FirstOrCreate(&pt).Error; err != nil {
		return 0, fmt.Errorf("failed to resolve product type %q: %w", name, err)
	}
	cache[strings.ToLower(name)] = pt.ID
	return pt.ID, nil
}

func resolveGenre(tx *gorm.DB, cache map[string]uint, name string) (uint, error) {
	if id, ok := cache[strings.ToLower(name)]; ok {
		return id, nil
	}
	var g model.Genre
	if err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).Attrs(model.Genre{Name: name}).FirstOrCreate(&g).Error; err != nil {
		return 0, fmt.Errorf("failed to resolve genre %q: %w", name, err)
	}
	cache[strings.ToLower(name)] = g.ID
	return g.ID, nil
}
