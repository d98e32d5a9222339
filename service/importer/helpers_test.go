package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"stoneerp.GO/config"
)

var header = []string{
	"نوع برش", "کد برش", "جنس سنگ", "کد جنس", "عرض", "کد عرض", "ضخامت", "کد ضخامت",
	"معدن", "کد معدن", "نوع فرآوری", "کد فرآوری", "رنگ", "کد رنگ", "نام کالا", "کد کالا",
}

// validRow is a complete product row in the default layout.
func validRow(productCode string) []string {
	return []string{
		"طولی", "1", "مرمریت", "12", "عرض 60", "60", "ضخامت 2", "2",
		"معدن هرسین", "042", "صیقلی", "3", "کرم", "7", "", productCode,
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), fmt.Sprintf("importer_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA busy_timeout=5000")
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { config.CloseDB(db) })
	return db
}

// writeWorkbook writes rows to sheet of a new .xlsx file. A nil row leaves a
// blank spreadsheet row.
func writeWorkbook(t *testing.T, sheet string, rows ...[]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	for i, row := range rows {
		for j, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "products.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func openWorkbook(t *testing.T, rows ...[]string) RowSource {
	t.Helper()
	path := writeWorkbook(t, "Sheet2", rows...)
	src, err := OpenSource(path, "Sheet2", 1)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	return src
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// sliceSource is an in-memory RowSource.
type sliceSource struct {
	rows []Row
}

func rowsOf(cells ...[]string) *sliceSource {
	s := &sliceSource{}
	for i, c := range cells {
		s.rows = append(s.rows, Row{Number: i + 2, Cells: c})
	}
	return s
}

func (s *sliceSource) Source() string { return "memory" }
func (s *sliceSource) Sheet() string  { return "Sheet2" }

func (s *sliceSource) Each(ctx context.Context, fn func(Row) error) error {
	for _, r := range s.rows {
		if r.Blank() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}
