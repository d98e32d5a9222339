package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Row is one data row of the sheet. Number is the 1-based spreadsheet row.
type Row struct {
	Number int
	Cells  []string
}

// Cell returns the trimmed cell at idx, or "" when the row is shorter or idx
// is NoColumn.
func (r Row) Cell(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[idx])
}

// Blank reports whether every cell of the row is empty.
func (r Row) Blank() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// RowSource yields the data rows of a sheet in order. Each call re-reads the
// underlying file, so a source can be walked any number of times.
type RowSource interface {
	Each(ctx context.Context, fn func(Row) error) error
	Source() string
	Sheet() string
}

// OpenSource checks that path and sheet exist and returns a source over the
// sheet's data rows. The first headerRows rows and blank rows are skipped.
// .xlsx and legacy .xls workbooks are read by sheet name; CSV files have a
// single implicit sheet, so sheet is ignored for them.
func OpenSource(path, sheet string, headerRows int) (RowSource, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &csvSource{path: path, headerRows: headerRows}, nil
	case ".xls":
		src := &xlsSource{path: path, sheet: sheet, headerRows: headerRows}
		if err := src.withSheet(func(*xls.WorkSheet) error { return nil }); err != nil {
			return nil, err
		}
		return src, nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := checkSheet(f, path, sheet); err != nil {
		return nil, err
	}
	return &workbookSource{path: path, sheet: sheet, headerRows: headerRows}, nil
}

func checkSheet(f *excelize.File, path, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return &SheetNotFoundError{Path: path, Sheet: sheet, Available: f.GetSheetList()}
	}
	return nil
}

type workbookSource struct {
	path       string
	sheet      string
	headerRows int
}

func (s *workbookSource) Source() string { return s.path }
func (s *workbookSource) Sheet() string  { return s.sheet }

func (s *workbookSource) Each(ctx context.Context, fn func(Row) error) error {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileNotFoundError{Path: s.path, Err: err}
		}
		return fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()
	if err := checkSheet(f, s.path, s.sheet); err != nil {
		return err
	}

	rows, err := f.Rows(s.sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", s.sheet, err)
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		n++
		cells, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", s.sheet, n, err)
		}
		if err := emit(ctx, fn, n, s.headerRows, cells); err != nil {
			return err
		}
	}
	return rows.Error()
}

// xlsMaxCols is the BIFF8 column limit.
const xlsMaxCols = 256

type xlsSource struct {
	path       string
	sheet      string
	headerRows int
}

func (s *xlsSource) Source() string { return s.path }
func (s *xlsSource) Sheet() string  { return s.sheet }

// withSheet opens the workbook, finds the sheet by name and calls fn while the
// file is open. The reader panics on malformed records, so panics surface as
// errors.
func (s *xlsSource) withSheet(fn func(*xls.WorkSheet) error) (err error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileNotFoundError{Path: s.path, Err: err}
		}
		return fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read workbook %s: %v", s.path, r)
		}
	}()

	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	if wb == nil {
		return fmt.Errorf("open workbook %s: no workbook stream", s.path)
	}
	names := make([]string, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		if ws.Name == s.sheet {
			return fn(ws)
		}
		names = append(names, ws.Name)
	}
	return &SheetNotFoundError{Path: s.path, Sheet: s.sheet, Available: names}
}

func (s *xlsSource) Each(ctx context.Context, fn func(Row) error) error {
	return s.withSheet(func(ws *xls.WorkSheet) error {
		for i := 0; i <= int(ws.MaxRow); i++ {
			cells := xlsCells(ws, i)
			if cells == nil {
				continue
			}
			if err := emit(ctx, fn, i+1, s.headerRows, cells); err != nil {
				return err
			}
		}
		return nil
	})
}

// xlsCells returns the cells of row i with trailing blanks trimmed, or nil
// when the sheet has no record for the row.
func xlsCells(ws *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()
	row := ws.Row(i)
	if row == nil {
		return nil
	}
	width := row.LastCol()
	if width < xlsMaxCols {
		width = xlsMaxCols
	}
	cells = make([]string, width)
	last := -1
	for j := 0; j < width; j++ {
		if cells[j] = row.Col(j); cells[j] != "" {
			last = j
		}
	}
	return cells[:last+1]
}

type csvSource struct {
	path       string
	headerRows int
}

func (s *csvSource) Source() string { return s.path }
func (s *csvSource) Sheet() string  { return "" }

func (s *csvSource) Each(ctx context.Context, fn func(Row) error) error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileNotFoundError{Path: s.path, Err: err}
		}
		return fmt.Errorf("open csv %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	n := 0
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv %s: %w", s.path, err)
		}
		n++
		if n == 1 && len(cells) > 0 {
			cells[0] = strings.TrimPrefix(cells[0], "\ufeff")
		}
		if n <= s.headerRows {
			continue
		}
		// encoding/csv drops blank lines, so number rows by source line.
		line, _ := reader.FieldPos(0)
		if err := emit(ctx, fn, line, 0, cells); err != nil {
			return err
		}
	}
}

func emit(ctx context.Context, fn func(Row) error, n, headerRows int, cells []string) error {
	if n <= headerRows {
		return nil
	}
	row := Row{Number: n, Cells: cells}
	if row.Blank() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(row)
}
