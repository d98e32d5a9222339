package importer

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	mdEntity "stoneerp.GO/model/entity/masterdata"
)

var (
	// ErrSheetNotFound is matched by *SheetNotFoundError.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrProfileInvalid wraps every profile validation failure.
	ErrProfileInvalid = errors.New("invalid import profile")
	// ErrUnsupportedFormat is returned for workbook formats the reader cannot open.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// SheetNotFoundError reports a missing sheet together with the sheets present.
type SheetNotFoundError struct {
	Path      string
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found in %s (available: %s)", e.Sheet, e.Path, strings.Join(e.Available, ", "))
}

func (e *SheetNotFoundError) Is(target error) bool {
	return target == ErrSheetNotFound
}

// FileNotFoundError reports a spreadsheet path that does not resolve.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("spreadsheet %s not found", e.Path)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a RowError.
type ErrorKind string

const (
	// KindSkipped is a validation failure: the row was left out on purpose.
	KindSkipped ErrorKind = "skipped"
	// KindErrored is a store failure while importing a product row.
	KindErrored ErrorKind = "errored"
	// KindFailed is a store failure while upserting a dictionary entry.
	KindFailed ErrorKind = "failed"
)

// RowError is one entry of the structured error list of a run.
type RowError struct {
	Row      int               `json:"row,omitempty"`
	Category mdEntity.Category `json:"category,omitempty"`
	Field    string            `json:"field,omitempty"`
	Code     string            `json:"code,omitempty"`
	Kind     ErrorKind         `json:"kind"`
	Message  string            `json:"message"`
}

func (e RowError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	if e.Category != "" {
		b.WriteString(string(e.Category))
		if e.Field != "" {
			b.WriteString(" " + e.Field)
		}
		b.WriteString(": ")
	} else if e.Field != "" {
		b.WriteString(e.Field + ": ")
	}
	b.WriteString(e.Message)
	if e.Code != "" {
		fmt.Fprintf(&b, " (code %s)", e.Code)
	}
	return b.String()
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
