package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ImportRun is the persisted outcome of one applied spreadsheet import.
// Categories and Errors hold the structured per-category counts and row errors.
type ImportRun struct {
	ID         string         `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Source     string         `gorm:"column:source;type:varchar(512);not null" json:"source"`
	Sheet      string         `gorm:"column:sheet;type:varchar(128)" json:"sheet"`
	Apply      bool           `gorm:"column:apply;not null" json:"apply"`
	TotalRows  int            `gorm:"column:total_rows;not null;default:0" json:"total_rows"`
	Imported   int            `gorm:"column:imported;not null;default:0" json:"imported"`
	Skipped    int            `gorm:"column:skipped;not null;default:0" json:"skipped"`
	Errored    int            `gorm:"column:errored;not null;default:0" json:"errored"`
	Categories datatypes.JSON `gorm:"column:categories" json:"categories"`
	Errors     datatypes.JSON `gorm:"column:errors" json:"errors"`
	StartedAt  time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt time.Time      `gorm:"column:finished_at;not null" json:"finished_at"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
