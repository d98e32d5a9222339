package masterdata

import (
	"errors"
	"strings"
	"time"
)

// Category is one of the seven classification dimensions of a stone product.
type Category string

const (
	CutType       Category = "cut_type"
	StoneMaterial Category = "stone_material"
	CutWidth      Category = "cut_width"
	Thickness     Category = "thickness"
	Mine          Category = "mine"
	FinishType    Category = "finish_type"
	Color         Category = "color"
)

// ErrUnknownCategory is returned by ParseCategory for names outside Categories.
var ErrUnknownCategory = errors.New("unknown attribute category")

// Categories lists every category in import order. Product composition
// depends on all of them being upserted first.
var Categories = []Category{CutType, StoneMaterial, CutWidth, Thickness, Mine, FinishType, Color}

var tables = map[Category]string{
	CutType:       "cut_types",
	StoneMaterial: "stone_materials",
	CutWidth:      "cut_widths",
	Thickness:     "thicknesses",
	Mine:          "mines",
	FinishType:    "finish_types",
	Color:         "colors",
}

// Table returns the table holding the category's dictionary.
func (c Category) Table() string {
	return tables[c]
}

// Measured reports whether labels of the category embed a numeric measurement.
func (c Category) Measured() bool {
	return c == CutWidth || c == Thickness
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts the snake_case name, the table name or the kebab-case
// form used in URLs ("cut-width").
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for _, c := range Categories {
		if s == string(c) || s == c.Table() {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Attribute is one dictionary entry. All seven category tables share this shape.
type Attribute struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string    `gorm:"column:code;type:varchar(32);not null" json:"code"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	NamePersian string    `gorm:"column:name_persian;type:varchar(255);not null" json:"name_persian"`
	Value       *float64  `gorm:"column:value" json:"value,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
