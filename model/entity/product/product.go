package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the products table. The seven attribute triples are
// denormalised copies of the dictionary entries the product was composed from.
type Product struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"column:code;type:varchar(64);not null;uniqueIndex" json:"code"`
	Name        string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	NamePersian string `gorm:"column:name_persian;type:varchar(255);not null" json:"name_persian"`

	CutTypeCode        string `gorm:"column:cut_type_code;type:varchar(32);not null" json:"cut_type_code"`
	CutTypeName        string `gorm:"column:cut_type_name;type:varchar(255)" json:"cut_type_name"`
	CutTypeNamePersian string `gorm:"column:cut_type_name_persian;type:varchar(255)" json:"cut_type_name_persian"`

	StoneMaterialCode        string `gorm:"column:stone_material_code;type:varchar(32);not null" json:"stone_material_code"`
	StoneMaterialName        string `gorm:"column:stone_material_name;type:varchar(255)" json:"stone_material_name"`
	StoneMaterialNamePersian string `gorm:"column:stone_material_name_persian;type:varchar(255)" json:"stone_material_name_persian"`

	CutWidthCode        string `gorm:"column:cut_width_code;type:varchar(32);not null" json:"cut_width_code"`
	CutWidthName        string `gorm:"column:cut_width_name;type:varchar(255)" json:"cut_width_name"`
	CutWidthNamePersian string `gorm:"column:cut_width_name_persian;type:varchar(255)" json:"cut_width_name_persian"`

	ThicknessCode        string `gorm:"column:thickness_code;type:varchar(32);not null" json:"thickness_code"`
	ThicknessName        string `gorm:"column:thickness_name;type:varchar(255)" json:"thickness_name"`
	ThicknessNamePersian string `gorm:"column:thickness_name_persian;type:varchar(255)" json:"thickness_name_persian"`

	MineCode        string `gorm:"column:mine_code;type:varchar(32);not null" json:"mine_code"`
	MineName        string `gorm:"column:mine_name;type:varchar(255)" json:"mine_name"`
	MineNamePersian string `gorm:"column:mine_name_persian;type:varchar(255)" json:"mine_name_persian"`

	FinishTypeCode        string `gorm:"column:finish_type_code;type:varchar(32);not null" json:"finish_type_code"`
	FinishTypeName        string `gorm:"column:finish_type_name;type:varchar(255)" json:"finish_type_name"`
	FinishTypeNamePersian string `gorm:"column:finish_type_name_persian;type:varchar(255)" json:"finish_type_name_persian"`

	ColorCode        string `gorm:"column:color_code;type:varchar(32);not null" json:"color_code"`
	ColorName        string `gorm:"column:color_name;type:varchar(255)" json:"color_name"`
	ColorNamePersian string `gorm:"column:color_name_persian;type:varchar(255)" json:"color_name_persian"`

	BasePrice   decimal.NullDecimal `gorm:"column:base_price;type:decimal(15,2)" json:"base_price"`
	Currency    string              `gorm:"column:currency;type:varchar(8);not null;default:'IRR'" json:"currency"`
	IsAvailable bool                `gorm:"column:is_available;not null;default:true" json:"is_available"`
	IsActive    bool                `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Description *string             `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
