package masterdata

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	mdEntity "stoneerp.GO/model/entity/masterdata"
)

// MasterDataRepository reads and writes the seven attribute dictionaries.
// Every method takes the category because the tables share one row shape.
type MasterDataRepository struct {
	db *gorm.DB
}

func NewMasterDataRepository(db *gorm.DB) *MasterDataRepository {
	return &MasterDataRepository{db: db}
}

func (r *MasterDataRepository) table(c mdEntity.Category) (*gorm.DB, error) {
	t := c.Table()
	if t == "" {
		return nil, fmt.Errorf("%w: %q", mdEntity.ErrUnknownCategory, string(c))
	}
	return r.db.Table(t), nil
}

// FindByCode returns the entry with the given code, or nil when there is none.
func (r *MasterDataRepository) FindByCode(c mdEntity.Category, code string) (*mdEntity.Attribute, error) {
	q, err := r.table(c)
	if err != nil {
		return nil, err
	}
	var a mdEntity.Attribute
	err = q.Where("code = ?", code).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAll returns every entry of a category ordered by code.
func (r *MasterDataRepository) FindAll(c mdEntity.Category) ([]mdEntity.Attribute, error) {
	q, err := r.table(c)
	if err != nil {
		return nil, err
	}
	var list []mdEntity.Attribute
	err = q.Order("code").Find(&list).Error
	return list, err
}

// Create inserts a new entry and fills its ID.
func (r *MasterDataRepository) Create(c mdEntity.Category, a *mdEntity.Attribute) error {
	q, err := r.table(c)
	if err != nil {
		return err
	}
	return q.Create(a).Error
}

// Update overwrites the mutable fields of the entry identified by a.ID.
func (r *MasterDataRepository) Update(c mdEntity.Category, a *mdEntity.Attribute) error {
	q, err := r.table(c)
	if err != nil {
		return err
	}
	a.UpdatedAt = time.Now()
	return q.Where("id = ?", a.ID).Updates(map[string]interface{}{
		"name":         a.Name,
		"name_persian": a.NamePersian,
		"value":        a.Value,
		"is_active":    a.IsActive,
		"updated_at":   a.UpdatedAt,
	}).Error
}

// Migrate creates the category tables. The unique code index is added by hand
// because every table shares the Attribute model.
func Migrate(db *gorm.DB) error {
	for _, c := range mdEntity.Categories {
		if err := db.Table(c.Table()).AutoMigrate(&mdEntity.Attribute{}); err != nil {
			return fmt.Errorf("migrate %s: %w", c.Table(), err)
		}
		idx := "idx_" + c.Table() + "_code"
		if db.Migrator().HasIndex(c.Table(), idx) {
			continue
		}
		if err := db.Exec("CREATE UNIQUE INDEX " + idx + " ON " + c.Table() + " (code)").Error; err != nil {
			return fmt.Errorf("index %s: %w", idx, err)
		}
	}
	return nil
}
