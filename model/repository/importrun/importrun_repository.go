package importrun

import (
	"gorm.io/gorm"

	entity "stoneerp.GO/model/entity"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Create(run *entity.ImportRun) error {
	return r.db.Create(run).Error
}

// Latest returns the most recent runs, newest first.
func (r *ImportRunRepository) Latest(limit int) ([]entity.ImportRun, error) {
	var runs []entity.ImportRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
