package product

import (
	"errors"

	"gorm.io/gorm"

	productEntity "stoneerp.GO/model/entity/product"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ExistsByCode reports whether a product with the code is stored.
func (r *ProductRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&productEntity.Product{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// FindByCode returns the product with the code, or nil when there is none.
func (r *ProductRepository) FindByCode(code string) (*productEntity.Product, error) {
	var p productEntity.Product
	err := r.db.Where("code = ?", code).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(p *productEntity.Product) error {
	return r.db.Create(p).Error
}

// List returns a page of products ordered by code together with the total count.
func (r *ProductRepository) List(limit, offset int) ([]productEntity.Product, int64, error) {
	var total int64
	if err := r.db.Model(&productEntity.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []productEntity.Product
	err := r.db.Order("code").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

// FindByCodes returns the products with the given codes in the order of codes.
// Unknown codes are dropped.
func (r *ProductRepository) FindByCodes(codes []string) ([]productEntity.Product, error) {
	if len(codes) == 0 {
		return []productEntity.Product{}, nil
	}
	var list []productEntity.Product
	if err := r.db.Where("code IN ?", codes).Find(&list).Error; err != nil {
		return nil, err
	}
	byCode := make(map[string]productEntity.Product, len(list))
	for _, p := range list {
		byCode[p.Code] = p
	}
	out := make([]productEntity.Product, 0, len(list))
	for _, c := range codes {
		if p, ok := byCode[c]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
