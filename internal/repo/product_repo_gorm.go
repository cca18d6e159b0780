package repo

import (
	"errors"

	"gorm.io/gorm"

	"miwalavie-store/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(p *domain.Product) error { return r.db.Create(p).Error }

func (r *ProductRepo) FindByID(id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *ProductRepo) FindByIDs(ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var ps []domain.Product
	if err := r.db.Where("id IN ?", ids).Find(&ps).Error; err != nil {
		return nil, err
	}
	for _, p := range ps {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.Order("created_at desc").Find(&ps).Error
	return ps, err
}

// Delete 幂等：不存在返回 false，不作为错误
func (r *ProductRepo) Delete(id string) (bool, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Product{})
	return res.RowsAffected > 0, res.Error
}
