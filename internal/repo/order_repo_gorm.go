package repo

import (
	"errors"

	"gorm.io/gorm"

	"miwalavie-store/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) FindByID(id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &o, err
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var os []domain.Order
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&os).Error
	return os, err
}

func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	var os []domain.Order
	err := r.db.Order("created_at desc").Find(&os).Error
	return os, err
}

// ItemsByOrderIDs 管理端订单页一次取回全部条目，按订单分组
func (r *OrderRepo) ItemsByOrderIDs(orderIDs []string) (map[string][]domain.OrderItem, error) {
	out := make(map[string][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var items []domain.OrderItem
	if err := r.db.Where("order_id IN ?", orderIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, nil
}
