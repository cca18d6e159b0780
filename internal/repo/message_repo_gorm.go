package repo

import (
	"gorm.io/gorm"

	"miwalavie-store/internal/domain"
)

type MessageRepo struct{ db *gorm.DB }

func NewMessageRepo(db *gorm.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) ListByOrder(orderID string) ([]domain.OrderMessage, error) {
	var ms []domain.OrderMessage
	err := r.db.Where("order_id = ?", orderID).Order("created_at asc").Find(&ms).Error
	return ms, err
}

func (r *MessageRepo) Append(m *domain.OrderMessage) error { return r.db.Create(m).Error }
