package repo

import (
	"errors"

	"gorm.io/gorm"

	"miwalavie-store/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) List() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *UserRepo) SetAdmin(id string, admin bool) error {
	return r.db.Model(&domain.User{}).Where("id = ?", id).Update("is_admin", admin).Error
}

// Delete 连带删除该用户的订单及其条目和消息
func (r *UserRepo) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var orderIDs []string
		if err := tx.Model(&domain.Order{}).Where("user_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&domain.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&domain.OrderMessage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(&domain.Order{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&domain.User{}).Error
	})
}
