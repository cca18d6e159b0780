package domain

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	PriceNGN    int64     `gorm:"not null" json:"priceNgn"` // 整数奈拉，无小数位
	ImagePath   string    `gorm:"size:255;not null" json:"imagePath"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	Create(p *Product) error
	FindByID(id string) (*Product, error)
	// FindByIDs 只返回仍然存在的商品，缺失的 id 静默丢弃
	FindByIDs(ids []string) (map[string]Product, error)
	List() ([]Product, error)
	Delete(id string) (bool, error)
}
