package domain

import "time"

// Order 结账时一次性创建，之后不再变更；单价在下单时刻快照到 OrderItem
type Order struct {
	ID        string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	UserID    string    `gorm:"type:varchar(32);index;not null" json:"userId"`
	TotalNGN  int64     `gorm:"not null;default:0" json:"totalNgn"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	User  *User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID           string `gorm:"primaryKey;type:varchar(32)" json:"id"`
	OrderID      string `gorm:"type:varchar(32);index;not null" json:"orderId"`
	ProductID    string `gorm:"type:varchar(32);index;not null" json:"productId"`
	Quantity     int    `gorm:"not null" json:"quantity"`
	UnitPriceNGN int64  `gorm:"not null" json:"unitPriceNgn"`
}

func (OrderItem) TableName() string { return "order_items" }

type OrderRepository interface {
	FindByID(id string) (*Order, error)
	ListByUser(userID string) ([]Order, error)
	ListAll() ([]Order, error)
	ItemsByOrderIDs(orderIDs []string) (map[string][]OrderItem, error)
}
