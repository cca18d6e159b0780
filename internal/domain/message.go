package domain

import "time"

// Sender 区分用户消息和系统消息，避免在读取处判断裸指针
type Sender struct {
	UserID string
	System bool
}

func UserSender(id string) Sender { return Sender{UserID: id} }
func SystemSender() Sender        { return Sender{System: true} }

type OrderMessage struct {
	ID      string `gorm:"primaryKey;type:varchar(32)" json:"id"`
	OrderID string `gorm:"type:varchar(32);index;not null" json:"orderId"`
	// 列上保留可空外键以兼容旧库；领域层一律经 Sender() 读
	SenderUserID *string   `gorm:"type:varchar(32);index" json:"senderUserId,omitempty"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (OrderMessage) TableName() string { return "order_messages" }

func (m *OrderMessage) Sender() Sender {
	if m.SenderUserID == nil || *m.SenderUserID == "" {
		return SystemSender()
	}
	return UserSender(*m.SenderUserID)
}

func (m *OrderMessage) SetSender(s Sender) {
	if s.System {
		m.SenderUserID = nil
		return
	}
	id := s.UserID
	m.SenderUserID = &id
}

type MessageRepository interface {
	// ListByOrder 按 created_at 升序返回
	ListByOrder(orderID string) ([]OrderMessage, error)
	Append(m *OrderMessage) error
}
