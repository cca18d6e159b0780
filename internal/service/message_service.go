package service

import (
	"strings"

	"miwalavie-store/internal/domain"
	"miwalavie-store/pkg/utils"
)

// MessageService 订单会话：读写都走同一条授权规则 —— 订单所有者或管理员
type MessageService struct {
	orders   domain.OrderRepository
	messages domain.MessageRepository
}

func NewMessageService(orders domain.OrderRepository, messages domain.MessageRepository) *MessageService {
	return &MessageService{orders: orders, messages: messages}
}

func (s *MessageService) authorize(orderID, callerID string, isAdmin bool) (*domain.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, persistence(err)
	}
	if order == nil {
		return nil, NotFound("Order not found.")
	}
	if !isAdmin && order.UserID != callerID {
		return nil, NotAllowed()
	}
	return order, nil
}

// Thread 消息按时间升序
func (s *MessageService) Thread(orderID, callerID string, isAdmin bool) (*domain.Order, []domain.OrderMessage, error) {
	order, err := s.authorize(orderID, callerID, isAdmin)
	if err != nil {
		return nil, nil, err
	}
	ms, err := s.messages.ListByOrder(orderID)
	if err != nil {
		return nil, nil, persistence(err)
	}
	return order, ms, nil
}

// Post 空白消息静默忽略（不算错误，界面直接回到会话）
func (s *MessageService) Post(orderID, callerID string, isAdmin bool, body string) error {
	if _, err := s.authorize(orderID, callerID, isAdmin); err != nil {
		return err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	m := domain.OrderMessage{
		ID:      utils.NewID(),
		OrderID: orderID,
		Body:    body,
	}
	m.SetSender(domain.UserSender(callerID))
	return persistence(s.messages.Append(&m))
}
