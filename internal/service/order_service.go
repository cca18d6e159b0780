package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"miwalavie-store/internal/domain"
	"miwalavie-store/pkg/utils"
)

var checkoutTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "store_checkout_total", Help: "Count of checkout attempts"},
	[]string{"result"},
)

func init() { prometheus.MustRegister(checkoutTotal) }

// OrderService 持有 *gorm.DB 而不是单表仓储：结账必须把
// 订单、条目、首条回执消息放进同一个事务
type OrderService struct {
	db     *gorm.DB
	orders domain.OrderRepository
}

func NewOrderService(db *gorm.DB, orders domain.OrderRepository) *OrderService {
	return &OrderService{db: db, orders: orders}
}

// Checkout 全有或全无：任何一步失败整单回滚，不留半个订单。
// 购物车里已下架的商品静默跳过，和购物车页的口径一致；
// 全部跳过时也成单（合计 0、无条目），由测试盯住这个边界。
func (s *OrderService) Checkout(ctx context.Context, userID string, cart domain.Cart) (string, error) {
	if cart.IsEmpty() {
		checkoutTotal.WithLabelValues("empty_cart").Inc()
		return "", Invalid("Your cart is empty.")
	}

	orderID := utils.NewID()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, cart.Len())
		for _, e := range cart.Entries() {
			ids = append(ids, e.ProductID)
		}
		var ps []domain.Product
		if err := tx.Where("id IN ?", ids).Find(&ps).Error; err != nil {
			return err
		}
		byID := make(map[string]domain.Product, len(ps))
		for _, p := range ps {
			byID[p.ID] = p
		}

		order := domain.Order{ID: orderID, UserID: userID, TotalNGN: 0}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total int64
		var summary []string
		for _, e := range cart.Entries() {
			p, ok := byID[e.ProductID]
			if !ok {
				continue
			}
			qty := e.Quantity
			if qty < 1 {
				qty = 1
			}
			item := domain.OrderItem{
				ID:           utils.NewID(),
				OrderID:      order.ID,
				ProductID:    p.ID,
				Quantity:     qty,
				UnitPriceNGN: p.PriceNGN, // 下单时刻的单价快照
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			total += p.PriceNGN * int64(qty)
			summary = append(summary, fmt.Sprintf("- %s x %d (%s)", p.Name, qty, domain.FormatNGN(p.PriceNGN)))
		}

		if err := tx.Model(&domain.Order{}).Where("id = ?", order.ID).Update("total_ngn", total).Error; err != nil {
			return err
		}

		receipt := domain.OrderMessage{
			ID:      utils.NewID(),
			OrderID: order.ID,
			Body:    receiptBody(summary, total),
		}
		receipt.SetSender(domain.UserSender(userID))
		return tx.Create(&receipt).Error
	})
	if err != nil {
		checkoutTotal.WithLabelValues("error").Inc()
		return "", persistence(err)
	}
	checkoutTotal.WithLabelValues("ok").Inc()
	return orderID, nil
}

func receiptBody(summary []string, total int64) string {
	var b strings.Builder
	b.WriteString("Order placed:\n")
	b.WriteString(strings.Join(summary, "\n"))
	b.WriteString("\n\nTotal: ")
	b.WriteString(domain.FormatNGN(total))
	return b.String()
}

func (s *OrderService) ListForUser(userID string) ([]domain.Order, error) {
	os, err := s.orders.ListByUser(userID)
	return os, persistence(err)
}

type AdminOrderRow struct {
	Order domain.Order       `json:"order"`
	Items []domain.OrderItem `json:"items"`
}

// ListAllWithItems 管理端订单页：全量订单（新→旧）+ 条目按订单分组
func (s *OrderService) ListAllWithItems() ([]AdminOrderRow, error) {
	orders, err := s.orders.ListAll()
	if err != nil {
		return nil, persistence(err)
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	grouped, err := s.orders.ItemsByOrderIDs(ids)
	if err != nil {
		return nil, persistence(err)
	}
	rows := make([]AdminOrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, AdminOrderRow{Order: o, Items: grouped[o.ID]})
	}
	return rows, nil
}
