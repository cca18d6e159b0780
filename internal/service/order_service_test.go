package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miwalavie-store/internal/domain"
	"miwalavie-store/internal/repo"
)

func TestCheckoutTotalAndReceipt(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", false)
	seedProduct(t, db, "3", "Ankara Tote", 1000)
	seedProduct(t, db, "7", "Bead Necklace", 500)

	svc := NewOrderService(db, repo.NewOrderRepo(db))

	// 规范化后 {"3": 2, "7": 1}
	cart := domain.NewCart(map[string]string{"3": "2", "7": "abc"})
	orderID, err := svc.Checkout(context.Background(), buyer.ID, cart)
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	var order domain.Order
	require.NoError(t, db.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, int64(2500), order.TotalNGN)
	assert.Equal(t, buyer.ID, order.UserID)

	var items []domain.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&items).Error)
	require.Len(t, items, 2)
	byProduct := map[string]domain.OrderItem{}
	for _, it := range items {
		byProduct[it.ProductID] = it
	}
	assert.Equal(t, 2, byProduct["3"].Quantity)
	assert.Equal(t, int64(1000), byProduct["3"].UnitPriceNGN)
	assert.Equal(t, 1, byProduct["7"].Quantity)
	assert.Equal(t, int64(500), byProduct["7"].UnitPriceNGN)

	// 合计 == 条目行合计之和
	var sum int64
	for _, it := range items {
		sum += it.UnitPriceNGN * int64(it.Quantity)
	}
	assert.Equal(t, order.TotalNGN, sum)

	var msgs []domain.OrderMessage
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&msgs).Error)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Body, "Order placed:")
	assert.Contains(t, msgs[0].Body, "Ankara Tote x 2 (₦1,000)")
	assert.Contains(t, msgs[0].Body, "Total: ₦2,500")
	assert.Equal(t, domain.UserSender(buyer.ID), msgs[0].Sender())
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", false)
	svc := NewOrderService(db, repo.NewOrderRepo(db))

	_, err := svc.Checkout(context.Background(), buyer.ID, domain.EmptyCart())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Your cart is empty.", ve.Msg)

	var count int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutSkipsDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", false)
	seedProduct(t, db, "p1", "Soap", 300)
	svc := NewOrderService(db, repo.NewOrderRepo(db))

	cart := domain.NewCart(map[string]string{"p1": "2", "ghost": "5"})
	orderID, err := svc.Checkout(context.Background(), buyer.ID, cart)
	require.NoError(t, err)

	var order domain.Order
	require.NoError(t, db.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, int64(600), order.TotalNGN)

	var items []domain.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&items).Error)
	assert.Len(t, items, 1)
}

func TestCheckoutAllProductsGoneStillCreatesOrder(t *testing.T) {
	// 所有条目都失效时仍然成单：合计 0、无条目
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", false)
	svc := NewOrderService(db, repo.NewOrderRepo(db))

	cart := domain.NewCart(map[string]string{"gone1": "1", "gone2": "3"})
	orderID, err := svc.Checkout(context.Background(), buyer.ID, cart)
	require.NoError(t, err)

	var order domain.Order
	require.NoError(t, db.First(&order, "id = ?", orderID).Error)
	assert.Zero(t, order.TotalNGN)

	var items int64
	require.NoError(t, db.Model(&domain.OrderItem{}).Where("order_id = ?", orderID).Count(&items).Error)
	assert.Zero(t, items)

	var msgs []domain.OrderMessage
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&msgs).Error)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Body, "Total: ₦0")
}

func TestCheckoutRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", false)
	seedProduct(t, db, "p1", "Soap", 300)
	svc := NewOrderService(db, repo.NewOrderRepo(db))

	// 让最后一步（回执消息）失败，验证整个事务回滚
	require.NoError(t, db.Migrator().DropTable(&domain.OrderMessage{}))

	cart := domain.NewCart(map[string]string{"p1": "2"})
	_, err := svc.Checkout(context.Background(), buyer.ID, cart)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)

	var orders, items int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders, "no partial order may survive")
	assert.Zero(t, items, "no partial items may survive")
}

func TestListForUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	svc := NewOrderService(db, repo.NewOrderRepo(db))

	now := time.Now()
	old := domain.Order{ID: "o-old", UserID: buyer.ID, TotalNGN: 100, CreatedAt: now.Add(-time.Hour)}
	recent := domain.Order{ID: "o-new", UserID: buyer.ID, TotalNGN: 200, CreatedAt: now}
	foreign := domain.Order{ID: "o-foreign", UserID: other.ID, TotalNGN: 300, CreatedAt: now}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)
	require.NoError(t, db.Create(&foreign).Error)

	got, err := svc.ListForUser(buyer.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "o-new", got[0].ID)
	assert.Equal(t, "o-old", got[1].ID)
}

func TestListAllWithItemsGroupsByOrder(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", false)
	svc := NewOrderService(db, repo.NewOrderRepo(db))

	now := time.Now()
	o1 := domain.Order{ID: "o1", UserID: buyer.ID, CreatedAt: now.Add(-time.Minute)}
	o2 := domain.Order{ID: "o2", UserID: buyer.ID, CreatedAt: now}
	require.NoError(t, db.Create(&o1).Error)
	require.NoError(t, db.Create(&o2).Error)
	require.NoError(t, db.Create(&domain.OrderItem{ID: "i1", OrderID: "o1", ProductID: "p", Quantity: 1, UnitPriceNGN: 10}).Error)
	require.NoError(t, db.Create(&domain.OrderItem{ID: "i2", OrderID: "o1", ProductID: "q", Quantity: 2, UnitPriceNGN: 20}).Error)

	rows, err := svc.ListAllWithItems()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "o2", rows[0].Order.ID)
	assert.Empty(t, rows[0].Items)
	assert.Equal(t, "o1", rows[1].Order.ID)
	assert.Len(t, rows[1].Items, 2)
}
