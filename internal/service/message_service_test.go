package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"miwalavie-store/internal/domain"
	"miwalavie-store/internal/repo"
)

func newChatFixture(t *testing.T) (*MessageService, *gorm.DB, *domain.User, *domain.User, *domain.User, *domain.Order) {
	t.Helper()
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	stranger := seedUser(t, db, "stranger@example.com", false)

	order := &domain.Order{ID: "o1", UserID: owner.ID, TotalNGN: 1000}
	require.NoError(t, db.Create(order).Error)

	svc := NewMessageService(repo.NewOrderRepo(db), repo.NewMessageRepo(db))
	return svc, db, owner, admin, stranger, order
}

func TestThreadAuthorization(t *testing.T) {
	svc, _, owner, admin, stranger, order := newChatFixture(t)

	_, _, err := svc.Thread(order.ID, owner.ID, false)
	assert.NoError(t, err)

	_, _, err = svc.Thread(order.ID, admin.ID, true)
	assert.NoError(t, err)

	_, _, err = svc.Thread(order.ID, stranger.ID, false)
	var ae *AuthorizationError
	require.ErrorAs(t, err, &ae)
	assert.True(t, ae.Soft, "foreign order chat is a soft redirect, not a hard 403")
	assert.Equal(t, "Not allowed.", ae.Msg)
}

func TestPostAuthorization(t *testing.T) {
	svc, db, owner, admin, stranger, order := newChatFixture(t)

	require.NoError(t, svc.Post(order.ID, owner.ID, false, "where is my order?"))
	require.NoError(t, svc.Post(order.ID, admin.ID, true, "on its way"))

	err := svc.Post(order.ID, stranger.ID, false, "let me in")
	var ae *AuthorizationError
	require.ErrorAs(t, err, &ae)

	var count int64
	require.NoError(t, db.Model(&domain.OrderMessage{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestThreadMissingOrder(t *testing.T) {
	svc, _, owner, _, _, _ := newChatFixture(t)

	_, _, err := svc.Thread("ghost", owner.ID, false)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "Order not found.", nfe.Msg)
}

func TestPostTrimsAndIgnoresEmpty(t *testing.T) {
	svc, db, owner, _, _, order := newChatFixture(t)

	// 空白消息静默忽略
	require.NoError(t, svc.Post(order.ID, owner.ID, false, "   \n\t "))
	var count int64
	require.NoError(t, db.Model(&domain.OrderMessage{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, svc.Post(order.ID, owner.ID, false, "  hello  "))
	var m domain.OrderMessage
	require.NoError(t, db.First(&m).Error)
	assert.Equal(t, "hello", m.Body)
	assert.Equal(t, domain.UserSender(owner.ID), m.Sender())
}

func TestThreadOrderedOldestFirst(t *testing.T) {
	svc, db, owner, _, _, order := newChatFixture(t)

	now := time.Now()
	older := domain.OrderMessage{ID: "m1", OrderID: order.ID, Body: "first", CreatedAt: now.Add(-time.Minute)}
	newer := domain.OrderMessage{ID: "m2", OrderID: order.ID, Body: "second", CreatedAt: now}
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&older).Error)

	_, msgs, err := svc.Thread(order.ID, owner.ID, false)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, "second", msgs[1].Body)
}

func TestSystemSenderVariant(t *testing.T) {
	_, db, _, _, _, order := newChatFixture(t)

	m := domain.OrderMessage{ID: "m-sys", OrderID: order.ID, Body: "store notice"}
	m.SetSender(domain.SystemSender())
	require.NoError(t, db.Create(&m).Error)

	var got domain.OrderMessage
	require.NoError(t, db.First(&got, "id = ?", "m-sys").Error)
	assert.True(t, got.Sender().System)
	assert.Nil(t, got.SenderUserID)
}
