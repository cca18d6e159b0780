package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miwalavie-store/internal/domain"
	"miwalavie-store/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: 是按连接隔离的，锁死单连接避免表丢失
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Product{},
		&domain.Order{}, &domain.OrderItem{}, &domain.OrderMessage{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, admin bool) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword("secret"),
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, id, name string, price int64) *domain.Product {
	t.Helper()
	p := &domain.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		PriceNGN:    price,
		ImagePath:   "uploads/" + id + ".jpg",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
