package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miwalavie-store/internal/repo"
)

func newCartFixture(t *testing.T) (*CartService, *repo.MemCartStore) {
	t.Helper()
	db := newTestDB(t)
	store := repo.NewMemCartStore()
	products := repo.NewProductRepo(db)
	seedProduct(t, db, "3", "Ankara Tote", 1000)
	seedProduct(t, db, "7", "Bead Necklace", 500)
	return NewCartService(store, products), store
}

func TestCartGetRepairsMalformedState(t *testing.T) {
	svc, store := newCartFixture(t)
	store.Seed("s1", map[string]string{"3": "2", "7": "abc", "9": "-1"})

	cart, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)

	for _, e := range cart.Entries() {
		assert.GreaterOrEqual(t, e.Quantity, 1)
	}
	// 规范化结果立即写回，畸形状态不过夜
	assert.Equal(t, map[string]string{"3": "2", "7": "1", "9": "1"}, store.RawSnapshot("s1"))
}

func TestCartAddRemove(t *testing.T) {
	svc, store := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s1", "3"))
	require.NoError(t, svc.Add(ctx, "s1", "3"))
	require.NoError(t, svc.Add(ctx, "s1", "7"))
	assert.Equal(t, map[string]string{"3": "2", "7": "1"}, store.RawSnapshot("s1"))

	require.NoError(t, svc.Remove(ctx, "s1", "7"))
	require.NoError(t, svc.Remove(ctx, "s1", "ghost")) // 静默
	assert.Equal(t, map[string]string{"3": "2"}, store.RawSnapshot("s1"))
}

func TestCartUpdateQuantities(t *testing.T) {
	svc, store := newCartFixture(t)
	ctx := context.Background()
	store.Seed("s1", map[string]string{"3": "2", "7": "1"})

	form := map[string]string{
		"qty_3": "5",
		// qty_7 没提交 → 保持不变
		"qty_ghost": "9", // 不在车里 → 忽略
	}
	err := svc.UpdateQuantities(ctx, "s1", func(pid string) (string, bool) {
		v, ok := form["qty_"+pid]
		return v, ok
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"3": "5", "7": "1"}, store.RawSnapshot("s1"))

	// 非法输入按 1 收
	form["qty_3"] = "junk"
	require.NoError(t, svc.UpdateQuantities(ctx, "s1", func(pid string) (string, bool) {
		v, ok := form["qty_"+pid]
		return v, ok
	}))
	assert.Equal(t, "1", store.RawSnapshot("s1")["3"])
}

func TestCartViewSkipsDeletedProducts(t *testing.T) {
	svc, store := newCartFixture(t)
	store.Seed("s1", map[string]string{"3": "2", "gone": "4"})

	view, err := svc.View(context.Background(), "s1")
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Ankara Tote", view.Lines[0].Product.Name)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, int64(2000), view.Lines[0].LineTotalNGN)
	assert.Equal(t, int64(2000), view.TotalNGN)
	assert.Equal(t, "₦2,000", view.FormattedTotal)
}

func TestCartClear(t *testing.T) {
	svc, store := newCartFixture(t)
	ctx := context.Background()
	store.Seed("s1", map[string]string{"3": "1"})

	require.NoError(t, svc.Clear(ctx, "s1"))
	assert.Empty(t, store.RawSnapshot("s1"))

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
