package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miwalavie-store/internal/repo"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *repo.ProductRepo) {
	t.Helper()
	db := newTestDB(t)
	r := repo.NewProductRepo(db)
	return NewCatalogService(r), r
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12500", 12500, true},
		{"12,500", 12500, true},
		{"1,234,567", 1234567, true},
		{"2500.75", 2500, true}, // 小数截断成整数奈拉
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-100", 0, false},
	}
	for _, c := range cases {
		got, err := ParsePrice(c.in)
		if c.ok {
			require.NoError(t, err, "input %q", c.in)
			assert.Equal(t, c.want, got, "input %q", c.in)
		} else {
			var ve *ValidationError
			require.ErrorAs(t, err, &ve, "input %q", c.in)
		}
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, r := newCatalogFixture(t)
	ctx := context.Background()

	for _, c := range []struct{ name, desc, image string }{
		{"", "desc", "uploads/x.jpg"},
		{"name", "", "uploads/x.jpg"},
		{"name", "desc", ""},
		{"  ", "desc", "uploads/x.jpg"},
	} {
		_, err := svc.CreateProduct(ctx, c.name, c.desc, 100, c.image)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	}

	// 没有任何半条记录落库
	ps, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, ps)

	p, err := svc.CreateProduct(ctx, " Ankara Tote ", " woven tote ", 1000, "uploads/tote.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Ankara Tote", p.Name)
	assert.Equal(t, "woven tote", p.Description)
}

func TestDeleteProductIdempotent(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, "Soap", "black soap", 300, "uploads/soap.jpg")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	// 再删同一个 → "not found" 提示而不是失败
	err = svc.DeleteProduct(ctx, p.ID)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "Product not found.", nfe.Msg)
}

func TestResolveDropsMissingIDs(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, "Soap", "black soap", 300, "uploads/soap.jpg")
	require.NoError(t, err)

	got, err := svc.Resolve([]string{p.ID, "ghost"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Soap", got[p.ID].Name)

	got, err = svc.Resolve(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
