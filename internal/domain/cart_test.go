package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartNormalizesQuantities(t *testing.T) {
	cart := NewCart(map[string]string{
		"3":  "2",
		"7":  "abc",
		"9":  "0",
		"11": "-4",
		"13": "",
	})

	require.Equal(t, 5, cart.Len())
	for _, e := range cart.Entries() {
		assert.GreaterOrEqual(t, e.Quantity, 1, "product %s", e.ProductID)
	}

	q, ok := cart.Quantity("3")
	require.True(t, ok)
	assert.Equal(t, 2, q)
	q, _ = cart.Quantity("7")
	assert.Equal(t, 1, q)
	q, _ = cart.Quantity("9")
	assert.Equal(t, 1, q)
	q, _ = cart.Quantity("11")
	assert.Equal(t, 1, q)
}

func TestNewCartOrderIsStableAcrossRoundTrips(t *testing.T) {
	raw := map[string]string{"b": "1", "a": "3", "c": "2"}
	first := NewCart(raw)
	second := NewCart(first.Raw())

	assert.Equal(t, first.Entries(), second.Entries())
	// 构造时按 id 排序，遍历顺序可复现
	assert.Equal(t, []CartEntry{{"a", 3}, {"b", 1}, {"c", 2}}, first.Entries())
}

func TestCartAddIncrementsOrInserts(t *testing.T) {
	cart := EmptyCart()
	cart.Add("p1")
	cart.Add("p1")
	cart.Add("p2")

	q, _ := cart.Quantity("p1")
	assert.Equal(t, 2, q)
	q, _ = cart.Quantity("p2")
	assert.Equal(t, 1, q)
	// 新增条目排在已有条目之后
	assert.Equal(t, []CartEntry{{"p1", 2}, {"p2", 1}}, cart.Entries())
}

func TestCartRemoveMissingIsNoop(t *testing.T) {
	cart := NewCart(map[string]string{"p1": "2"})
	cart.Remove("ghost")
	assert.Equal(t, 1, cart.Len())

	cart.Remove("p1")
	assert.True(t, cart.IsEmpty())
}

func TestCartSetQuantity(t *testing.T) {
	cart := NewCart(map[string]string{"p1": "2"})

	cart.SetQuantity("p1", "5")
	q, _ := cart.Quantity("p1")
	assert.Equal(t, 5, q)

	cart.SetQuantity("p1", "junk")
	q, _ = cart.Quantity("p1")
	assert.Equal(t, 1, q)

	cart.SetQuantity("p1", "-2")
	q, _ = cart.Quantity("p1")
	assert.Equal(t, 1, q)

	// 不在车里的商品不会被塞进来
	cart.SetQuantity("ghost", "3")
	_, ok := cart.Quantity("ghost")
	assert.False(t, ok)
}

func TestFormatNGN(t *testing.T) {
	assert.Equal(t, "₦0", FormatNGN(0))
	assert.Equal(t, "₦500", FormatNGN(500))
	assert.Equal(t, "₦2,500", FormatNGN(2500))
	assert.Equal(t, "₦12,500", FormatNGN(12500))
	assert.Equal(t, "₦1,234,567", FormatNGN(1234567))
}
