package domain

import (
	"context"
	"sort"
	"strconv"
)

type CartEntry struct {
	ProductID string
	Quantity  int
}

// Cart 会话级购物车值对象。数量规范化只发生在构造处：
// 解析失败或 <1 的数量一律按 1 处理，调用方拿到的永远是合法状态。
type Cart struct {
	ids []string
	qty map[string]int
}

func EmptyCart() Cart {
	return Cart{qty: map[string]int{}}
}

// NewCart 从存储里的原始键值对构造。键按字典序排定，
// 保证同一份会话状态在任何一次读取后的遍历顺序一致。
func NewCart(raw map[string]string) Cart {
	c := EmptyCart()
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c.ids = append(c.ids, id)
		c.qty[id] = normalizeQty(raw[id])
	}
	return c
}

func normalizeQty(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (c *Cart) Len() int      { return len(c.ids) }
func (c *Cart) IsEmpty() bool { return len(c.ids) == 0 }

func (c *Cart) Quantity(productID string) (int, bool) {
	n, ok := c.qty[productID]
	return n, ok
}

// Entries 按固定遍历顺序返回所有条目
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, CartEntry{ProductID: id, Quantity: c.qty[id]})
	}
	return out
}

// Add 已有则 +1，否则插入数量 1
func (c *Cart) Add(productID string) {
	if c.qty == nil {
		c.qty = map[string]int{}
	}
	if _, ok := c.qty[productID]; ok {
		c.qty[productID]++
		return
	}
	c.ids = append(c.ids, productID)
	c.qty[productID] = 1
}

// Remove 不存在时是静默 no-op
func (c *Cart) Remove(productID string) {
	if _, ok := c.qty[productID]; !ok {
		return
	}
	delete(c.qty, productID)
	for i, id := range c.ids {
		if id == productID {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
}

// SetQuantity 只作用于已在车内的商品；非法输入按 1 处理
func (c *Cart) SetQuantity(productID, raw string) {
	if _, ok := c.qty[productID]; !ok {
		return
	}
	c.qty[productID] = normalizeQty(raw)
}

// Raw 序列化为存储层的键值对形式
func (c *Cart) Raw() map[string]string {
	out := make(map[string]string, len(c.ids))
	for _, id := range c.ids {
		out[id] = strconv.Itoa(c.qty[id])
	}
	return out
}

// CartStore 会话购物车端口；sid 来自匿名会话 cookie
type CartStore interface {
	Get(ctx context.Context, sid string) (Cart, error)
	Save(ctx context.Context, sid string, c Cart) error
	Clear(ctx context.Context, sid string) error
}
