package service

import (
	"context"

	"miwalavie-store/internal/domain"
)

type CartLine struct {
	Product      domain.Product `json:"product"`
	Quantity     int            `json:"quantity"`
	LineTotalNGN int64          `json:"lineTotalNgn"`
}

type CartView struct {
	Lines          []CartLine `json:"lines"`
	TotalNGN       int64      `json:"totalNgn"`
	FormattedTotal string     `json:"formattedTotal"`
}

// CartService 会话购物车；所有规范化都在 domain.Cart 构造处完成，
// 这里只负责围绕存储端口的读改写
type CartService struct {
	store    domain.CartStore
	products domain.ProductRepository
}

func NewCartService(store domain.CartStore, products domain.ProductRepository) *CartService {
	return &CartService{store: store, products: products}
}

func (s *CartService) Get(ctx context.Context, sid string) (domain.Cart, error) {
	c, err := s.store.Get(ctx, sid)
	if err != nil {
		return domain.EmptyCart(), persistence(err)
	}
	return c, nil
}

func (s *CartService) Add(ctx context.Context, sid, productID string) error {
	cart, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	cart.Add(productID)
	return persistence(s.store.Save(ctx, sid, cart))
}

func (s *CartService) Remove(ctx context.Context, sid, productID string) error {
	cart, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	cart.Remove(productID)
	return persistence(s.store.Save(ctx, sid, cart))
}

// UpdateQuantities 只改表单里出现的条目；qtyFor 取表单值（qty_<productID>）
func (s *CartService) UpdateQuantities(ctx context.Context, sid string, qtyFor func(productID string) (string, bool)) error {
	cart, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	for _, e := range cart.Entries() {
		if raw, ok := qtyFor(e.ProductID); ok {
			cart.SetQuantity(e.ProductID, raw)
		}
	}
	return persistence(s.store.Save(ctx, sid, cart))
}

func (s *CartService) Clear(ctx context.Context, sid string) error {
	return persistence(s.store.Clear(ctx, sid))
}

// View 渲染视图：已删除的商品直接跳过，不报错也不计入合计
func (s *CartService) View(ctx context.Context, sid string) (CartView, error) {
	cart, err := s.Get(ctx, sid)
	if err != nil {
		return CartView{}, err
	}
	return s.render(cart)
}

func (s *CartService) render(cart domain.Cart) (CartView, error) {
	ids := make([]string, 0, cart.Len())
	for _, e := range cart.Entries() {
		ids = append(ids, e.ProductID)
	}
	byID, err := s.products.FindByIDs(ids)
	if err != nil {
		return CartView{}, persistence(err)
	}

	view := CartView{Lines: []CartLine{}}
	for _, e := range cart.Entries() {
		p, ok := byID[e.ProductID]
		if !ok {
			continue
		}
		lineTotal := p.PriceNGN * int64(e.Quantity)
		view.TotalNGN += lineTotal
		view.Lines = append(view.Lines, CartLine{Product: p, Quantity: e.Quantity, LineTotalNGN: lineTotal})
	}
	view.FormattedTotal = domain.FormatNGN(view.TotalNGN)
	return view, nil
}
