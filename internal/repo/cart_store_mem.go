package repo

import (
	"context"
	"sync"

	"miwalavie-store/internal/domain"
)

// MemCartStore 进程内购物车存储，redis 未配置时的兜底，也用于测试
type MemCartStore struct {
	mu    sync.Mutex
	carts map[string]map[string]string
}

func NewMemCartStore() *MemCartStore {
	return &MemCartStore{carts: map[string]map[string]string{}}
}

func (s *MemCartStore) Get(_ context.Context, sid string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := domain.NewCart(s.carts[sid])
	s.carts[sid] = cart.Raw() // 读取即修复
	return cart, nil
}

func (s *MemCartStore) Save(_ context.Context, sid string, c domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.IsEmpty() {
		delete(s.carts, sid)
		return nil
	}
	s.carts[sid] = c.Raw()
	return nil
}

func (s *MemCartStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sid)
	return nil
}

// Seed 测试用：直接写入未规范化的原始状态
func (s *MemCartStore) Seed(sid string, raw map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sid] = raw
}

// RawSnapshot 测试用：观察写回后的存储形态
func (s *MemCartStore) RawSnapshot(sid string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]string{}
	for k, v := range s.carts[sid] {
		out[k] = v
	}
	return out
}
