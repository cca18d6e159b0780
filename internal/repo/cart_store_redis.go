package repo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"miwalavie-store/internal/domain"
)

// RedisCartStore 每个会话一个 hash：cart:<sid> → {productID: qty}。
// 读取即修复：取出的原始值经 NewCart 规范化后，若与存储形态不一致立刻写回，
// 畸形状态不会在会话里存活超过一次读取。
type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{rdb: rdb, ttl: ttl}
}

func (s *RedisCartStore) key(sid string) string { return "cart:" + sid }

func (s *RedisCartStore) Get(ctx context.Context, sid string) (domain.Cart, error) {
	raw, err := s.rdb.HGetAll(ctx, s.key(sid)).Result()
	if err != nil {
		return domain.EmptyCart(), err
	}
	cart := domain.NewCart(raw)
	if dirty(raw, cart) {
		if err := s.Save(ctx, sid, cart); err != nil {
			return cart, err
		}
	}
	return cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, sid string, c domain.Cart) error {
	key := s.key(sid)
	if c.IsEmpty() {
		return s.rdb.Del(ctx, key).Err()
	}
	norm := c.Raw()
	flat := make([]any, 0, len(norm)*2)
	for k, v := range norm {
		flat = append(flat, k, v)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, flat...)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisCartStore) Clear(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, s.key(sid)).Err()
}

func dirty(raw map[string]string, c domain.Cart) bool {
	norm := c.Raw()
	if len(raw) != len(norm) {
		return true
	}
	for k, v := range raw {
		if norm[k] != v {
			return true
		}
	}
	return false
}
