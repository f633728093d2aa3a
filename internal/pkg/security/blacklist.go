package security

import (
	"context"
	"sync"
	"time"
)

// MemoryBlacklist 未配置 Redis 时的进程内黑名单，单实例部署使用
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[signature] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, signature string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.entries[signature]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(b.entries, signature)
		return false, nil
	}
	return true, nil
}
