package redis

import (
	"Followdesk/internal/pkg/consts"
	"context"
	"time"
)

// TokenBlacklist 注销后的 Token 签名，过期时间与 Token 剩余有效期一致
type TokenBlacklist struct{}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, 1, ttl)
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, signature string) (bool, error) {
	return Exists(ctx, consts.TokenBlacklistKey+signature)
}
