package utils

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// TokenDenylist 已注销的令牌 ID 集合，条目在令牌本身过期后自动清除
type TokenDenylist struct {
	storage *cache.Cache
}

// NewTokenDenylist 创建注销列表，cleanupInterval 为过期条目清理间隔
func NewTokenDenylist(cleanupInterval time.Duration) *TokenDenylist {
	return &TokenDenylist{
		storage: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

// Revoke 注销令牌直到 until；已过期的令牌无需记录
func (d *TokenDenylist) Revoke(tokenID string, until time.Time) {
	ttl := time.Until(until)
	if tokenID == "" || ttl <= 0 {
		return
	}
	d.storage.Set(tokenID, struct{}{}, ttl)
}

// IsRevoked 令牌是否已注销
func (d *TokenDenylist) IsRevoked(tokenID string) bool {
	_, found := d.storage.Get(tokenID)
	return found
}
