package ports

import (
	"context"
	"time"
)

// AliasCacheRepository : Redis слой алиасов access токенов.
// ResolveAlias возвращает пустую строку без ошибки, если алиас не найден или истёк.
type AliasCacheRepository interface {
	MintAlias(ctx context.Context, signedToken string, ttl time.Duration) (string, error)
	ResolveAlias(ctx context.Context, alias string) (string, error)
	InvalidateAlias(ctx context.Context, alias string) error
}
