package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"education-server/config"
	"education-server/internal/util"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheRepository : Redis слой алиасов.
// Алиас — случайный UUID, за которым в кэше лежит подписанный access токен.
// Инвалидированный или истёкший алиас просто перестаёт разрешаться.
type CacheRepository struct {
	client *config.RedisClient
}

func NewCacheRepository(rdb *config.RedisClient) *CacheRepository {
	return &CacheRepository{rdb}
}

func (r *CacheRepository) MintAlias(ctx context.Context, signedToken string, ttl time.Duration) (string, error) {
	alias := uuid.New().String()

	cmd := r.client.Client.Set(ctx, r.key(alias), signedToken, ttl)
	if err := cmd.Err(); err != nil {
		return "", util.WrapUnavailable("ошибка сохранения алиаса в Redis", err)
	}
	if cmd.Val() != "OK" {
		return "", fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return alias, nil
}

func (r *CacheRepository) ResolveAlias(ctx context.Context, alias string) (string, error) {
	val, err := r.client.Client.Get(ctx, r.key(alias)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // алиас не найден или истёк
	} else if err != nil {
		return "", util.WrapUnavailable("ошибка чтения алиаса из Redis", err)
	}

	return val, nil
}

func (r *CacheRepository) InvalidateAlias(ctx context.Context, alias string) error {
	if err := r.client.Client.Del(ctx, r.key(alias)).Err(); err != nil {
		return util.WrapUnavailable("ошибка удаления алиаса из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(alias string) string {
	return fmt.Sprintf("session:alias:%s", alias)
}
