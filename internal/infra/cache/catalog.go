// Package cache содержит read-through кэш каталога поверх Redis.
// Кэшируются только read-only данные каталога (комнаты, тарифы); путь
// проверки конфликтов броней через кэш не ходит никогда.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// CatalogSource источник данных каталога (репозиторий)
type CatalogSource interface {
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
	GetTariffByRoomType(ctx context.Context, roomType domain.RoomType) (*domain.Tariff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// CatalogCache read-through кэш каталога.
// При недоступности Redis деградирует до прямых чтений из источника.
type CatalogCache struct {
	source CatalogSource
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewCatalogCache создает новый кэш каталога
func NewCatalogCache(source CatalogSource, client *redis.Client, ttl time.Duration, log Logger) *CatalogCache {
	return &CatalogCache{
		source: source,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// GetRoomByID возвращает комнату из кэша либо из источника
func (c *CatalogCache) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	key := fmt.Sprintf("catalog:room:%d", id)

	var room domain.Room
	if c.getCached(ctx, key, &room) {
		return &room, nil
	}

	fresh, err := c.source.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.setCached(ctx, key, fresh)
	return fresh, nil
}

// GetTariffByRoomType возвращает тариф категории из кэша либо из источника
func (c *CatalogCache) GetTariffByRoomType(ctx context.Context, roomType domain.RoomType) (*domain.Tariff, error) {
	key := fmt.Sprintf("catalog:tariff:%s", roomType)

	var tariff domain.Tariff
	if c.getCached(ctx, key, &tariff) {
		return &tariff, nil
	}

	fresh, err := c.source.GetTariffByRoomType(ctx, roomType)
	if err != nil {
		return nil, err
	}

	c.setCached(ctx, key, fresh)
	return fresh, nil
}

// InvalidateRoom сбрасывает кэш комнаты (вызывается админ-контуром при записи)
func (c *CatalogCache) InvalidateRoom(ctx context.Context, id int64) {
	c.invalidate(ctx, fmt.Sprintf("catalog:room:%d", id))
}

// InvalidateTariff сбрасывает кэш тарифа категории
func (c *CatalogCache) InvalidateTariff(ctx context.Context, roomType domain.RoomType) {
	c.invalidate(ctx, fmt.Sprintf("catalog:tariff:%s", roomType))
}

func (c *CatalogCache) getCached(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache: get %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn("cache: unmarshal %s failed: %v", key, err)
		return false
	}
	return true
}

func (c *CatalogCache) setCached(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache: marshal %s failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache: set %s failed: %v", key, err)
	}
}

func (c *CatalogCache) invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("cache: del %s failed: %v", key, err)
	}
}
