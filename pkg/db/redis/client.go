// Package redis содержит клиент Redis для хранилищ отзыва токенов
// и счетчиков лимитов запросов.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Таймаут проверки соединения при создании клиента.
const pingTimeout = 5 * time.Second

// ErrConnect описывает неудачную проверку соединения с Redis.
const ErrConnect = "failed to connect to Redis"

// Client управляет жизненным циклом соединения с Redis.
// Хранилища работают с базовым клиентом напрямую через RawClient.
type Client struct {
	rdb *redis.Client
}

// NewClient открывает соединение по конфигурации и проверяет его
// командой PING. Ошибка проверки означает недоступный сервер.
func NewClient(cfg *Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	return &Client{rdb: rdb}, nil
}

// RawClient возвращает базовый клиент go-redis для хранилищ.
func (c *Client) RawClient() *redis.Client {
	return c.rdb
}

// Close закрывает соединение с Redis.
func (c *Client) Close() error {
	return c.rdb.Close()
}
