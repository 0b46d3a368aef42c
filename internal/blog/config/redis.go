package config

import (
	"time"

	pkgredis "inkwell/pkg/db/redis"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"BLOG_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"BLOG_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"BLOG_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"BLOG_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"BLOG_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"BLOG_REDIS_TIMEOUT" env-default:"5s"`
}

// ToClientConfig преобразует конфигурацию в формат pkg/db/redis.
func (r *RedisConfig) ToClientConfig() *pkgredis.Config {
	return &pkgredis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}
