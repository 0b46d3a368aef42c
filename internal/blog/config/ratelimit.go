package config

import "time"

// Бэкенды хранилищ rate limiter и отозванных токенов.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// RateLimitConfig содержит бюджеты запросов по группам маршрутов.
// Лимит и окно передаются на каждом вызове; ключом остается только
// идентификатор клиента.
type RateLimitConfig struct {
	Backend string `yaml:"backend" env:"BLOG_RATELIMIT_BACKEND" env-default:"memory"`

	RegisterLimit  int           `yaml:"register_limit" env:"BLOG_RATELIMIT_REGISTER_LIMIT" env-default:"3"`
	RegisterWindow time.Duration `yaml:"register_window" env:"BLOG_RATELIMIT_REGISTER_WINDOW" env-default:"10m"`
	LoginLimit     int           `yaml:"login_limit" env:"BLOG_RATELIMIT_LOGIN_LIMIT" env-default:"10"`
	LoginWindow    time.Duration `yaml:"login_window" env:"BLOG_RATELIMIT_LOGIN_WINDOW" env-default:"1m"`
	ReadLimit      int           `yaml:"read_limit" env:"BLOG_RATELIMIT_READ_LIMIT" env-default:"200"`
	ReadWindow     time.Duration `yaml:"read_window" env:"BLOG_RATELIMIT_READ_WINDOW" env-default:"1m"`
	WriteLimit     int           `yaml:"write_limit" env:"BLOG_RATELIMIT_WRITE_LIMIT" env-default:"10"`
	WriteWindow    time.Duration `yaml:"write_window" env:"BLOG_RATELIMIT_WRITE_WINDOW" env-default:"1m"`
}

// UseRedis сообщает, выбран ли Redis в качестве хранилища счетчиков.
func (c *RateLimitConfig) UseRedis() bool {
	return c.Backend == BackendRedis
}
