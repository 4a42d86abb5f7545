package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	// Secret signs every issued token; the process must not start without it.
	Secret        string `env:"JWT_SECRET, required"`
	Algorithm     string `env:"JWT_ALGORITHM, default=HS256"`
	ExpireMinutes int    `env:"JWT_EXPIRE_MINUTES, default=1440"`
}

// TTL converts the configured expiry to a duration.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=saferide_kids"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing or malformed required settings abort startup; nothing else does.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.ExpireMinutes <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRE_MINUTES must be a positive integer, got %d", cfg.JWT.ExpireMinutes)
	}
	return &cfg, nil
}
