package pusher

import (
	"time"

	"github.com/dmitrymomot/pusher/core/config"
	"github.com/dmitrymomot/pusher/pkg/transport"
)

// Config is the environment configuration of a Client. URL, when set,
// supplies the credentials, host and scheme.
type Config struct {
	URL                       string        `env:"PUSHER_URL"`
	AppID                     string        `env:"PUSHER_APP_ID"`
	Key                       string        `env:"PUSHER_KEY"`
	Secret                    string        `env:"PUSHER_SECRET"`
	Cluster                   string        `env:"PUSHER_CLUSTER"`
	Host                      string        `env:"PUSHER_HOST"`
	Secure                    bool          `env:"PUSHER_SECURE" envDefault:"false"`
	EncryptionMasterKeyBase64 string        `env:"PUSHER_ENCRYPTION_MASTER_KEY_BASE64"`
	Timeout                   time.Duration `env:"PUSHER_TIMEOUT" envDefault:"4s"`
	MaxRetries                int           `env:"PUSHER_MAX_RETRIES" envDefault:"0"`
	RateLimit                 float64       `env:"PUSHER_RATE_LIMIT" envDefault:"0"`
	RateBurst                 int           `env:"PUSHER_RATE_BURST" envDefault:"1"`
	Metrics                   bool          `env:"PUSHER_METRICS" envDefault:"false"`
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, configError(err)
	}
	return cfg, nil
}

// Options converts the configuration to client options.
func (cfg Config) Options() []Option {
	opts := []Option{
		WithCluster(cfg.Cluster),
		WithHost(cfg.Host),
		WithTimeout(cfg.Timeout),
		WithRetry(cfg.MaxRetries, nil),
		WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	}
	if cfg.Secure {
		opts = append(opts, WithSecure(true))
	}
	if cfg.EncryptionMasterKeyBase64 != "" {
		opts = append(opts, WithEncryptionMasterKey(cfg.EncryptionMasterKeyBase64))
	}
	if cfg.Metrics {
		opts = append(opts, WithMetrics(transport.DefaultMetrics()))
	}
	return opts
}

// NewFromConfig creates a client from cfg; opts are applied after it.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	all := append(cfg.Options(), opts...)
	if cfg.URL != "" {
		return NewFromURL(cfg.URL, all...)
	}
	return New(cfg.AppID, cfg.Key, cfg.Secret, all...)
}

// NewFromEnv loads Config from the environment and creates a client.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}
