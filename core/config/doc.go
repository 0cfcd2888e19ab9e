// Package config loads typed configuration from environment variables and
// caches one value per configuration type.
//
// A .env file in the working directory is read on first use (variables that
// are already set win) and github.com/caarlos0/env parses the environment
// into struct fields.
//
//	type Config struct {
//		AppID   string        `env:"PUSHER_APP_ID,required"`
//		Cluster string        `env:"PUSHER_CLUSTER"`
//		Timeout time.Duration `env:"PUSHER_TIMEOUT" envDefault:"4s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure during startup.
//	config.MustLoad(&cfg)
//
// # Caching Behavior
//
// Each type is parsed once per process. Later calls for the same type return
// the cached value even if the environment has changed since. Failed loads
// are not cached.
package config
