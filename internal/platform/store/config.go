package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	Redis RedisConfig
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled bool

	// URL is a redis:// URL; takes precedence over Addr when set
	URL  string
	Addr string
	DB   int

	DialTimeout time.Duration
	ReadTimeout time.Duration

	// Guard/boot knobs
	PingTimeout time.Duration // default 5s
}
