package config

import "time"

type HTTP struct {
	BaseURL   string    `env:"BASE_URL,expand" envDefault:"/"`
	Address   string    `env:"ADDRESS,expand" envDefault:":8080"`
	Session   Session   `envPrefix:"SESSION_"`
	CORS      CORS      `envPrefix:"CORS_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

type Session struct {
	Name string        `env:"NAME,expand" envDefault:"scheduler_session"`
	Keys []string      `env:"KEYS,expand" envSeparator:","`
	TTL  time.Duration `env:"TTL,expand" envDefault:"24h"`

	Cookie Cookie `envPrefix:"COOKIE_"`

	PurgeInterval time.Duration `env:"PURGE_INTERVAL,expand" envDefault:"1h"`
}

type Cookie struct {
	Path     string        `env:"PATH,expand" envDefault:"/"`
	HTTPOnly bool          `env:"HTTP_ONLY,expand" envDefault:"true"`
	Secure   bool          `env:"SECURE,expand" envDefault:"false"`
	MaxAge   time.Duration `env:"MAX_AGE,expand" envDefault:"24h"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,expand" envSeparator:","`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED,expand" envDefault:"true"`
	TrustHeaders bool          `env:"TRUST_HEADERS,expand" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL,expand" envDefault:"10s"`
	MaxBurst     int           `env:"MAX_BURST,expand" envDefault:"5"`
	CacheSize    int           `env:"CACHE_SIZE,expand" envDefault:"1024"`
	CacheTTL     time.Duration `env:"CACHE_TTL,expand" envDefault:"10m"`
}
