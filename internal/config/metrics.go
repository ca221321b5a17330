package config

type Metrics struct {
	Enabled   bool      `env:"ENABLED,expand" envDefault:"true"`
	BasicAuth BasicAuth `envPrefix:"BASIC_AUTH_"`
}

type BasicAuth struct {
	Username string `env:"USERNAME,expand"`
	Password string `env:"PASSWORD,expand"`
}
