package config

type Logger struct {
	// slog level: -4 debug, 0 info, 4 warn, 8 error
	Level int `env:"LEVEL,expand" envDefault:"0"`
}
