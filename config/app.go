package config

import "time"

type App struct {
	Port          string        `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTLHours   int           `envconfig:"JWT_TTL_HOURS" default:"24"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
	Env           string        `envconfig:"APP_ENV" default:"dev"`
}
