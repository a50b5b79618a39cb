package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func Load() (App, error) {
	// .env is optional, real env always wins
	_ = godotenv.Load()

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return App{}, err
	}
	return cfg, nil
}
