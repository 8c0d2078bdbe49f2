package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Exactly one storage backend is active: POSTGRES_DSN when set,
	// otherwise JSON collections under DATA_DIR.
	PostgresDSN string `env:"POSTGRES_DSN"`
	DataDir     string `env:"DATA_DIR" envDefault:"data"`

	SuperAdminName string `env:"SUPER_ADMIN_NAME" envDefault:"root"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
