package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Admin struct {
		// Plaintext shared secret for the admin panel. Single-tenant site,
		// single administrator.
		Password string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	}

	Cloudinary struct {
		CloudName string `env:"CLOUDINARY_CLOUD_NAME" envDefault:""`
		APIKey    string `env:"CLOUDINARY_API_KEY" envDefault:""`
		APISecret string `env:"CLOUDINARY_API_SECRET" envDefault:""`
		// Root folder for every upload; request folders nest under it.
		BaseFolder string `env:"CLOUDINARY_BASE_FOLDER" envDefault:"birthday-website"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional; in production the variables are set directly.
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
