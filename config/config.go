package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the client reads from the environment. A .env file
// in the working directory is honored but never required.
type Config struct {
	APIBaseURL           string        `envconfig:"CINEMAS_API_URL" default:"http://ec2-13-201-98-117.ap-south-1.compute.amazonaws.com:3000"`
	HTTPTimeout          time.Duration `envconfig:"CINEMAS_HTTP_TIMEOUT" default:"12s"`
	ServiceChargePercent int           `envconfig:"CINEMAS_SERVICE_CHARGE_PERCENT" default:"6"`
	LogLevel             string        `envconfig:"CINEMAS_LOG_LEVEL" default:"info"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
