package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"payment_simulator/logging"
)

type Config struct {
	Port                 int     `env:"PORT" envDefault:"3000"`
	FailureRate          float64 `env:"FAILURE_RATE" envDefault:"0.05"`
	ValidPassword        string  `env:"VALID_PASSWORD" envDefault:"123456"`
	StaticDir            string  `env:"STATIC_DIR" envDefault:"./public"`
	StatsIntervalSeconds int     `env:"STATS_INTERVAL_SECONDS" envDefault:"30"`
}

func GetConfig() *Config {
	logger := logging.GetSugaredLogger()
	defer logger.Sync()

	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		logger.Fatalw("failed to parse environment variables", "error", err)
	}

	return config
}
