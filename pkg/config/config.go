package config

import (
	"log"
	"os"
	"time"

	"github.com/hoai-tn/pre-loved--services/pkg/utils"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string   `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTP     `yaml:"http"`
	Postgres PG       `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Kafka    Kafka    `yaml:"kafka"`
	Services Services `yaml:"services"`
	Checkout Checkout `yaml:"checkout"`
}

type HTTP struct {
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:":3000"`
	Timeout time.Duration `yaml:"timeout" env-default:"4s"`
}

type PG struct {
	URL string `yaml:"url" env:"DB_URL"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
}

type Services struct {
	InventoryURL string `yaml:"inventory_url" env:"INVENTORY_URL" env-default:"http://localhost:3002"`
	ProductURL   string `yaml:"product_url" env:"PRODUCT_URL" env-default:"http://localhost:3003"`
}

// Checkout bounds the oracle fan-out of one placeOrder call.
type Checkout struct {
	OracleTimeout  time.Duration `yaml:"oracle_timeout" env:"ORACLE_TIMEOUT" env-default:"3s"`
	MaxConcurrency int           `yaml:"max_concurrency" env:"ORACLE_MAX_CONCURRENCY" env-default:"8"`
}

// MustLoad reads the config file at CONFIG_PATH, falling back to the
// service's own default path. Each entrypoint passes its config location,
// so binaries run without any env setup.
func MustLoad(defaultPath string) *Config {
	configPath := utils.ParseWithFallback("CONFIG_PATH", defaultPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exists: %v\n", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	return &cfg
}
