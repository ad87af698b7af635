package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env         string `yaml:"env" env:"SHOPFLOOR_ENV" env-default:"prod"`
	HTTPServer  `yaml:"http_server"`
	DBUser      string `yaml:"db_user" env:"DB_USER" env-required:"true"`
	DBPassword  string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost      string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort      int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName      string `yaml:"db_name" env:"DB_NAME" env-required:"true"`
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH" env-default:"./config/catalog.yaml"`

	DefaultObjective int      `yaml:"default_objective" env-default:"35"`
	AllowedOrigins   []string `yaml:"allowed_origins" env-default:"http://localhost:5173"`

	MQTT `yaml:"mqtt"`
	Pins `yaml:"pins"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// MQTT publishing is disabled when Broker is empty.
type MQTT struct {
	Broker      string `yaml:"broker" env:"MQTT_BROKER"`
	ClientID    string `yaml:"client_id" env-default:"shopfloor"`
	TopicPrefix string `yaml:"topic_prefix" env-default:"shopfloor"`
}

type Pins struct {
	Adjuster   string `yaml:"adjuster" env:"PIN_ADJUSTER" env-required:"true"`
	Supervisor string `yaml:"supervisor" env:"PIN_SUPERVISOR" env-required:"true"`
}

func MustConfig() *Config {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
