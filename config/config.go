package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL       string        `envconfig:"DATABASE_URL"         required:"true"`
	HTTPPort          string        `envconfig:"HTTP_PORT"            default:":8081"`
	GrpcPort          string        `envconfig:"GRPC_PORT"            default:":50051"` // gRPC health endpoint
	LogLevel          string        `envconfig:"LOG_LEVEL"            default:"info"`
	GinMode           string        `envconfig:"GIN_MODE"             default:"release"`
	RunMigrations     bool          `envconfig:"RUN_MIGRATIONS"       default:"true"`
	SeedDemoData      bool          `envconfig:"SEED_DEMO_DATA"       default:"true"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS"    default:"10"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS"    default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT"     default:"10s"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		config, err = process()
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, LogLevel=%s, Migrations=%t, Seed=%t",
			config.HTTPPort, config.GrpcPort, config.LogLevel, config.RunMigrations, config.SeedDemoData)
		logger.Info("Configuration loaded: DatabaseURL is set")
	})
	return &config
}

func GetConfig() *Config {
	if config.HTTPPort == "" || config.DatabaseURL == "" {
		log.Fatal("Configuration not loaded. Call LoadConfig first.")
	}
	return &config
}

func process() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if c.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.DBMaxOpenConns < 1 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	if c.DBMaxIdleConns > c.DBMaxOpenConns {
		c.DBMaxIdleConns = c.DBMaxOpenConns
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return c, nil
}
