package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// GlobalConfig holds every runtime setting of the consult service. All values
// come from the environment; a .env file is honored for local runs.
type GlobalConfig struct {
	LogLevel string
	Host     string
	Port     string

	DBHost     string
	DBPort     int32
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret  string
	GatewayKey string

	// Base URL of the external advisor/user directory service.
	DirectoryAddr string

	// Optional AMQP broker for the audit feed; empty disables publishing.
	RabbitURL string
}

// NewConfig loads and validates configuration from the environment.
func NewConfig() (GlobalConfig, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	host := os.Getenv("HOST")
	if host == "" {
		return GlobalConfig{}, fmt.Errorf("HOST environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		return GlobalConfig{}, fmt.Errorf("PORT environment variable is required")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		return GlobalConfig{}, fmt.Errorf("LOG_LEVEL environment variable is required")
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return GlobalConfig{}, fmt.Errorf("DB_HOST environment variable is required")
	}

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return GlobalConfig{}, fmt.Errorf("DB_PORT environment variable is required")
	}
	dbPort, err := strconv.ParseInt(dbPortStr, 10, 32)
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("DB_PORT must be a valid integer: %w", err)
	}

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return GlobalConfig{}, fmt.Errorf("DB_USER environment variable is required")
	}

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return GlobalConfig{}, fmt.Errorf("DB_PASSWORD environment variable is required")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return GlobalConfig{}, fmt.Errorf("DB_NAME environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return GlobalConfig{}, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	gatewayKey := os.Getenv("GATEWAY_KEY")
	if gatewayKey == "" {
		return GlobalConfig{}, fmt.Errorf("GATEWAY_KEY environment variable is required")
	}

	directoryAddr := os.Getenv("DIRECTORY_SERVICE_ADDR")
	if directoryAddr == "" {
		return GlobalConfig{}, fmt.Errorf("DIRECTORY_SERVICE_ADDR environment variable is required")
	}

	// Optional: the audit feed is disabled when no broker is configured.
	rabbitURL := os.Getenv("RABBITMQ_URL")

	return GlobalConfig{
		LogLevel:      logLevel,
		Host:          host,
		Port:          port,
		DBHost:        dbHost,
		DBPort:        int32(dbPort),
		DBUser:        dbUser,
		DBPassword:    dbPassword,
		DBName:        dbName,
		JWTSecret:     jwtSecret,
		GatewayKey:    gatewayKey,
		DirectoryAddr: directoryAddr,
		RabbitURL:     rabbitURL,
	}, nil
}

func (c *GlobalConfig) GetHost() string { return c.Host }
func (c *GlobalConfig) GetPort() string { return c.Port }
