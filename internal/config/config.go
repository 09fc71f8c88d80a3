package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Device    DeviceConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	Name    string
	SSLMode string
	DSN     string
}

type JWTConfig struct {
	SecretKey            string
	AccessTokenExpiresIn time.Duration
}

// DeviceConfig is the default target for lock commands: the network-attached
// device controller the dispatcher is seeded with at startup.
type DeviceConfig struct {
	Host    string
	Port    int
	APIKey  string
	UseTLS  bool
	Timeout time.Duration
}

// RateLimitConfig bounds how fast commands may be fired at the device.
type RateLimitConfig struct {
	CommandsPerSecond float64
	Burst             int
}

func LoadConfig() (*Config, error) {
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %v", err)
	}

	dBConfig := DBConfig{
		Host:    getEnv("DB_HOST", "localhost"),
		Port:    dbPort,
		User:    os.Getenv("DB_USER"),
		Pass:    os.Getenv("DB_PASS"),
		Name:    os.Getenv("DB_NAME"),
		SSLMode: getEnv("DB_SSLMODE", "disable"),
	}
	dBConfig.DSN = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dBConfig.Host, dBConfig.Port, dBConfig.User, dBConfig.Pass, dBConfig.Name, dBConfig.SSLMode,
	)

	serverConfig := ServerConfig{
		Port:         getEnv("SERVER_PORT", "8080"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	jwtExpiresIn, err := getEnvInt("JWT_EXPIRES_IN_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN_MINUTES: %v", err)
	}
	jwtConfig := JWTConfig{
		SecretKey:            jwtSecret,
		AccessTokenExpiresIn: time.Duration(jwtExpiresIn) * time.Minute,
	}

	devicePort, err := getEnvInt("DEVICE_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_PORT: %v", err)
	}
	deviceTimeoutMs, err := getEnvInt("DEVICE_TIMEOUT_MS", 10000)
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_TIMEOUT_MS: %v", err)
	}
	deviceUseTLS, err := getEnvBool("DEVICE_USE_TLS", false)
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_USE_TLS: %v", err)
	}
	deviceConfig := DeviceConfig{
		Host:    getEnv("DEVICE_HOST", "localhost"),
		Port:    devicePort,
		APIKey:  os.Getenv("DEVICE_API_KEY"),
		UseTLS:  deviceUseTLS,
		Timeout: time.Duration(deviceTimeoutMs) * time.Millisecond,
	}

	commandsPerSecond, err := getEnvFloat("RATE_LIMIT_COMMANDS_PER_SECOND", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_COMMANDS_PER_SECOND: %v", err)
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %v", err)
	}
	rateLimitConfig := RateLimitConfig{
		CommandsPerSecond: commandsPerSecond,
		Burst:             burst,
	}

	return &Config{
		Server:    serverConfig,
		DB:        dBConfig,
		JWT:       jwtConfig,
		Device:    deviceConfig,
		RateLimit: rateLimitConfig,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
