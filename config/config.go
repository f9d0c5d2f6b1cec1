package config

import (
	"os"
	"time"
)

type Config struct {
	Host string
	Port string

	DB DBConfig

	Callback CallbackConfig
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate string
}

// CallbackConfig is handed to the report client explicitly; handlers
// never read env at request time.
type CallbackConfig struct {
	TransactionKey string
	ConnectTimeout time.Duration
	Timeout        time.Duration
}

func Load() Config {
	return Config{
		Host: getenv("HOST", "127.0.0.1"),
		Port: getenv("PORT", "3000"),
		DB: DBConfig{
			Host:        os.Getenv("DB_HOST"),
			Port:        os.Getenv("DB_PORT"),
			User:        os.Getenv("DB_USER"),
			Password:    os.Getenv("DB_PASSWORD"),
			Name:        os.Getenv("DB_NAME"),
			SSLMode:     os.Getenv("DB_SSLMODE"),
			AutoMigrate: os.Getenv("DB_AUTO_MIGRATE"),
		},
		Callback: CallbackConfig{
			TransactionKey: os.Getenv("TRANSACTION_KEY"),
			ConnectTimeout: getduration("CALLBACK_CONNECT_TIMEOUT", 5*time.Second),
			Timeout:        getduration("CALLBACK_TIMEOUT", 10*time.Second),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
