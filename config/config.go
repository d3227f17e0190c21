package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string
	// TotalRounds of 0 lets the engine pick ceil(log2(N)) at first pairing.
	TotalRounds int
	// PairingSearchLimit bounds the backtracking pairing search (nodes).
	// 0 means the engine default.
	PairingSearchLimit int
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	rounds, err := intEnv("TOTAL_ROUNDS", 0)
	if err != nil {
		return nil, err
	}
	if rounds < 0 {
		return nil, fmt.Errorf("TOTAL_ROUNDS must not be negative, got %d", rounds)
	}

	searchLimit, err := intEnv("PAIRING_SEARCH_LIMIT", 0)
	if err != nil {
		return nil, err
	}
	if searchLimit < 0 {
		return nil, fmt.Errorf("PAIRING_SEARCH_LIMIT must not be negative, got %d", searchLimit)
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		TotalRounds:        rounds,
		PairingSearchLimit: searchLimit,
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return value, nil
}
