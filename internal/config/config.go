package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	DataFile    string
	DatabaseURL string
	HistoryDir  string
	CORSOrigin  string
	SummaryTTL  time.Duration
	// Meilisearch - search falls back to in-memory scans if unreachable
	MeiliURL       string
	MeiliMasterKey string
	// Redis - empty disables the summary cache
	RedisURL string
}

func Load() Config {
	return Config{
		Addr:           getenv("API_ADDR", ":8790"),
		DataFile:       getenv("MINUTES_DATA_FILE", "./data/minutes.json"),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		HistoryDir:     getenv("MINUTES_HISTORY_DIR", ""),
		CORSOrigin:     getenv("MINUTES_CORS_ORIGIN", "*"),
		SummaryTTL:     time.Duration(getenvInt("MINUTES_SUMMARY_TTL_SECONDS", 60)) * time.Second,
		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),
		RedisURL:       getenv("REDIS_URL", ""),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
