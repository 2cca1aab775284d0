package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr             string
	DatabaseURL      string
	RedisURL         string
	KafkaBrokers     []string
	SnapshotCacheTTL time.Duration
	RequestTimeout   time.Duration
}

// FromEnv builds a Server config from environment variables.
//
// An empty DATABASE_URL selects the in-memory store seeded with a demo board,
// which keeps local development dependency-free. REDIS_URL and KAFKA_BROKERS
// are optional; leaving them unset disables the snapshot cache and the viewed
// event stream respectively.
func FromEnv() Server {
	addr := os.Getenv("OPENBOARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cacheTTL := 30 * time.Second
	if raw := os.Getenv("SNAPSHOT_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cacheTTL = d
		}
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:             addr,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		KafkaBrokers:     brokers,
		SnapshotCacheTTL: cacheTTL,
		RequestTimeout:   30 * time.Second,
	}
}
