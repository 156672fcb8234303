package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/moneyops/transaction-manager/internal/logger"
)

const (
	defaultConnectionString = "Host=localhost;Port=5432;Database=transaction_manager_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
	defaultPort             = "8080"
	defaultExchangeAPIURL   = "https://v6.exchangerate-api.com/v6"
	defaultExchangeTimeout  = 10 * time.Second
	defaultChannelID        = "transaction-manager"
)

type Config struct {
	Port               string
	DatabaseDSN        string
	MigrationsDir      string
	ExchangeAPIURL     string
	ExchangeAPIKey     string
	ExchangeAPITimeout time.Duration
	ChannelID          string
	ChannelKeyHash     string
}

func Load() (Config, error) {
	// A .env file is optional; production relies on real env vars.
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on environment variables", nil)
	}

	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}

	exchangeURL := strings.TrimSpace(os.Getenv("EXCHANGE_API_URL"))
	if exchangeURL == "" {
		exchangeURL = defaultExchangeAPIURL
	}

	exchangeTimeout := defaultExchangeTimeout
	if raw := strings.TrimSpace(os.Getenv("EXCHANGE_API_TIMEOUT_SECONDS")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			exchangeTimeout = time.Duration(seconds) * time.Second
		}
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	return Config{
		Port:               port,
		DatabaseDSN:        normalizeConnectionString(conn),
		MigrationsDir:      "migrations",
		ExchangeAPIURL:     exchangeURL,
		ExchangeAPIKey:     strings.TrimSpace(os.Getenv("EXCHANGE_API_KEY")),
		ExchangeAPITimeout: exchangeTimeout,
		ChannelID:          channelID,
		ChannelKeyHash:     strings.TrimSpace(os.Getenv("CHANNEL_KEY_HASH")),
	}, nil
}

// normalizeConnectionString accepts both libpq keyword DSNs and the
// semicolon-separated "Host=...;Port=..." form and emits a libpq DSN.
func normalizeConnectionString(raw string) string {
	if !strings.Contains(raw, ";") && !strings.Contains(raw, "=") {
		// Probably a postgres:// URL; lib/pq accepts those as-is.
		return raw
	}
	if !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
