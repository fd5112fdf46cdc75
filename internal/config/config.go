package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

const defaultHTTPAddr = ":8080"
const defaultChannelID = "LedgerApp"
const defaultChannelKey = "LedgerKey001"
const defaultDailyLimit = "1000.00"
const defaultMonthlyLimit = "20000.00"
const defaultSavingsRate = "0.025"
const defaultCheckingRate = "0.001"

type Config struct {
	// DatabaseDSN empty means the server runs on in-memory repositories.
	DatabaseDSN   string
	MigrationsDir string
	HTTPAddr      string
	ChannelID     string
	ChannelKey    string

	DefaultDailyLimit   decimal.Decimal
	DefaultMonthlyLimit decimal.Decimal
	SavingsRate         decimal.Decimal
	CheckingRate        decimal.Decimal
}

func Load() (Config, error) {
	cfg := Config{
		DatabaseDSN:   strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		MigrationsDir: filepath.Join("migrations"),
		HTTPAddr:      envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		ChannelID:     envOrDefault("CHANNEL_ID", defaultChannelID),
		ChannelKey:    envOrDefault("CHANNEL_KEY", defaultChannelKey),
	}

	if cfg.DatabaseDSN != "" {
		cfg.DatabaseDSN = normalizeConnectionString(cfg.DatabaseDSN)
	}

	var err error
	if cfg.DefaultDailyLimit, err = decimalEnv("DEFAULT_DAILY_LIMIT", defaultDailyLimit); err != nil {
		return Config{}, err
	}
	if cfg.DefaultMonthlyLimit, err = decimalEnv("DEFAULT_MONTHLY_LIMIT", defaultMonthlyLimit); err != nil {
		return Config{}, err
	}
	if cfg.SavingsRate, err = decimalEnv("SAVINGS_INTEREST_RATE", defaultSavingsRate); err != nil {
		return Config{}, err
	}
	if cfg.CheckingRate, err = decimalEnv("CHECKING_INTEREST_RATE", defaultCheckingRate); err != nil {
		return Config{}, err
	}

	if cfg.DefaultDailyLimit.GreaterThan(cfg.DefaultMonthlyLimit) {
		return Config{}, fmt.Errorf("default daily limit cannot exceed default monthly limit")
	}

	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func decimalEnv(name, fallback string) (decimal.Decimal, error) {
	raw := envOrDefault(name, fallback)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s: %w", name, err)
	}
	return value, nil
}

// normalizeConnectionString accepts both libpq keyword DSNs and
// semicolon-delimited connection strings and rewrites the latter into
// libpq form, defaulting sslmode to disable.
func normalizeConnectionString(raw string) string {
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
