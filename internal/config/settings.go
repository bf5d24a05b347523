package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Settings are the non-database knobs read from the environment.
type Settings struct {
	ServerAddr     string
	JWTSecret      string
	AllowedOrigins string
	LogFile        string
	LogLevel       string
	LogMaxSizeMB   int
	LogMaxBackups  int
	LogMaxAgeDays  int
	DefaultVATRate decimal.Decimal
	InvoiceSuffix  string
}

// LoadSettings reads Settings from the environment and a .env file in the
// working directory, falling back to defaults for anything unset or
// unparsable. Variables already set in the environment win over .env.
func LoadSettings() Settings {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, relying on env vars")
	}

	s := Settings{
		ServerAddr:     getEnv("SERVER_ADDR", "0.0.0.0:8080"),
		JWTSecret:      getEnv("JWT_SECRET", "supersecret"),
		AllowedOrigins: getEnv("CORS_ORIGINS", "*"),
		LogFile:        getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:       getEnv("LOG_LEVEL", "debug"),
		LogMaxSizeMB:   getEnvInt("LOG_MAX_SIZE", 10),
		LogMaxBackups:  getEnvInt("LOG_MAX_BACKUPS", 7),
		LogMaxAgeDays:  getEnvInt("LOG_MAX_AGE", 7),
		DefaultVATRate: decimal.NewFromInt(20),
		InvoiceSuffix:  getEnv("INVOICE_SUFFIX", "crown"),
	}
	if raw, ok := os.LookupEnv("DEFAULT_VAT_RATE"); ok {
		rate, err := decimal.NewFromString(raw)
		if err != nil || rate.IsNegative() {
			logrus.WithField("value", raw).Warn("ignoring invalid DEFAULT_VAT_RATE")
		} else {
			s.DefaultVATRate = rate
		}
	}
	return s
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// getEnvInt is getEnv for integers.
func getEnvInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
