package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Addr        string
	DBPath      string
	Secret      string // signs round tokens and picks the daily species
	PokeAPIBase string
	TCGBase     string
	LogLevel    string
	DefaultLang string
	HintLetter  int // wrong-guess thresholds per hint level
	HintColor   int
	HintGen     int
	HintSil     int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:        envOr("ADDR", ":8080"),
		DBPath:      envOr("DB_PATH", "./data/pokeguess.db"),
		Secret:      envOr("APP_SECRET", "dev-secret-change-me"),
		PokeAPIBase: envOr("POKEAPI_BASE", ""),
		TCGBase:     envOr("TCG_BASE", ""),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		DefaultLang: envOr("DEFAULT_LANG", "en"),
		HintLetter:  envIntOr("HINT_LETTER_AFTER", 3),
		HintColor:   envIntOr("HINT_COLOR_AFTER", 5),
		HintGen:     envIntOr("HINT_GEN_AFTER", 7),
		HintSil:     envIntOr("HINT_SILHOUETTE_AFTER", 10),
	}
}

// Thresholds returns the wrong-guess counts that unlock each hint level, in
// ladder order.
func (c Config) Thresholds() [4]int {
	return [4]int{c.HintLetter, c.HintColor, c.HintGen, c.HintSil}
}

// Validate reports configuration errors all at once.
func (c Config) Validate() error {
	var errs []string
	if c.Addr == "" {
		errs = append(errs, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		errs = append(errs, "DB_PATH cannot be empty")
	}
	if c.Secret == "" {
		errs = append(errs, "APP_SECRET cannot be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "LOG_LEVEL must be one of debug, info, warn, error")
	}
	prev := 0
	for _, th := range c.Thresholds() {
		if th <= prev {
			errs = append(errs, "HINT_* thresholds must be strictly increasing and positive")
			break
		}
		prev = th
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid integer env value")
	}
	return def
}
