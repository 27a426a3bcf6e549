package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Beans   BeansConfig
	Inspect InspectConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | console; empty picks by App.Env
}

// BeansConfig says where bean definitions come from.
type BeansConfig struct {
	Definitions     []string // YAML definition files
	ScanPackages    []string // base packages for component scanning
	SingletonPolicy string   // serialize | redundant
	Eager           bool     // build every singleton at boot
}

type InspectConfig struct {
	Addr string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Variables already set in the process environment win over the files.
//
//	cfg := config.Load()
//	cfg := config.Load("testdata/app.env")
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "go-beans"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", false),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", ""),
		},
		Beans: BeansConfig{
			Definitions:     GetList("BEANS_DEFINITIONS"),
			ScanPackages:    GetList("BEANS_SCAN"),
			SingletonPolicy: env("BEANS_SINGLETON_POLICY", "serialize"),
			Eager:           envBool("BEANS_EAGER", false),
		},
		Inspect: InspectConfig{
			Addr: env("INSPECT_ADDR", ":8089"),
		},
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// GetList splits a comma-separated env value, dropping blanks.
func GetList(key string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
