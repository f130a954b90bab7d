// Package config loads gateway configuration from config.yaml with an
// environment-variable overlay. Secrets and remote addresses are never
// hardcoded; API keys support ${VAR} substitution so the YAML file can stay
// checked in.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Downstream DownstreamConfig `koanf:"downstream"`
	Routing    RoutingConfig    `koanf:"routing"`
	Answers    AnswersConfig    `koanf:"answers"`
	News       NewsConfig       `koanf:"news"`
	Storage    StorageConfig    `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// DownstreamConfig governs every outbound call the gateway makes.
type DownstreamConfig struct {
	// BaseURL is the ML inference sidecar. Routing, answers and news
	// targets are absolute URLs and bypass it.
	BaseURL string `koanf:"base_url"`
	// TimeoutMS bounds each downstream attempt.
	TimeoutMS int `koanf:"timeout_ms"`
	// Retries is the extra-attempt budget for unreachable targets only.
	Retries int `koanf:"retries"`
}

// Timeout returns the per-call timeout as a duration.
func (d DownstreamConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMS) * time.Millisecond
}

type RoutingConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Profile string `koanf:"profile"`
	// Destination is the fixed point of interest routes are computed to
	// (the deployment's nearest assistance center).
	Destination Point `koanf:"destination"`
}

type Point struct {
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
}

type AnswersConfig struct {
	BaseURL         string `koanf:"base_url"`
	APIKey          string `koanf:"api_key"`
	Model           string `koanf:"model"`
	MaxOutputTokens int    `koanf:"max_output_tokens"`
}

type NewsConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Country string `koanf:"country"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // memory, sqlite
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads config.yaml (optional) and then the GATEWAY_* environment, with
// environment values overriding the file. Double underscores separate nesting
// levels: GATEWAY_ROUTING__API_KEY sets routing.api_key.
func Load() (*Config, error) {
	return LoadFile("config.yaml")
}

// LoadFile is Load with an explicit file path.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		// A missing file is fine; the environment can carry everything.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	defaults := map[string]any{
		"server.port":               8080,
		"downstream.timeout_ms":     15000,
		"downstream.retries":        1,
		"routing.profile":           "foot",
		"answers.model":             "gemini-1.5-flash",
		"answers.max_output_tokens": 200,
		"news.country":              "in",
		"storage.type":              "memory",
		"storage.sqlite.path":       "./data/gateway.db",
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.Routing.APIKey = substituteEnvVars(cfg.Routing.APIKey)
	cfg.Answers.APIKey = substituteEnvVars(cfg.Answers.APIKey)
	cfg.News.APIKey = substituteEnvVars(cfg.News.APIKey)

	return &cfg, nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
