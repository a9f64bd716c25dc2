package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvFile is the dotenv file Load reads from the working directory.
	EnvFile = ".env"

	// PathEnv names the variable holding an optional JSON config file path.
	PathEnv = "TETRIS_CONFIG"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the server and frontend settings.
type Config struct {
	Addr         string
	HostKeyPath  string
	TickInterval time.Duration
	MaxPlayers   int
}

// jsonConfig is the on-disk JSON format. Zero fields keep their defaults.
type jsonConfig struct {
	Addr       string `json:"addr"`
	HostKey    string `json:"host_key"`
	TickMS     int    `json:"tick_ms"`
	MaxPlayers int    `json:"max_players"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:         ":2222",
		HostKeyPath:  "host_key",
		TickInterval: 100 * time.Millisecond,
		MaxPlayers:   32,
	}
}

// Load builds the config from defaults, then the JSON file at path (skipped
// when path is empty), then environment variables. Variables missing from
// the process environment are looked up in EnvFile if it exists.
func Load(path string) (*Config, error) {
	return load(EnvFile, path)
}

func load(envPath, jsonPath string) (*Config, error) {
	cfg := Default()

	dotenv, err := godotenv.Read(envPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", envPath, err)
		}
		dotenv = map[string]string{}
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}

	if jsonPath != "" {
		if err := cfg.loadJSON(jsonPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config JSON: %w", err)
	}

	if jc.Addr != "" {
		c.Addr = jc.Addr
	}
	if jc.HostKey != "" {
		c.HostKeyPath = jc.HostKey
	}
	if jc.TickMS != 0 {
		c.TickInterval = time.Duration(jc.TickMS) * time.Millisecond
	}
	if jc.MaxPlayers != 0 {
		c.MaxPlayers = jc.MaxPlayers
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) string) error {
	if port := lookup("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if addr := lookup("TETRIS_ADDR"); addr != "" {
		c.Addr = addr
	}
	if key := lookup("TETRIS_HOST_KEY"); key != "" {
		c.HostKeyPath = key
	}
	if v := lookup("TETRIS_TICK_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TETRIS_TICK_MS: %w", err)
		}
		c.TickInterval = time.Duration(ms) * time.Millisecond
	}
	if v := lookup("TETRIS_MAX_PLAYERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TETRIS_MAX_PLAYERS: %w", err)
		}
		c.MaxPlayers = n
	}
	return nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalid)
	case c.HostKeyPath == "":
		return fmt.Errorf("%w: empty host key path", ErrInvalid)
	case c.TickInterval < time.Millisecond:
		return fmt.Errorf("%w: tick interval %v below 1ms", ErrInvalid, c.TickInterval)
	case c.MaxPlayers < 1:
		return fmt.Errorf("%w: max players %d", ErrInvalid, c.MaxPlayers)
	}
	return nil
}
