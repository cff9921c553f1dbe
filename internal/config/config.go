// Package config holds the runtime settings shared by the commands.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr         string
	AllowOrigins string
	DataDir      string
	LogFile      string
	Verbose      bool
	ClockTime    time.Duration
	SSHAddr      string
	HostKeyFile  string
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		LogFile:      "logs/latest.log",
		ClockTime:    600 * time.Second,
		SSHAddr:      ":2222",
	}
}

// Load starts from Default and applies CHESS_* environment overrides.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup("CHESS_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := lookup("CHESS_ALLOW_ORIGINS"); ok {
		if err := checkOrigins(v); err != nil {
			return Config{}, fmt.Errorf("CHESS_ALLOW_ORIGINS: %w", err)
		}
		cfg.AllowOrigins = v
	}
	if v, ok := lookup("CHESS_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := lookup("CHESS_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup("CHESS_SSH_ADDR"); ok {
		cfg.SSHAddr = v
	}
	if v, ok := lookup("CHESS_HOST_KEY"); ok {
		cfg.HostKeyFile = v
	}
	if v, ok := lookup("CHESS_VERBOSE"); ok {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHESS_VERBOSE: %w", err)
		}
		cfg.Verbose = verbose
	}
	if v, ok := lookup("CHESS_CLOCK_SECONDS"); ok {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHESS_CLOCK_SECONDS: %w", err)
		}
		if seconds <= 0 {
			return Config{}, fmt.Errorf("CHESS_CLOCK_SECONDS must be positive, got %d", seconds)
		}
		cfg.ClockTime = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

// Origins splits the comma separated AllowOrigins list.
func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// checkOrigins rejects the wildcard, which cors refuses alongside
// credentials.
func checkOrigins(v string) error {
	origins := Config{AllowOrigins: v}.Origins()
	if len(origins) == 0 {
		return fmt.Errorf("no origins given")
	}
	for _, origin := range origins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin is not allowed with credentialed requests")
		}
	}
	return nil
}
