// Package config reads server settings from flags with environment fallbacks.
package config

import (
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds the server settings.
type Config struct {
	Addr            string
	LogLevel        slog.Level
	TokenSecret     []byte
	TokenTTL        time.Duration
	Heartbeat       time.Duration
	ShutdownTimeout time.Duration
}

// Environment variables consulted when a flag is not given.
const (
	EnvAddr        = "TTT_ADDR"
	EnvLogLevel    = "TTT_LOG_LEVEL"
	EnvTokenSecret = "TTT_TOKEN_SECRET"
	EnvHeartbeat   = "TTT_HEARTBEAT"
)

// Load parses args (without the program name). getenv may be nil.
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	fs := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
	addr := fs.String("addr", env(EnvAddr, ":8080"), "listen address")
	levelStr := fs.String("log-level", env(EnvLogLevel, "info"), "debug|info|warn|error")
	secret := fs.String("token-secret", env(EnvTokenSecret, ""), "HMAC secret for player cookies (random if empty)")
	ttl := fs.Duration("token-ttl", 24*time.Hour, "player cookie lifetime")
	heartbeat := fs.String("heartbeat", env(EnvHeartbeat, "15s"), "SSE/websocket keepalive interval")
	shutdown := fs.Duration("shutdown-timeout", 5*time.Second, "graceful shutdown timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{Addr: *addr, TokenTTL: *ttl, ShutdownTimeout: *shutdown}

	lvl, err := ParseLevel(*levelStr)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = lvl

	hb, err := time.ParseDuration(*heartbeat)
	if err != nil {
		return Config{}, fmt.Errorf("heartbeat: %w", err)
	}
	if hb <= 0 {
		return Config{}, errors.New("heartbeat must be positive")
	}
	cfg.Heartbeat = hb

	if *secret != "" {
		cfg.TokenSecret = []byte(*secret)
	} else {
		cfg.TokenSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.TokenSecret); err != nil {
			return Config{}, fmt.Errorf("generate token secret: %w", err)
		}
	}
	return cfg, nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
