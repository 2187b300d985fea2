package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"prospection-agent/logger"
)

// Env is a namespaced view over environment variables, e.g. Prefix("PROSPECTION_")
type Env struct{ prefix string }

// NewEnv returns a root Env with no prefix
func NewEnv() Env { return Env{} }

// Prefix returns a child Env with an additional prefix
func (e Env) Prefix(p string) Env { return Env{prefix: e.prefix + p} }

func (e Env) key(k string) string { return e.prefix + k }

func (e Env) lookup(k string) string { return strings.TrimSpace(os.Getenv(e.key(k))) }

// MayString returns the value or def if missing/empty
func (e Env) MayString(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (e Env) MayInt(key string, def int) int {
	s := e.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", e.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayFloat64 returns the value or def if missing/empty; logs and returns def if invalid
func (e Env) MayFloat64(key string, def float64) float64 {
	s := e.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", e.key(key)).Str("value", s).Float64("default", def).Msg("invalid float64; using default")
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (e Env) MayBool(key string, def bool) bool {
	s := e.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", e.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (e Env) MayDuration(key string, def time.Duration) time.Duration {
	s := e.lookup(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", e.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV splits a comma-separated value, dropping blanks; def if missing/empty
func (e Env) MayCSV(key string, def []string) []string {
	s := e.lookup(key)
	if s == "" {
		return def
	}
	out := make([]string, 0, strings.Count(s, ",")+1)
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
