// internal/config/config.go
//
// Environment-driven configuration for the server and CLI.
// A .env file in the working directory is loaded first if present; real
// environment variables always win over it.
//
// Environment variables:
//   PORT=5175                   HTTP listen port
//   LOG_LEVEL=info              zerolog level
//   DB_PATH=./data/waffle.db    board catalog
//   JWT_SECRET=...              signs session tokens
//   SESSION_TTL_HOURS=12        idle session lifetime
//   REDIS_ADDR=                 empty → in-memory sessions
//   REDIS_PASSWORD=, REDIS_DB=0
//   DAILY_SALT=local_dev_salt   daily board rotation
//   CLIENT_ORIGIN=http://localhost:5173
//   SEED_SAMPLES=true           import bundled boards on startup

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	Port          string
	LogLevel      string
	DBPath        string
	JWTSecret     string
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DailySalt     string
	ClientOrigin  string
	SeedSamples   bool
}

// Load reads .env (if any) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	return Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBPath:        getEnv("DB_PATH", "./data/waffle.db"),
		JWTSecret:     getEnv("JWT_SECRET", devSecret),
		SessionTTL:    time.Duration(getInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SeedSamples:   getBool("SEED_SAMPLES", true),
	}
}

// DevSecret reports whether the token secret was left at its default.
func (c Config) DevSecret() bool { return c.JWTSecret == devSecret }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func getBool(k string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return b
	}
	return def
}
