package main

import (
	"log"
	"os"
)

// Config holds all configuration for the worker.
type Config struct {
	RedisAddr  string
	SMTPHost   string
	SMTPPort   string
	EmailFrom  string
	AdminEmail string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:  getEnv("REDIS_HOST", "localhost:6379"),
		SMTPHost:   getEnv("SMTP_HOST", "localhost"),
		SMTPPort:   getEnv("SMTP_PORT", "1025"),
		EmailFrom:  getEnv("EMAIL_FROM", "noreply@storefront.dev"),
		AdminEmail: getEnv("ADMIN_EMAIL", ""),
	}

	log.Printf("[Config] Redis: %s, SMTP: %s:%s",
		cfg.RedisAddr, cfg.SMTPHost, cfg.SMTPPort)

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
