package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// listenAddr reports the listen address, defaulting to :8080.
func listenAddr() string {
	addr := os.Getenv("CALC_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return addr
}

// errorClearDelay reports how long a calculator error message stays on the
// display. Zero (unset or unparseable) defers to the machine default.
func errorClearDelay() time.Duration {
	raw := os.Getenv("CALC_ERROR_CLEAR_DELAY")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}
