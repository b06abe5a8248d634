package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// RelayConfig carries the relay loop tuning knobs.
type RelayConfig struct {
	PollInterval time.Duration
	JoinTimeout  time.Duration
}

func GetRelayConfig() (*RelayConfig, error) {
	pollMs := 100
	if raw := os.Getenv("RELAY_POLL_MS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("failed to parse RELAY_POLL_MS")
		}
		pollMs = parsed
	}
	joinSeconds := 5
	if raw := os.Getenv("RELAY_JOIN_TIMEOUT_S"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("failed to parse RELAY_JOIN_TIMEOUT_S")
		}
		joinSeconds = parsed
	}

	return &RelayConfig{
		PollInterval: time.Duration(pollMs) * time.Millisecond,
		JoinTimeout:  time.Duration(joinSeconds) * time.Second,
	}, nil
}
