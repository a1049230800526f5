package env

import (
	"errors"
	"fmt"
	"fortune_wheel/internal/config"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	starsBaseURLEnvName = "STARS_BASE_URL"
	starsTimeoutEnvName = "STARS_TIMEOUT"
	defaultStarsTimeout = 10 * time.Second
)

type backendConfig struct {
	baseURL string
	timeout time.Duration
}

func NewBackendConfig() (config.BackendConfig, error) {
	base := os.Getenv(starsBaseURLEnvName)
	if len(base) == 0 {
		return nil, errors.New("stars backend url not found")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid stars backend url: %w", err)
	}

	timeout := defaultStarsTimeout
	if raw := os.Getenv(starsTimeoutEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid stars timeout: %w", err)
		}
		timeout = parsed
	}

	return &backendConfig{
		baseURL: strings.TrimRight(base, "/"),
		timeout: timeout,
	}, nil
}

func (cfg *backendConfig) BaseURL() string {
	return cfg.baseURL
}

func (cfg *backendConfig) Timeout() time.Duration {
	return cfg.timeout
}
