package telemetry

import (
	"fmt"
	"strings"
	"time"
)

const (
	envEndpoint    = "TINCT_OTEL_ENDPOINT"
	envInsecure    = "TINCT_OTEL_INSECURE"
	envService     = "TINCT_OTEL_SERVICE"
	envDialTimeout = "TINCT_OTEL_DIAL_TIMEOUT"
	envHeaders     = "TINCT_OTEL_HEADERS"
)

const defaultServiceName = "tinct"

type Config struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
	Version     string
	DialTimeout time.Duration
	Headers     map[string]string
}

// Enabled reports whether spans should leave the process.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// ConfigFromEnv builds a Config from the TINCT_OTEL_* variables via the
// provided lookup (usually os.Getenv). Malformed optional values are
// ignored rather than fatal.
func ConfigFromEnv(getenv func(string) string) Config {
	if getenv == nil {
		return Config{ServiceName: defaultServiceName}
	}

	cfg := Config{
		Endpoint:    strings.TrimSpace(getenv(envEndpoint)),
		ServiceName: strings.TrimSpace(getenv(envService)),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	switch strings.ToLower(strings.TrimSpace(getenv(envInsecure))) {
	case "1", "true", "yes", "on":
		cfg.Insecure = true
	}

	if raw := strings.TrimSpace(getenv(envDialTimeout)); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.DialTimeout = d
		}
	}

	if headers, err := ParseHeaders(getenv(envHeaders)); err == nil {
		cfg.Headers = headers
	}

	return cfg
}

// ParseHeaders splits "k1=v1, k2=v2" into a header map. An empty input
// yields nil.
func ParseHeaders(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid header %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid header %q: empty key", pair)
		}
		headers[key] = strings.TrimSpace(value)
	}
	if len(headers) == 0 {
		return nil, nil
	}
	return headers, nil
}
