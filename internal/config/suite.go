package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Supported drivers
const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
	DriverHTML       = "html"
)

// SuiteConfig holds the settings of a test run against a storefront
type SuiteConfig struct {
	BaseURL        string
	Driver         string
	Browser        string
	Headless       bool
	Stealth        bool
	ArtifactDir    string
	ElementTimeout time.Duration
	ProbeTimeout   time.Duration
	Concurrency    int
	LocatorCatalog string
	FixtureDir     string
	LogLevel       string
}

// LoadSuiteConfig loads the suite configuration from environment variables
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	config := &SuiteConfig{
		BaseURL:        getenv("BASE_URL"),
		Driver:         strings.ToLower(getenv("DRIVER")),
		Browser:        strings.ToLower(getenv("BROWSER")),
		Headless:       true,
		ArtifactDir:    getenv("ARTIFACT_DIR"),
		ElementTimeout: 30 * time.Second,
		ProbeTimeout:   5 * time.Second,
		Concurrency:    1,
		LocatorCatalog: getenv("LOCATOR_CATALOG"),
		FixtureDir:     getenv("FIXTURE_DIR"),
		LogLevel:       getenv("LOG_LEVEL"),
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://demo.nopcommerce.com/"
	}
	if config.Driver == "" {
		config.Driver = DriverPlaywright
	}
	if config.Browser == "" {
		config.Browser = "chromium"
	}
	if config.ArtifactDir == "" {
		config.ArtifactDir = "screenshots"
	}

	var err error
	if config.Headless, err = parseBool(getenv, "HEADLESS", config.Headless); err != nil {
		return nil, err
	}
	if config.Stealth, err = parseBool(getenv, "STEALTH", false); err != nil {
		return nil, err
	}
	if config.ElementTimeout, err = parseDuration(getenv, "ELEMENT_TIMEOUT", config.ElementTimeout); err != nil {
		return nil, err
	}
	if config.ProbeTimeout, err = parseDuration(getenv, "PROBE_TIMEOUT", config.ProbeTimeout); err != nil {
		return nil, err
	}
	if v := getenv("CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("CONCURRENCY must be a positive integer, got %q", v)
		}
		config.Concurrency = n
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that flags may have overridden after loading
func (c *SuiteConfig) Validate() error {
	switch c.Driver {
	case DriverPlaywright, DriverRod, DriverHTML:
	default:
		return fmt.Errorf("DRIVER must be one of %s, %s, %s; got %q", DriverPlaywright, DriverRod, DriverHTML, c.Driver)
	}
	if c.ProbeTimeout <= 0 || c.ElementTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.ProbeTimeout > c.ElementTimeout {
		return fmt.Errorf("PROBE_TIMEOUT (%s) cannot exceed ELEMENT_TIMEOUT (%s)", c.ProbeTimeout, c.ElementTimeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("CONCURRENCY must be a positive integer, got %d", c.Concurrency)
	}
	return nil
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
