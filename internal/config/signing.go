package config

import (
	"fmt"
	"os"
	"time"
)

// EnvSigningRedirectDelay overrides the post-verification redirect delay.
const EnvSigningRedirectDelay = "CARESIGN_SIGNING_REDIRECT_DELAY"

// SigningConfig contains consent-flow tuning parameters.
type SigningConfig struct {
	// RedirectDelay is how long the client holds the verified state
	// before navigating to the document page.
	RedirectDelay string `toml:"redirect_delay"`
}

// RedirectDelayDuration parses and returns the redirect delay as a time.Duration.
func (c *SigningConfig) RedirectDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.RedirectDelay)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the signing configuration.
func (c *SigningConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SigningConfig) Merge(overlay *SigningConfig) {
	if overlay.RedirectDelay != "" {
		c.RedirectDelay = overlay.RedirectDelay
	}
}

func (c *SigningConfig) loadDefaults() {
	if c.RedirectDelay == "" {
		c.RedirectDelay = "2s"
	}
}

func (c *SigningConfig) loadEnv() {
	if v := os.Getenv(EnvSigningRedirectDelay); v != "" {
		c.RedirectDelay = v
	}
}

func (c *SigningConfig) validate() error {
	if _, err := time.ParseDuration(c.RedirectDelay); err != nil {
		return fmt.Errorf("invalid redirect_delay: %w", err)
	}
	return nil
}
