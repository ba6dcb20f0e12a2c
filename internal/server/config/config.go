// Package config handles configuration for the development server,
// including defaults and command-line flags.
package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/itemdesk/internal/flagx"
)

// Config holds runtime settings for the ItemDesk development server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the
//     default outside local development.
//   - AccessTokenValidityDuration: access token lifetime.
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
}

// LoadDefaults populates Config with development defaults matching the
// client's default base URL.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8000"
	c.SecretKey = "dev-secret-key"
	c.AccessTokenValidityDuration = 30 * time.Minute
}

// LoadConfig builds a Config by applying defaults and overlaying values
// from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address (default from Config)
//	-s string   JWT signing secret (default from Config)
//	-e int      access token validity in minutes (default from Config)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-e"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to bind")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT signing secret")
	expiry := fs.Int("e", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenValidityDuration = time.Duration(*expiry) * time.Minute
}
