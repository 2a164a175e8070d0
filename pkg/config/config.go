package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultMailPort = 587

// Config is everything the exporter needs from the environment, read once at
// startup and passed down explicitly.
type Config struct {
	StripeKey string

	MailFrom     string
	MailTo       []string
	MailServer   string
	MailPort     int
	MailUser     string
	MailPassword string
}

// FromEnv builds the config and reports every missing variable at once, so a
// broken deployment fails on startup instead of halfway through the export.
func FromEnv() (*Config, error) {
	missing := []string{}
	lookup := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		StripeKey:    lookup("STRIPE_KEY"),
		MailFrom:     lookup("MAIL_FROM"),
		MailServer:   lookup("MAIL_SERVER"),
		MailUser:     lookup("MAIL_USER"),
		MailPassword: lookup("MAIL_PASSWORD"),
		MailPort:     defaultMailPort,
	}

	for _, addr := range strings.Split(os.Getenv("MAIL_TO"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			cfg.MailTo = append(cfg.MailTo, addr)
		}
	}
	// judged after parsing, so MAIL_TO="," is as missing as an unset var
	if len(cfg.MailTo) == 0 {
		missing = append(missing, "MAIL_TO")
	}

	if port := os.Getenv("MAIL_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("MAIL_PORT is not a number: %q", port)
		}
		cfg.MailPort = p
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
