package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tracehealth/trace/internal/auth/otp"
)

type Config struct {
	Issuer    string `env:"AUTH_ISSUER"    envDefault:"trace-auth"` // Issuer claim for session tokens
	Algorithm string `env:"AUTH_ALGORITHM" envDefault:"EdDSA"`      // JWT signing algorithm (RS256, ES256, EdDSA)
	RSABits   int    `env:"AUTH_RSA_BITS"`                          // RSA key size for RS256 (0: KeyManager default)
	NumKeys   int    `env:"AUTH_NUM_KEYS"`                          // Signing keys to generate (0: default 3, max 10)

	DatabaseDriver string `env:"AUTH_DATABASE_DRIVER" envDefault:"sqlite"`  // sqlite or postgres
	DatabaseFile   string `env:"AUTH_DATABASE_FILE"   envDefault:"auth.db"` // SQLite database path
	DatabaseURL    string `env:"AUTH_DATABASE_URL"`                         // Postgres DSN, required for the postgres driver
	PepperFile     string `env:"AUTH_PEPPER_FILE"     envDefault:"pepper"`  // Password hashing pepper, created if missing

	// CheckEmailDeliverability requires signup email domains to accept mail (DNS lookup).
	CheckEmailDeliverability bool `env:"AUTH_CHECK_EMAIL_DELIVERABILITY" envDefault:"true"`

	MailTransport  string        `env:"MAIL_TRANSPORT"   envDefault:"log"` // log, smtp or mailtrap
	MailFrom       string        `env:"MAIL_FROM"        envDefault:"no-reply@trace.local"`
	MailTimeout    time.Duration `env:"MAIL_TIMEOUT"     envDefault:"10s"`
	SMTPHost       string        `env:"SMTP_HOST"        envDefault:"smtp.gmail.com"`
	SMTPPort       int           `env:"SMTP_PORT"        envDefault:"587"`
	SMTPUsername   string        `env:"SMTP_USERNAME"`
	SMTPPassword   string        `env:"SMTP_PASSWORD"`
	MailtrapAPIURL string        `env:"MAILTRAP_API_URL"`
	MailtrapAPIKey string        `env:"MAILTRAP_API_KEY"`

	PendingRecordTTL     time.Duration `env:"PENDING_RECORD_TTL"    envDefault:"24h"` // Age at which unconfirmed OTP records are swept
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	SentryDSN string `env:"SENTRY_DSN"` // Error reporting, disabled when empty

	Env                 string        `env:"ENV"                   envDefault:"dev"`  // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"` // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"` // json, text
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the application can't start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_FILE is required for the sqlite driver"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.MailTransport {
	case "log":
	case "smtp":
		if c.SMTPHost == "" || c.MailFrom == "" {
			errs = append(errs, errors.New("SMTP_HOST and MAIL_FROM are required for the smtp transport"))
		}
	case "mailtrap":
		if c.MailtrapAPIKey == "" || c.MailFrom == "" {
			errs = append(errs, errors.New("MAILTRAP_API_KEY and MAIL_FROM are required for the mailtrap transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport))
	}

	if c.PepperFile == "" {
		errs = append(errs, errors.New("AUTH_PEPPER_FILE is required"))
	}
	if c.PendingRecordTTL > 0 && c.PendingRecordTTL < otp.Validity {
		errs = append(errs, fmt.Errorf("PENDING_RECORD_TTL must be at least %s", otp.Validity))
	}

	return errors.Join(errs...)
}
