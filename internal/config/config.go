package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	dotenv "github.com/aidanlogic/aidanlogic/internal/config/env"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development" validate:"oneof=development production test"`
	Port           string   `env:"API_PORT" envDefault:"8080" validate:"required,numeric"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	// Proxies whose X-Forwarded-For / X-Real-IP headers are believed
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," validate:"dive,cidr|ip"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Cloudflare Turnstile
	TurnstileSecretKey string        `env:"TURNSTILE_SECRET_KEY" validate:"required"`
	TurnstileVerifyURL string        `env:"TURNSTILE_VERIFY_URL" envDefault:"https://challenges.cloudflare.com/turnstile/v0/siteverify" validate:"required,url"`
	TurnstileTimeout   time.Duration `env:"TURNSTILE_TIMEOUT" envDefault:"10s" validate:"gt=0"`

	// Formspree
	FormspreeFormID  string        `env:"FORMSPREE_FORM_ID" validate:"required"`
	FormspreeBaseURL string        `env:"FORMSPREE_BASE_URL" envDefault:"https://formspree.io" validate:"required,url"`
	FormspreeTimeout time.Duration `env:"FORMSPREE_TIMEOUT" envDefault:"10s" validate:"gt=0"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"aidanlogic-api" validate:"required"`

	// The frontend deployment historically shipped the form ID under this name.
	legacyFormID string
}

// legacyFormIDVar is read when FORMSPREE_FORM_ID is unset
const legacyFormIDVar = "FORMSPEE_FORM_ID"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their environment variable name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("env"), ",")[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	dotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.legacyFormID = os.Getenv(legacyFormIDVar)

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.FormspreeBaseURL = strings.TrimRight(c.FormspreeBaseURL, "/")

	if c.FormspreeFormID == "" {
		c.FormspreeFormID = c.legacyFormID
	}

	c.AllowedOrigins = cleanList(c.AllowedOrigins)
	c.TrustedProxies = cleanList(c.TrustedProxies)

	if c.LogFile == "" {
		if c.IsProduction() {
			c.LogFile = "/app/logs/api.log"
		} else {
			c.LogFile = "./logs/api.log"
		}
	}
}

// Validate checks the loaded values and reports every offending variable at once
func (c *Config) Validate() error {
	var msgs []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate config: %w", err)
		}
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
			case "oneof":
				msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
			default:
				msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
			}
		}
	}

	for _, origin := range c.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			msgs = append(msgs, fmt.Sprintf("ALLOWED_ORIGINS entry %q must start with http:// or https://", origin))
		}
	}

	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// FormspreeEndpoint returns the form submission URL for the configured form
func (c *Config) FormspreeEndpoint() string {
	return c.FormspreeBaseURL + "/f/" + c.FormspreeFormID
}

// Redacted returns the configuration as printable pairs with secrets masked
func (c *Config) Redacted() [][2]string {
	return [][2]string{
		{"ENV", c.Environment},
		{"API_PORT", c.Port},
		{"ALLOWED_ORIGINS", strings.Join(c.AllowedOrigins, ",")},
		{"TRUSTED_PROXIES", strings.Join(c.TrustedProxies, ",")},
		{"LOG_LEVEL", c.LogLevel},
		{"LOG_FILE", c.LogFile},
		{"LOG_REQUESTS", fmt.Sprintf("%t", c.LogRequests)},
		{"TURNSTILE_SECRET_KEY", mask(c.TurnstileSecretKey)},
		{"TURNSTILE_VERIFY_URL", c.TurnstileVerifyURL},
		{"TURNSTILE_TIMEOUT", c.TurnstileTimeout.String()},
		{"FORMSPREE_FORM_ID", c.FormspreeFormID},
		{"FORMSPREE_BASE_URL", c.FormspreeBaseURL},
		{"FORMSPREE_TIMEOUT", c.FormspreeTimeout.String()},
		{"OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint},
		{"OTEL_SERVICE_NAME", c.ServiceName},
	}
}

// cleanList trims entries and drops empty ones
func cleanList(list []string) []string {
	out := list[:0]
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}
