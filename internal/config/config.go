package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const DefaultBaseURL = "http://35.154.29.115:8000/api"

// Config contains runtime settings for the web server and the CLI
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	Host      string `mapstructure:"HOST"` // default 0.0.0.0
	Port      string `mapstructure:"PORT"` // default 8080

	SessionTTL  time.Duration `mapstructure:"SESSION_TTL"`  // idle sessions are dropped after this
	MaxSessions int           `mapstructure:"MAX_SESSIONS"` // in-memory session cap

	TalentAPI struct {
		BaseURL string        `mapstructure:"TALENT_API_BASE_URL"`
		Timeout time.Duration `mapstructure:"TALENT_API_TIMEOUT"`
	} `mapstructure:",squash"`

	Neo4j struct {
		URI      string `mapstructure:"NEO4J_URI"`
		Username string `mapstructure:"NEO4J_USERNAME"`
		Password string `mapstructure:"NEO4J_PASSWORD"`
		Database string `mapstructure:"NEO4J_DATABASE"`
	} `mapstructure:",squash"` // optional, memory store when URI is empty

	Sheets struct {
		CredentialsPath string `mapstructure:"GOOGLE_SHEETS_CREDENTIALS_PATH"`
		CredentialsJSON string `mapstructure:"GOOGLE_SHEETS_CREDENTIALS_JSON"` // inline, used when no path is set
	} `mapstructure:",squash"`

	Gmail struct {
		CredentialsPath string `mapstructure:"GMAIL_CREDENTIALS_PATH"`
		TokenPath       string `mapstructure:"GMAIL_TOKEN_PATH"`
		Sender          string `mapstructure:"GMAIL_SENDER"`
	} `mapstructure:",squash"`

	Gemini struct {
		APIKey string `mapstructure:"GEMINI_API_KEY"`
		Model  string `mapstructure:"GEMINI_MODEL"`
	} `mapstructure:",squash"`

	BillingPlan string `mapstructure:"BILLING_PLAN"`
}

var keys = []string{
	"LOG_LEVEL", "LOG_FORMAT", "HOST", "PORT", "SESSION_TTL", "MAX_SESSIONS",
	"TALENT_API_BASE_URL", "TALENT_API_TIMEOUT",
	"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NEO4J_DATABASE",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEETS_CREDENTIALS_JSON",
	"GMAIL_CREDENTIALS_PATH", "GMAIL_TOKEN_PATH", "GMAIL_SENDER",
	"GEMINI_API_KEY", "GEMINI_MODEL",
	"BILLING_PLAN",
}

// Load populates config from environment variables and, when path is set, a config file.
// Environment variables take precedence over the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("MAX_SESSIONS", 10000)
	v.SetDefault("TALENT_API_BASE_URL", DefaultBaseURL)
	v.SetDefault("TALENT_API_TIMEOUT", "15s")
	v.SetDefault("NEO4J_DATABASE", "neo4j")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("BILLING_PLAN", "free")
}

func decode(v *viper.Viper) (Config, error) {
	settings := make(map[string]any, len(keys))
	for _, k := range keys {
		settings[k] = v.Get(k)
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, fmt.Errorf("config: decoder: %w", err)
	}
	if err := dec.Decode(settings); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings that only make sense together
func (c Config) Validate() error {
	var missingVars []string

	if c.Neo4j.URI != "" {
		if c.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if c.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	}

	if c.Gmail.CredentialsPath != "" {
		if c.Gmail.TokenPath == "" {
			missingVars = append(missingVars, "GMAIL_TOKEN_PATH")
		}
		if c.Gmail.Sender == "" {
			missingVars = append(missingVars, "GMAIL_SENDER")
		}
	}

	var errs []error
	if len(missingVars) > 0 {
		errs = append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", ")))
	}
	if strings.TrimSpace(c.TalentAPI.BaseURL) == "" {
		errs = append(errs, errors.New("TALENT_API_BASE_URL must not be empty"))
	}
	if c.TalentAPI.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("TALENT_API_TIMEOUT must be positive, got %s", c.TalentAPI.Timeout))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("MAX_SESSIONS must be positive, got %d", c.MaxSessions))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}
