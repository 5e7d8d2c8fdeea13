package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable pointing at an optional
// YAML config file. Environment variables override values from the file.
const ConfigFileEnv = "TRUTHGUARDIAN_CONFIG"

type Config struct {
	// Server config
	Server ServerConfig `yaml:"server"`

	// CSRF config
	Security SecurityConfig `yaml:"security"`

	// Gemini API config
	Gemini GeminiConfig `yaml:"gemini"`

	// report page behaviour
	Report ReportConfig `yaml:"report"`

	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        `yaml:"port"`
	Environment  string        `yaml:"environment"` // development, staging, production
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	CSRFSecret     string   `yaml:"csrfSecret"`
	TrustedOrigins []string `yaml:"trustedOrigins"`
	SecureCookies  bool     `yaml:"-"` // true in production
}

// GeminiConfig holds the generative model settings.
type GeminiConfig struct {
	APIKey          string        `yaml:"apiKey"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"baseUrl"`
	APIVersion      string        `yaml:"apiVersion"`
	Temperature     float32       `yaml:"temperature"`
	TopK            float32       `yaml:"topK"`
	TopP            float32       `yaml:"topP"`
	MaxOutputTokens int32         `yaml:"maxOutputTokens"`
	Timeout         time.Duration `yaml:"timeout"`
	JSONMode        bool          `yaml:"jsonMode"`

	// outbound call budget
	RequestsPerMinute int `yaml:"requestsPerMinute"`
	Burst             int `yaml:"burst"`
}

// ReportConfig holds settings for the simulated report submission.
type ReportConfig struct {
	SubmitDelay time.Duration `yaml:"submitDelay"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Server.Port, ":") {
		return c.Server.Port
	}
	return ":" + c.Server.Port
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			Environment:  "development",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Gemini: GeminiConfig{
			Model:             "gemini-2.5-flash",
			APIVersion:        "v1beta",
			Temperature:       0.4,
			TopK:              32,
			TopP:              0.95,
			MaxOutputTokens:   1024,
			Timeout:           30 * time.Second,
			JSONMode:          true,
			RequestsPerMinute: 30,
			Burst:             5,
		},
		Report: ReportConfig{
			SubmitDelay: time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.Security.SecureCookies = cfg.IsProduction()

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile overlays the YAML file at path onto c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides c with every environment variable that is set.
func (c *Config) applyEnv() error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	setString(&c.Server.Port, "SERVER_PORT")
	setString(&c.Server.Environment, "APP_ENV")
	collect(setDuration(&c.Server.ReadTimeout, "SERVER_READ_TIMEOUT"))
	collect(setDuration(&c.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT"))
	collect(setDuration(&c.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT"))

	setString(&c.Security.CSRFSecret, "CSRF_SECRET")
	if v := os.Getenv("CSRF_TRUSTED_ORIGINS"); v != "" {
		c.Security.TrustedOrigins = strings.Fields(v)
	}

	setString(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.Gemini.Model, "GEMINI_MODEL")
	setString(&c.Gemini.BaseURL, "GEMINI_BASE_URL")
	setString(&c.Gemini.APIVersion, "GEMINI_API_VERSION")
	collect(setFloat32(&c.Gemini.Temperature, "GEMINI_TEMPERATURE"))
	collect(setFloat32(&c.Gemini.TopK, "GEMINI_TOP_K"))
	collect(setFloat32(&c.Gemini.TopP, "GEMINI_TOP_P"))
	collect(setInt32(&c.Gemini.MaxOutputTokens, "GEMINI_MAX_OUTPUT_TOKENS"))
	collect(setDuration(&c.Gemini.Timeout, "GEMINI_TIMEOUT"))
	collect(setBool(&c.Gemini.JSONMode, "GEMINI_JSON_MODE"))
	collect(setInt(&c.Gemini.RequestsPerMinute, "ANALYSIS_RPM"))
	collect(setInt(&c.Gemini.Burst, "ANALYSIS_BURST"))

	collect(setDuration(&c.Report.SubmitDelay, "REPORT_SUBMIT_DELAY"))
	setString(&c.Log.Level, "LOG_LEVEL")

	return errors.Join(errs...)
}

// validate checks that all required configuration is present and valid.
func (c *Config) validate() error {
	var errs []error

	// Gemini API key is required for analysis
	if c.Gemini.APIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required"))
	}
	if c.Gemini.Model == "" {
		errs = append(errs, errors.New("GEMINI_MODEL must not be empty"))
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		errs = append(errs, errors.New("GEMINI_TEMPERATURE must be between 0 and 2"))
	}
	if c.Gemini.TopP < 0 || c.Gemini.TopP > 1 {
		errs = append(errs, errors.New("GEMINI_TOP_P must be between 0 and 1"))
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		errs = append(errs, errors.New("GEMINI_MAX_OUTPUT_TOKENS must be positive"))
	}
	if c.Report.SubmitDelay < 0 {
		errs = append(errs, errors.New("REPORT_SUBMIT_DELAY must not be negative"))
	}

	// Validate environment is a known value
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.Server.Environment] {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of: development, staging, production (got: %s)", c.Server.Environment))
	}

	// Combine all errors
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
	}

	return nil
}

// ValidateServer checks the settings only the web server needs.
func (c *Config) ValidateServer() error {
	// CSRF secret must be set and sufficiently long
	if c.Security.CSRFSecret == "" {
		return errors.New("CSRF_SECRET is required")
	}
	if len(c.Security.CSRFSecret) < 32 {
		return errors.New("CSRF_SECRET must be at least 32 characters")
	}
	return nil
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setDuration(dst *time.Duration, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setInt32(dst *int32, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = int32(n)
	return nil
}

func setFloat32(dst *float32, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = float32(f)
	return nil
}

func setBool(dst *bool, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}
