package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/validalex/draft-backend/internal/pkg/retry"
)

const (
	ProviderOpenAI  = "openai"
	ProviderGateway = "gateway"
	ProviderMock    = "mock"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	AuthCfg      AuthConfig              `envPrefix:"VALIDALEX_"`
	LLMCfg       LLMConfig               `envPrefix:"LLM_"`
	TemplatesCfg TemplatesConfig         `envPrefix:"TEMPLATES_"`
	StoreCfg     StoreConfig             `envPrefix:"STORE_"`
	ExportCfg    ExportConfig            `envPrefix:"EXPORT_"`
	RateLimitCfg RateLimitConfig         `envPrefix:"RATE_LIMIT_"`
	CallbackCfg  CallbackConnectorConfig `envPrefix:"CALLBACK_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// AuthConfig holds the shared secret checked on every API route. An empty
// secret is reported per request as a server misconfiguration.
type AuthConfig struct {
	SharedToken string `env:"SHARED_TOKEN"`
	AcceptJWT   bool   `env:"ACCEPT_JWT" envDefault:"false"`
	JWTIssuer   string `env:"JWT_ISSUER"`
}

type LLMConfig struct {
	Provider       string  `env:"PROVIDER" envDefault:"openai"`
	APIKey         string  `env:"API_KEY"`
	BaseURL        string  `env:"BASE_URL"`
	Model          string  `env:"MODEL" envDefault:"gpt-4.1"`
	Temperature    float32 `env:"TEMPERATURE" envDefault:"0.2"`
	MaxOutputChars int     `env:"MAX_OUTPUT_CHARS" envDefault:"25000"`

	GatewayCfg       HTTPClientConfig     `envPrefix:"GATEWAY_"`
	GenerateEndpoint string               `env:"GATEWAY_GENERATE_ENDPOINT" envDefault:"/v1/draft/generate"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`

	// MockDelay simulates model latency for the mock provider.
	MockDelay time.Duration `env:"MOCK_DELAY" envDefault:"0s"`
}

type TemplatesConfig struct {
	// Dir overrides the embedded templates when set.
	Dir            string        `env:"DIR"`
	DefaultVersion string        `env:"DEFAULT_VERSION" envDefault:"cobranca_v1_2"`
	PromptVersion  string        `env:"PROMPT_VERSION" envDefault:"2.0"`
	MaxFieldChars  int           `env:"MAX_FIELD_CHARS" envDefault:"8000"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

type StoreConfig struct {
	Driver string        `env:"DRIVER" envDefault:"memory"`
	JobTTL time.Duration `env:"JOB_TTL" envDefault:"24h"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"draft-backend.db"`
}

type ExportConfig struct {
	Delivery      string        `env:"DELIVERY" envDefault:"inline"`
	FileTTL       time.Duration `env:"FILE_TTL" envDefault:"1h"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL"`
	UnidocKey     string        `env:"UNIDOC_LICENSE_API_KEY"`
	FontPath      string        `env:"PDF_FONT_PATH"`
}

type RateLimitConfig struct {
	Window time.Duration `env:"WINDOW" envDefault:"60s"`
	Draft  int           `env:"DRAFT" envDefault:"30"`
	Start  int           `env:"START" envDefault:"10"`
	Status int           `env:"STATUS" envDefault:"30"`
	Export int           `env:"EXPORT" envDefault:"20"`
}

type CallbackConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// LoadConfig reads .env.<environment> when present, then the process
// environment, and validates the result.
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Parse builds a Config from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.LLMCfg.APIKey == "" {
		cfg.LLMCfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if !slices.Contains([]string{ProviderOpenAI, ProviderGateway, ProviderMock}, cfg.LLMCfg.Provider) {
		errs = append(errs, fmt.Sprintf("LLM_PROVIDER must be one of openai, gateway, mock, got %q", cfg.LLMCfg.Provider))
	}
	if cfg.LLMCfg.Provider == ProviderOpenAI && cfg.LLMCfg.APIKey == "" {
		errs = append(errs, "LLM_API_KEY (or OPENAI_API_KEY) is required for the openai provider")
	}
	if cfg.LLMCfg.Provider == ProviderGateway && cfg.LLMCfg.GatewayCfg.Url == "" {
		errs = append(errs, "LLM_GATEWAY_SERVICE_URL is required for the gateway provider")
	}
	if cfg.LLMCfg.Temperature < 0 || cfg.LLMCfg.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %v", cfg.LLMCfg.Temperature))
	}
	if cfg.LLMCfg.MaxOutputChars < 1 {
		errs = append(errs, fmt.Sprintf("LLM_MAX_OUTPUT_CHARS must be positive, got %d", cfg.LLMCfg.MaxOutputChars))
	}
	if cfg.LLMCfg.Retry.Attempts < 1 || cfg.LLMCfg.Retry.Attempts > 5 {
		errs = append(errs, fmt.Sprintf("LLM_RETRY_ATTEMPTS must be between 1 and 5, got %d", cfg.LLMCfg.Retry.Attempts))
	}

	if cfg.TemplatesCfg.MaxFieldChars < 1 {
		errs = append(errs, fmt.Sprintf("TEMPLATES_MAX_FIELD_CHARS must be positive, got %d", cfg.TemplatesCfg.MaxFieldChars))
	}

	switch cfg.StoreCfg.Driver {
	case StoreMemory:
	case StorePostgres:
		if cfg.StoreCfg.DatabaseURL == "" {
			errs = append(errs, "STORE_DATABASE_URL is required for the postgres store")
		}
	case StoreSQLite:
		if cfg.StoreCfg.SQLitePath == "" {
			errs = append(errs, "STORE_SQLITE_PATH is required for the sqlite store")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORE_DRIVER must be one of memory, postgres, sqlite, got %q", cfg.StoreCfg.Driver))
	}

	// Validate Database configuration
	if cfg.StoreCfg.DBMaxConns < 1 || cfg.StoreCfg.DBMaxConns > 200 {
		errs = append(errs, fmt.Sprintf("STORE_DB_MAX_CONNS must be between 1 and 200, got %d", cfg.StoreCfg.DBMaxConns))
	}
	if cfg.StoreCfg.DBMinConns < 0 || cfg.StoreCfg.DBMinConns > cfg.StoreCfg.DBMaxConns {
		errs = append(errs, fmt.Sprintf("STORE_DB_MIN_CONNS must be between 0 and STORE_DB_MAX_CONNS(%d), got %d", cfg.StoreCfg.DBMaxConns, cfg.StoreCfg.DBMinConns))
	}

	if cfg.ExportCfg.Delivery != "inline" && cfg.ExportCfg.Delivery != "url" {
		errs = append(errs, fmt.Sprintf("EXPORT_DELIVERY must be inline or url, got %q", cfg.ExportCfg.Delivery))
	}

	for name, v := range map[string]int{
		"RATE_LIMIT_DRAFT":  cfg.RateLimitCfg.Draft,
		"RATE_LIMIT_START":  cfg.RateLimitCfg.Start,
		"RATE_LIMIT_STATUS": cfg.RateLimitCfg.Status,
		"RATE_LIMIT_EXPORT": cfg.RateLimitCfg.Export,
	} {
		if v < 1 || v > 10000 {
			errs = append(errs, fmt.Sprintf("%s must be between 1 and 10000, got %d", name, v))
		}
	}
	if cfg.RateLimitCfg.Window < time.Second {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_WINDOW must be at least 1s, got %s", cfg.RateLimitCfg.Window))
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development", "":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
