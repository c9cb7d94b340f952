package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	ObjectStorage ObjectStorageConfig
	Auth          AuthConfig
	OTP           OTPConfig
	EventTriggers EventTriggersConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
	Mock          MockConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyMB      int
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type DatabaseConfig struct {
	Backend  string
	URL      string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ObjectStorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	PublicBaseURL   string
}

// Enabled reports whether uploads go to an S3-compatible bucket
func (c ObjectStorageConfig) Enabled() bool {
	return c.BucketName != ""
}

type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	CookieName      string
	CookieDomain    string
	CookieSecure    bool
}

type OTPConfig struct {
	TTLMinutes int
}

type EventTriggersConfig struct {
	UserRegisteredTriggerURL string
	OTPRequestedTriggerURL   string
	TicketCreatedTriggerURL  string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
	TraceSampleRatio  float64
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	DashboardTTLSeconds int
	ResourceTTLSeconds  int
}

// MockConfig simulates collaborator latency for the in-memory backend
type MockConfig struct {
	LatencyMS int
}

// Latency returns the simulated delay
func (c MockConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMS) * time.Millisecond
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("MAX_BODY_MB", 60)
	v.SetDefault("DATABASE_BACKEND", BackendMemory)
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("OBJECT_STORAGE_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "nmm-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "nmm")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_TRACE_SAMPLE_RATIO", 1.0)
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "nmm-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("DASHBOARD_CACHE_TTL", 60)
	v.SetDefault("RESOURCE_CACHE_TTL", 300)
	v.SetDefault("MOCK_LATENCY_MS", 0)

	v.SetDefault("JWT_ISSUER", "nmm-api")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("SESSION_COOKIE_NAME", "nmm_session")
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("OTP_TTL_MINUTES", 5)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        strings.TrimRight(v.GetString("BASE_URL"), "/"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
			MaxBodyMB:      v.GetInt("MAX_BODY_MB"),
		},
		Database: DatabaseConfig{
			Backend:  strings.ToLower(v.GetString("DATABASE_BACKEND")),
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		ObjectStorage: ObjectStorageConfig{
			AccessKeyID:     v.GetString("OBJECT_STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("OBJECT_STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("OBJECT_STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("OBJECT_STORAGE_ENDPOINT"),
			Region:          v.GetString("OBJECT_STORAGE_REGION"),
			PublicBaseURL:   v.GetString("OBJECT_STORAGE_PUBLIC_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			CookieName:      v.GetString("SESSION_COOKIE_NAME"),
			CookieDomain:    v.GetString("COOKIE_DOMAIN"),
			CookieSecure:    v.GetBool("COOKIE_SECURE"),
		},
		OTP: OTPConfig{
			TTLMinutes: v.GetInt("OTP_TTL_MINUTES"),
		},
		EventTriggers: EventTriggersConfig{
			UserRegisteredTriggerURL: v.GetString("USER_REGISTERED_TRIGGER_URL"),
			OTPRequestedTriggerURL:   v.GetString("OTP_REQUESTED_TRIGGER_URL"),
			TicketCreatedTriggerURL:  v.GetString("TICKET_CREATED_TRIGGER_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
			TraceSampleRatio:  v.GetFloat64("O11Y_TRACE_SAMPLE_RATIO"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			DashboardTTLSeconds: v.GetInt("DASHBOARD_CACHE_TTL"),
			ResourceTTLSeconds:  v.GetInt("RESOURCE_CACHE_TTL"),
		},
		Mock: MockConfig{
			LatencyMS: v.GetInt("MOCK_LATENCY_MS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATABASE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("DATABASE_BACKEND must be %q or %q, got %q", BackendMemory, BackendPostgres, c.Database.Backend)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.ObjectStorage.Enabled() && (c.ObjectStorage.AccessKeyID == "" || c.ObjectStorage.SecretAccessKey == "") {
		return fmt.Errorf("OBJECT_STORAGE_ACCESS_KEY_ID and OBJECT_STORAGE_SECRET_ACCESS_KEY are required when a bucket is configured")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
