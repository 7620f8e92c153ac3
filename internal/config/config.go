package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int `yaml:"port"`
		ShutdownSeconds int `yaml:"shutdownSeconds"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Generator struct {
		Mode        string `yaml:"mode"`
		MaxAttempts int    `yaml:"maxAttempts"`
	} `yaml:"generator"`

	Breach struct {
		Backend   string `yaml:"backend"`
		CorpusKey string `yaml:"corpusKey"`
		RedisKey  string `yaml:"redisKey"`
		Seed      bool   `yaml:"seed"`
	} `yaml:"breach"`

	Records struct {
		MemoryLimit int `yaml:"memoryLimit"`
	} `yaml:"records"`

	Database struct {
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
		Migrate  bool   `yaml:"migrate"`
	} `yaml:"database"`

	Redis struct {
		URL      string `yaml:"url"`
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		Enabled bool   `yaml:"enabled"`
		APIKey  string `yaml:"apiKey"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"baseURL"`
		Timeout int    `yaml:"timeoutSeconds"`
	} `yaml:"openai"`

	Auth struct {
		Enabled bool              `yaml:"enabled"`
		APIKeys map[string]string `yaml:"apiKeys"` // key -> tenant
	} `yaml:"auth"`

	RateLimit struct {
		RequestsPerMinute int `yaml:"requestsPerMinute"`
	} `yaml:"ratelimit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`
}

// Load baca file config.yaml, lalu .env dan environment variable untuk secret
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and env overrides, then validates.
func Parse(data []byte) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownSeconds == 0 {
		c.Server.ShutdownSeconds = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Generator.Mode == "" {
		c.Generator.Mode = "enforce"
	}
	if c.Generator.MaxAttempts == 0 {
		c.Generator.MaxAttempts = 10
	}
	if c.Breach.Backend == "" {
		c.Breach.Backend = "memory"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "none"
	}
	if c.Records.MemoryLimit == 0 {
		c.Records.MemoryLimit = 10000
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Timeout == 0 {
		c.OpenAI.Timeout = 10
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 120
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}

func (c *Config) applyEnv() {
	c.OpenAI.APIKey = getEnv("OPENAI_API_KEY", c.OpenAI.APIKey)
	c.Database.Password = getEnv("DATABASE_PASSWORD", c.Database.Password)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Minio.SecretKey = getEnv("MINIO_SECRET_KEY", c.Minio.SecretKey)
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...interface{}) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port %d out of range", c.Server.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "error", "fatal":
	default:
		add("log.level %q must be debug, info, error or fatal", c.Log.Level)
	}
	switch c.Generator.Mode {
	case "enforce", "advisory":
	default:
		add("generator.mode %q must be enforce or advisory", c.Generator.Mode)
	}
	if c.Generator.MaxAttempts < 1 {
		add("generator.maxAttempts must be positive")
	}
	switch c.Database.Driver {
	case "none":
	case "mysql", "postgres":
		if c.Database.Host == "" || c.Database.Name == "" {
			add("database.host and database.name are required for driver %s", c.Database.Driver)
		}
	default:
		add("database.driver %q must be mysql, postgres or none", c.Database.Driver)
	}
	switch c.Breach.Backend {
	case "memory":
	case "redis":
		if c.Redis.URL == "" && c.Redis.Addr == "" {
			add("breach.backend redis needs redis.url or redis.addr")
		}
	case "sql":
		if c.Database.Driver == "none" {
			add("breach.backend sql needs a database.driver")
		}
	default:
		add("breach.backend %q must be memory, redis or sql", c.Breach.Backend)
	}
	if c.Breach.CorpusKey != "" && (c.Minio.Endpoint == "" || c.Minio.BucketName == "") {
		add("breach.corpusKey needs minio.endpoint and minio.bucketName")
	}
	if c.OpenAI.Enabled && c.OpenAI.APIKey == "" {
		add("openai.enabled needs an api key (OPENAI_API_KEY)")
	}
	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		add("auth.enabled needs at least one entry in auth.apiKeys")
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		add("ratelimit.requestsPerMinute must not be negative")
	}
	return result.ErrorOrNil()
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection URL.
func (c *Config) PostgresDSN() string {
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(ssl),
	}
	return u.String()
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() (string, error) {
	switch c.Database.Driver {
	case "mysql":
		return c.MySQLDSN(), nil
	case "postgres":
		return c.PostgresDSN(), nil
	}
	return "", errors.New("no database driver configured")
}
