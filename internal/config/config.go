package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	JWT           JWTConfig           `yaml:"jwt"`
	Cookie        CookieConfig        `yaml:"cookie"`
	CORS          CORSConfig          `yaml:"cors"`
	Redis         RedisConfig         `yaml:"redis"`
	SMTP          SMTPConfig          `yaml:"smtp"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Log           LogConfig           `yaml:"log"`
	App           AppConfig           `yaml:"app"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret         string `yaml:"secret"`
	ExpireHours    int    `yaml:"expire_hours"`
	RememberMeDays int    `yaml:"remember_me_days"`
}

// CookieConfig describes the auth cookie set on login.
type CookieConfig struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
	Secure bool   `yaml:"secure"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// RedisConfig for optional async task queue
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	UseTLS   bool   `yaml:"use_tls"`
}

// ElasticsearchConfig enables the project search index when Addresses is non-empty.
type ElasticsearchConfig struct {
	Addresses []string `yaml:"addresses"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	Index     string   `yaml:"index"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type AppConfig struct {
	ClientURL string `yaml:"client_url"`
}

var GlobalConfig *Config

// Load reads .env (if present), then the YAML file at configPath, then
// applies environment overrides.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	_ = godotenv.Load()

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "teamup.db",
		},
		JWT: JWTConfig{
			Secret:         "teamup-secret-key-change-in-production",
			ExpireHours:    1,
			RememberMeDays: 30,
		},
		Cookie: CookieConfig{
			Name: "token",
		},
		CORS: CORSConfig{
			Origins: []string{"http://localhost:5173"},
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
		},
		SMTP: SMTPConfig{
			Port: 587,
			From: "no-reply@teamup.local",
		},
		Elasticsearch: ElasticsearchConfig{
			Index: "projects",
		},
		Log: LogConfig{
			Level: "info",
		},
		App: AppConfig{
			ClientURL: "http://localhost:5173",
		},
	}
}

// applyDefaults restores zero values a partial YAML file may have blanked.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = def.JWT.ExpireHours
	}
	if c.JWT.RememberMeDays <= 0 {
		c.JWT.RememberMeDays = def.JWT.RememberMeDays
	}
	if c.Cookie.Name == "" {
		c.Cookie.Name = def.Cookie.Name
	}
	if c.Elasticsearch.Index == "" {
		c.Elasticsearch.Index = def.Elasticsearch.Index
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS")); err == nil && hours > 0 {
		c.JWT.ExpireHours = hours
	}
	if secure := os.Getenv("COOKIE_SECURE"); secure != "" {
		c.Cookie.Secure = secure == "true" || secure == "1"
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORS.Origins = splitList(origins)
	}
	// Redis URL override (format: redis://:password@host:port/db)
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		if opts, err := redis.ParseURL(redisURL); err == nil {
			c.Redis.Enabled = true
			c.Redis.Addr = opts.Addr
			c.Redis.Password = opts.Password
			c.Redis.DB = opts.DB
		}
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		c.SMTP.Host = host
	}
	if port, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && port > 0 {
		c.SMTP.Port = port
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		c.SMTP.Username = user
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		c.SMTP.Password = pass
	}
	if from := os.Getenv("SMTP_FROM"); from != "" {
		c.SMTP.From = from
	}
	if esURL := os.Getenv("ELASTICSEARCH_URL"); esURL != "" {
		c.Elasticsearch.Addresses = splitList(esURL)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if file := os.Getenv("LOG_FILE"); file != "" {
		c.Log.File = file
	}
	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		c.App.ClientURL = clientURL
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
