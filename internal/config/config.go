package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

// Config represents the complete service configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Minio    MinioConfig    `toml:"minio"`
	Orders   OrdersConfig   `toml:"orders"`
	Activity ActivityConfig `toml:"activity"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

// DatabaseConfig contains the Postgres DSN and pool sizing
type DatabaseConfig struct {
	URL      string `toml:"url"`
	MaxConns int32  `toml:"max_conns"`
	MinConns int32  `toml:"min_conns"`
}

// AuthConfig contains JWT settings and the two back-office admin identities
type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLHours     int    `toml:"token_ttl_hours"`
	AdminEmail        string `toml:"admin_email"`
	ProductAdminEmail string `toml:"product_admin_email"`
}

type RedisConfig struct {
	Addr                   string `toml:"addr"`
	Password               string `toml:"password"`
	DB                     int    `toml:"db"`
	ProductCacheTTLSeconds int    `toml:"product_cache_ttl_seconds"`
}

// KafkaConfig is optional; no brokers disables event publishing
type KafkaConfig struct {
	Brokers    []string `toml:"brokers"`
	OrderTopic string   `toml:"order_topic"`
}

type MinioConfig struct {
	Endpoint      string `toml:"endpoint"`
	AccessKey     string `toml:"access_key"`
	SecretKey     string `toml:"secret_key"`
	UseSSL        bool   `toml:"use_ssl"`
	ArchiveBucket string `toml:"archive_bucket"`
}

type OrdersConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type ActivityConfig struct {
	Buffer                 int `toml:"buffer"`
	Workers                int `toml:"workers"`
	ArchiveIntervalMinutes int `toml:"archive_interval_minutes"`
}

// Defaults returns the configuration used when neither file nor environment set a value
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			MaxConns: 8,
			MinConns: 1,
		},
		Auth: AuthConfig{
			TokenTTLHours:     24 * 30,
			AdminEmail:        "admin@ekinoks.com.tr",
			ProductAdminEmail: "adminproduct@ekinoks.com.tr",
		},
		Redis: RedisConfig{
			Addr:                   "localhost:6379",
			ProductCacheTTLSeconds: 300,
		},
		Kafka: KafkaConfig{OrderTopic: "order.created"},
		Minio: MinioConfig{
			Endpoint:      "localhost:9000",
			AccessKey:     "minioadmin",
			SecretKey:     "minioadmin",
			ArchiveBucket: "activity-archive",
		},
		Orders: OrdersConfig{TimeoutSeconds: 10},
		Activity: ActivityConfig{
			Buffer:                 256,
			Workers:                2,
			ArchiveIntervalMinutes: 60,
		},
	}
}

// Load builds the configuration: defaults, then the optional TOML file named by
// CONFIG_FILE, then environment variables (a .env file is read first if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret for this process")
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over cfg
func LoadFile(filename string, cfg *Config) error {
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getenvInt("PORT", cfg.Server.Port)

	cfg.Database.URL = getenv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxConns = int32(getenvInt("DB_MAX_CONNS", int(cfg.Database.MaxConns)))
	cfg.Database.MinConns = int32(getenvInt("DB_MIN_CONNS", int(cfg.Database.MinConns)))

	cfg.Auth.JWTSecret = getenv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTLHours = getenvInt("JWT_TTL_HOURS", cfg.Auth.TokenTTLHours)
	cfg.Auth.AdminEmail = getenv("ADMIN_EMAIL", cfg.Auth.AdminEmail)
	cfg.Auth.ProductAdminEmail = getenv("PRODUCT_ADMIN_EMAIL", cfg.Auth.ProductAdminEmail)

	cfg.Redis.Addr = getenv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getenv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getenvInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.ProductCacheTTLSeconds = getenvInt("PRODUCT_CACHE_TTL_SECONDS", cfg.Redis.ProductCacheTTLSeconds)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitCSV(brokers)
	}
	cfg.Kafka.OrderTopic = getenv("KAFKA_ORDER_TOPIC", cfg.Kafka.OrderTopic)

	cfg.Minio.Endpoint = getenv("MINIO_ENDPOINT", cfg.Minio.Endpoint)
	cfg.Minio.AccessKey = getenv("MINIO_ACCESS_KEY", cfg.Minio.AccessKey)
	cfg.Minio.SecretKey = getenv("MINIO_SECRET_KEY", cfg.Minio.SecretKey)
	cfg.Minio.UseSSL = getenvBool("MINIO_USE_SSL", cfg.Minio.UseSSL)
	cfg.Minio.ArchiveBucket = getenv("MINIO_ARCHIVE_BUCKET", cfg.Minio.ArchiveBucket)

	cfg.Orders.TimeoutSeconds = getenvInt("ORDER_TIMEOUT_SECONDS", cfg.Orders.TimeoutSeconds)

	cfg.Activity.Buffer = getenvInt("ACTIVITY_BUFFER", cfg.Activity.Buffer)
	cfg.Activity.Workers = getenvInt("ACTIVITY_WORKERS", cfg.Activity.Workers)
	cfg.Activity.ArchiveIntervalMinutes = getenvInt("ACTIVITY_ARCHIVE_INTERVAL_MINUTES", cfg.Activity.ArchiveIntervalMinutes)
}

// TokenTTL returns the JWT lifetime
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// OrderTimeout bounds one order transaction end to end
func (c *Config) OrderTimeout() time.Duration {
	return time.Duration(c.Orders.TimeoutSeconds) * time.Second
}

func (c *Config) ProductCacheTTL() time.Duration {
	return time.Duration(c.Redis.ProductCacheTTLSeconds) * time.Second
}

func (c *Config) ArchiveInterval() time.Duration {
	return time.Duration(c.Activity.ArchiveIntervalMinutes) * time.Minute
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARNING: ignoring invalid %s=%q: %v", k, v, err)
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
