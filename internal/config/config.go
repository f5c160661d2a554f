package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at startup
// and validated before anything else runs; there is no runtime mutation.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	FCM      FCMConfig      `mapstructure:"fcm"`
	TTL      TTLConfig      `mapstructure:"ttl"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" validate:"required"`
	Env  string `mapstructure:"env" validate:"oneof=development production"`
	// AllowedOrigins is the CORS allow-list for the SPA.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"gt=0"`
	Name     string `mapstructure:"name" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
}

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" validate:"min=1"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" validate:"required"`
	Topics          []string `mapstructure:"topics" validate:"min=1"`
}

type AuthConfig struct {
	// JWTSecret verifies tokens issued by the identity service.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=16"`
}

type FCMConfig struct {
	// Endpoint overrides the FCM send URL; empty selects the default.
	Endpoint  string `mapstructure:"endpoint"`
	ServerKey string `mapstructure:"server_key" validate:"required"`
}

type TTLConfig struct {
	RetentionDays int `mapstructure:"retention_days" validate:"gt=0"` // Default: 30
}

// Load reads configuration from environment variables and config files.
// Environment variables override file values. Prefix: COMCON_
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", "8092")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "communiconnect_delivery")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.consumer_group_id", "communiconnect-delivery-group")
	v.SetDefault("kafka.topics", []string{
		"message-events", "alert-events", "friend-events",
		"community-events", "livestream-events", "delivery-commands",
	})
	v.SetDefault("auth.jwt_secret", "communiconnect-dev-secret")
	v.SetDefault("fcm.server_key", "dev-fcm-server-key")
	v.SetDefault("ttl.retention_days", 30)

	// Environment variables (e.g. COMCON_DATABASE_HOST -> database.host)
	v.SetEnvPrefix("COMCON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also support simple env vars without prefix for Docker Compose convenience
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("fcm.server_key", "FCM_SERVER_KEY")
	v.BindEnv("server.port", "PORT")

	// Try loading config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // Not required

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" dbname=" + d.Name +
		" user=" + d.User +
		" password=" + d.Password +
		" sslmode=disable"
}
