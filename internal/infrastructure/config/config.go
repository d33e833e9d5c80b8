package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FEEDBACK_SERVER_PORT
const EnvPrefix = "FEEDBACK"

// Config holds application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Model    ModelConfig    `mapstructure:"model"`
	Training TrainingConfig `mapstructure:"training"`
	Upload   UploadConfig   `mapstructure:"upload"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig holds feedback log storage settings. Driver is "sqlite"
// (Path is the database file) or "postgres".
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds stats cache settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	StatsTTL time.Duration `mapstructure:"stats_ttl"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ModelConfig locates the fitted artifact and tunes training
type ModelConfig struct {
	Dir           string  `mapstructure:"dir"`
	Name          string  `mapstructure:"name"`
	MaxIterations int     `mapstructure:"max_iterations"`
	C             float64 `mapstructure:"c"`
	Tolerance     float64 `mapstructure:"tolerance"`
}

// TrainingConfig controls automatic training
type TrainingConfig struct {
	DatasetPath string        `mapstructure:"dataset_path"`
	WatchDir    string        `mapstructure:"watch_dir"`
	Debounce    time.Duration `mapstructure:"debounce"`
}

// UploadConfig limits uploaded files
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// Load reads configuration from defaults, an optional config.yaml in the
// working directory or ./configs, and FEEDBACK_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "feedback.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "feedback")
	v.SetDefault("database.password", "feedback")
	v.SetDefault("database.dbname", "feedback")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.stats_ttl", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("model.dir", "models")
	v.SetDefault("model.name", "sentiment_model")
	v.SetDefault("model.max_iterations", 1000)
	v.SetDefault("model.c", 1.0)
	v.SetDefault("model.tolerance", 1e-4)

	v.SetDefault("training.dataset_path", "")
	v.SetDefault("training.watch_dir", "")
	v.SetDefault("training.debounce", 2*time.Second)

	v.SetDefault("upload.max_bytes", int64(32<<20))
}
