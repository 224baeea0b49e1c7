package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends understood by the session store wiring.
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Corpus  CorpusConfig
	Storage StorageConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
	Session SessionConfig
	Export  ExportConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// CorpusConfig points at the question corpus. An empty Dir means the corpus
// embedded in the binary is used.
type CorpusConfig struct {
	Dir      string `yaml:"dir"`
	Registry string `yaml:"registry"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type SessionConfig struct {
	Debounce     time.Duration `yaml:"debounce"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Language     string        `yaml:"language"`
	// TTL of a persisted session record on any backend; zero keeps records
	// until cleared.
	TTL time.Duration `yaml:"ttl"`
}

type ExportConfig struct {
	PDFEnabled  bool   `yaml:"pdf_enabled"`
	ReportTitle string `yaml:"report_title"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("corpus.dir", "")
	v.SetDefault("corpus.registry", "registry.yaml")
	v.SetDefault("storage.backend", StorageMemory)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("sqlite.path", "interview-assistant.db")
	v.SetDefault("session.debounce", "500ms")
	v.SetDefault("session.write_timeout", "3s")
	v.SetDefault("session.language", "en")
	v.SetDefault("session.ttl", "0s")
	v.SetDefault("export.pdf_enabled", true)
	v.SetDefault("export.report_title", "Interview Report")
}

// LoadConfig reads config.yaml (if present) and applies environment overrides.
// A missing config file is not an error; defaults are used instead.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Corpus: CorpusConfig{
			Dir:      v.GetString("corpus.dir"),
			Registry: v.GetString("corpus.registry"),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(v.GetString("storage.backend")),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("sqlite.path"),
		},
		Session: SessionConfig{
			Debounce:     v.GetDuration("session.debounce"),
			WriteTimeout: v.GetDuration("session.write_timeout"),
			Language:     v.GetString("session.language"),
			TTL:          v.GetDuration("session.ttl"),
		},
		Export: ExportConfig{
			PDFEnabled:  v.GetBool("export.pdf_enabled"),
			ReportTitle: v.GetString("export.report_title"),
		},
	}

	// Short, unprefixed environment variables win over the file.
	if port := os.Getenv("SERVER_PORT"); port != "" {
		v.Set("server.port", port)
		cfg.Server.Port = v.GetInt("server.port")
	}
	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = strings.ToLower(backend)
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if sqlitePath := os.Getenv("SQLITE_PATH"); sqlitePath != "" {
		cfg.SQLite.Path = sqlitePath
	}
	if corpusDir := os.Getenv("CORPUS_DIR"); corpusDir != "" {
		cfg.Corpus.Dir = corpusDir
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
	if env := os.Getenv("ENV"); env == "production" {
		cfg.Logger.Env = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in less obvious ways.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageRedis, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
	if c.Session.Debounce < 0 {
		return fmt.Errorf("session.debounce must not be negative")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	return nil
}
