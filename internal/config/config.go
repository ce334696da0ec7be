package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"admin"`

	Workflow struct {
		StrictTransitions bool `yaml:"strict_transitions"`
	} `yaml:"workflow"`
}

const (
	defaultConfigPath = "config/config.yaml"
	defaultJWTTTL     = 60
	defaultPort       = 8080
)

var AppConfig *Config

// LoadConfig reads .env when present, then builds the configuration from the
// environment if DATABASE_URL is set, or from the YAML file at CONFIG_PATH.
func LoadConfig() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded variables from .env")
	}

	var (
		cfg *Config
		err error
	)
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("Loading configuration from environment")
		cfg = FromEnv()
	} else {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = defaultConfigPath
		}
		log.Printf("Loading configuration from %s", path)
		if cfg, err = FromFile(path); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	AppConfig = cfg
}

func FromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func FromEnv() *Config {
	var cfg Config
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Port = getEnvAsInt("SERVER_PORT", defaultPort)
	cfg.Server.Env = getEnv("SERVER_ENV", "development")

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 0)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 0)
	cfg.Database.AutoMigrate = getEnvAsBool("DB_AUTO_MIGRATE", true)

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = getEnvAsInt("JWT_TTL", defaultJWTTTL)

	cfg.Admin.Email = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.Admin.Password = os.Getenv("FIRST_ADMIN_PASSWORD")
	cfg.Admin.Name = getEnv("FIRST_ADMIN_NAME", "Administrator")

	cfg.Workflow.StrictTransitions = getEnvAsBool("WORKFLOW_STRICT_TRANSITIONS", false)

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = defaultJWTTTL
	}
	if c.Admin.Name == "" {
		c.Admin.Name = "Administrator"
	}
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
