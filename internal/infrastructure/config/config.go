package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is used when JWT_SECRET is not set. Development only.
const DefaultJWTSecret = "default_jwt_secret_for_development_only"

// Config application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Recipe      RecipeConfig      `mapstructure:"recipe"`
	Translation TranslationConfig `mapstructure:"translation"`
	ML          MLConfig          `mapstructure:"ml"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Upload      UploadConfig      `mapstructure:"upload"`
	Log         LogConfig         `mapstructure:"log"`
}

// AppConfig application settings
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig user store settings
type DatabaseConfig struct {
	Driver         string        `mapstructure:"driver"`
	MongoURL       string        `mapstructure:"mongo_url"`
	MongoDatabase  string        `mapstructure:"mongo_database"`
	DSN            string        `mapstructure:"dsn"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// AuthConfig token settings
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

// RecipeConfig recipe provider (Spoonacular) settings
type RecipeConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ResultCount int           `mapstructure:"result_count"`
	Ranking     int           `mapstructure:"ranking"`
}

// TranslationConfig translation provider (LibreTranslate) settings
type TranslationConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	SourceLanguage string        `mapstructure:"source_language"`
	TargetLanguage string        `mapstructure:"target_language"`
	Concurrency    int           `mapstructure:"concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// MLConfig image classification service settings
type MLConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	FrontendURL string `mapstructure:"frontend_url"`
}

// UploadConfig upload limits
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// LogConfig logger settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	Mode  string `mapstructure:"mode"`
	File  string `mapstructure:"file"`
}

// IsDevelopment reports whether detailed error text may be sent to clients.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// Warnings returns configuration problems that do not stop startup.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Auth.JWTSecret == DefaultJWTSecret {
		warnings = append(warnings, "JWT_SECRET is not defined. Using default secret for development only!")
	}
	if c.Recipe.APIKey == "" {
		warnings = append(warnings, "SPOONACULAR_API_KEY is not defined in environment variables")
	}
	if c.Database.Driver == "mongo" && c.Database.MongoURL == "" {
		warnings = append(warnings, "MONGO_URL is not defined in environment variables")
	}
	return warnings
}

// LoadConfig loads configuration from .env, the environment and defaults.
func LoadConfig() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey masks an API key, keeping four characters on each end.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "production")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "smart-pantry-chef")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.mongo_url", "")
	v.SetDefault("database.mongo_database", "smart_pantry_chef")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.connect_timeout", "10s")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("recipe.api_key", "")
	v.SetDefault("recipe.base_url", "https://api.spoonacular.com")
	v.SetDefault("recipe.timeout", "10s")
	v.SetDefault("recipe.result_count", 5)
	v.SetDefault("recipe.ranking", 1)

	v.SetDefault("translation.base_url", "https://libretranslate.de")
	v.SetDefault("translation.api_key", "")
	v.SetDefault("translation.source_language", "auto")
	v.SetDefault("translation.target_language", "en")
	v.SetDefault("translation.concurrency", 4)
	v.SetDefault("translation.timeout", "10s")

	v.SetDefault("ml.base_url", "http://localhost:8000")
	v.SetDefault("ml.timeout", "30s")

	v.SetDefault("cors.frontend_url", "https://capstone-project-smart-pantry-chef.vercel.app")

	v.SetDefault("upload.max_bytes", 10*1024*1024) // 10MB

	v.SetDefault("log.level", "info")
	v.SetDefault("log.mode", "")
	v.SetDefault("log.file", "")
}

func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.env", "APP_ENV", "NODE_ENV")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.mongo_url", "MONGO_URL")
	v.BindEnv("database.mongo_database", "MONGO_DATABASE")
	v.BindEnv("database.dsn", "DATABASE_DSN")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_ttl", "JWT_TTL")
	v.BindEnv("recipe.api_key", "SPOONACULAR_API_KEY")
	v.BindEnv("recipe.base_url", "SPOONACULAR_BASE_URL")
	v.BindEnv("recipe.timeout", "RECIPE_TIMEOUT")
	v.BindEnv("recipe.result_count", "RECIPE_RESULT_COUNT")
	v.BindEnv("recipe.ranking", "RECIPE_RANKING")
	v.BindEnv("translation.base_url", "LIBRETRANSLATE_URL")
	v.BindEnv("translation.api_key", "LIBRETRANSLATE_API_KEY")
	v.BindEnv("translation.source_language", "TRANSLATION_SOURCE")
	v.BindEnv("translation.target_language", "TRANSLATION_TARGET")
	v.BindEnv("translation.concurrency", "TRANSLATION_CONCURRENCY")
	v.BindEnv("translation.timeout", "TRANSLATION_TIMEOUT")
	v.BindEnv("ml.base_url", "ML_SERVICE_URL")
	v.BindEnv("ml.timeout", "ML_TIMEOUT")
	v.BindEnv("cors.frontend_url", "FRONTEND_URL")
	v.BindEnv("upload.max_bytes", "MAX_UPLOAD_BYTES")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.mode", "LOG_MODE")
	v.BindEnv("log.file", "LOG_FILE")
}

func normalize(config *Config) {
	config.Database.Driver = strings.ToLower(strings.TrimSpace(config.Database.Driver))
	config.Recipe.BaseURL = strings.TrimRight(config.Recipe.BaseURL, "/")
	config.Translation.BaseURL = strings.TrimRight(config.Translation.BaseURL, "/")
	config.ML.BaseURL = strings.TrimRight(config.ML.BaseURL, "/")
	if config.Auth.JWTSecret == "" {
		config.Auth.JWTSecret = DefaultJWTSecret
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Database.Driver {
	case "mongo":
	case "postgres", "sqlite":
		if config.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %q", config.Database.Driver)
		}
	default:
		return fmt.Errorf("unknown database driver %q", config.Database.Driver)
	}

	if config.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid token ttl")
	}
	if config.Recipe.Timeout <= 0 {
		return fmt.Errorf("invalid recipe timeout")
	}
	if config.Recipe.ResultCount <= 0 {
		return fmt.Errorf("invalid recipe result count")
	}
	if config.Translation.Concurrency <= 0 {
		return fmt.Errorf("invalid translation concurrency")
	}
	if config.Translation.TargetLanguage == "" {
		return fmt.Errorf("translation target language is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return fmt.Errorf("invalid upload size limit")
	}

	return nil
}
