package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	URL           string
	MaxConns      int32
	MongoDatabase string
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	Origins []string
}

// StoreDriver names the backing store derived from the database URL scheme.
type StoreDriver string

const (
	DriverPostgres StoreDriver = "postgres"
	DriverMongo    StoreDriver = "mongo"
	DriverMemory   StoreDriver = "memory"
)

// Driver picks the store implementation from the URL scheme.
func (c DatabaseConfig) Driver() (StoreDriver, error) {
	scheme, _, ok := strings.Cut(c.URL, "://")
	if !ok {
		return "", fmt.Errorf("database url has no scheme")
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "memory":
		return DriverMemory, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// LoadConfig reads path (an env file, optional) and then the process environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = ".env"
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "book-review")
	v.SetDefault("PORT", "4000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MONGO_DATABASE", "bookreview")
	v.SetDefault("CORS_ORIGINS", "*")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// no env file, environment only
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			URL:           v.GetString("DATABASE_URL"),
			MaxConns:      v.GetInt32("DB_MAX_CONNS"),
			MongoDatabase: v.GetString("MONGO_DATABASE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		CORS: CORSConfig{
			Origins: splitList(v.GetString("CORS_ORIGINS")),
		},
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("invalid config: JWT_SECRET is required")
	}
	if config.Database.URL == "" {
		return nil, fmt.Errorf("invalid config: DATABASE_URL is required")
	}
	if _, err := config.Database.Driver(); err != nil {
		return nil, fmt.Errorf("invalid config: DATABASE_URL: %w", err)
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
