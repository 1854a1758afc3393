package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config file path is required (use -config or -c)")
	}

	// Read and parse YAML
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&config)
	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvDBHost        = "DASHBOARD_DB_HOST"
	EnvDBPort        = "DASHBOARD_DB_PORT"
	EnvDBUsername    = "DASHBOARD_DB_USERNAME"
	EnvDBPassword    = "DASHBOARD_DB_PASSWORD"
	EnvDBDatabase    = "DASHBOARD_DB_DATABASE"
	EnvSnapshotPath  = "DASHBOARD_DATA_SNAPSHOT_PATH"
	EnvRedisAddress  = "DASHBOARD_REDIS_ADDRESS"
	EnvRedisUsername = "DASHBOARD_REDIS_USERNAME"
	EnvRedisPassword = "DASHBOARD_REDIS_PASSWORD"
)

// applyEnvironmentOverrides lets secrets come from the environment
// instead of the config file. Database overrides apply to the active
// connection named by data.connection.
func applyEnvironmentOverrides(config *Config) {
	conn, hasConn := config.Connections[config.Data.Connection]

	if hasConn {
		if host := os.Getenv(EnvDBHost); host != "" {
			conn.Host = host
		}

		if port := os.Getenv(EnvDBPort); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				conn.Port = p
			}
		}

		if username := os.Getenv(EnvDBUsername); username != "" {
			conn.Username = username
		}

		if password := os.Getenv(EnvDBPassword); password != "" {
			conn.Password = password
		}

		if database := os.Getenv(EnvDBDatabase); database != "" {
			conn.Database = database
		}

		config.Connections[config.Data.Connection] = conn
	}

	if snapshotPath := os.Getenv(EnvSnapshotPath); snapshotPath != "" {
		config.Data.SnapshotPath = snapshotPath
	}

	if redisAddress := os.Getenv(EnvRedisAddress); redisAddress != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Address = redisAddress
	}

	if redisUsername := os.Getenv(EnvRedisUsername); redisUsername != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Username = redisUsername
	}

	if redisPassword := os.Getenv(EnvRedisPassword); redisPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Password = redisPassword
	}
}

func applyDefaults(config *Config) {
	if config.Server.Port == 0 {
		config.Server.Port = DefaultServerConfig.Port
	}

	if config.Server.Debug != nil {
		if config.Server.Debug.Host == "" {
			config.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if config.Server.Debug.Port == 0 {
			config.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	if config.Log.Level == "" {
		config.Log.Level = DefaultLogConfig.Level
	}

	if config.Log.Format == "" {
		config.Log.Format = DefaultLogConfig.Format
	}

	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = DefaultCORSConfig.AllowedOrigins
	}

	if len(config.CORS.AllowedMethods) == 0 {
		config.CORS.AllowedMethods = DefaultCORSConfig.AllowedMethods
	}

	if len(config.CORS.AllowedHeaders) == 0 {
		config.CORS.AllowedHeaders = DefaultCORSConfig.AllowedHeaders
	}

	if config.CORS.MaxAgeSeconds == 0 {
		config.CORS.MaxAgeSeconds = DefaultCORSConfig.MaxAgeSeconds
	}

	if config.Data.Connection == "" {
		config.Data.Connection = DefaultDataConfig.Connection
	}

	if config.Data.SnapshotPath == "" {
		config.Data.SnapshotPath = DefaultDataConfig.SnapshotPath
	}

	if config.Data.MissingRegionLabel == "" {
		config.Data.MissingRegionLabel = DefaultDataConfig.MissingRegionLabel
	}

	if config.Data.ErrorRegionLabel == "" {
		config.Data.ErrorRegionLabel = DefaultDataConfig.ErrorRegionLabel
	}

	if config.Cache.Type == "" {
		config.Cache.Type = DefaultCacheConfig.Type
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", config.Server.Port)
	}

	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.Log.Level)
	}

	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", config.Log.Format)
	}

	switch config.Cache.Type {
	case "memory":
	case "redis":
		if config.Redis == nil || config.Redis.Address == "" {
			return fmt.Errorf("cache type is redis but no redis address is configured")
		}
	default:
		return fmt.Errorf("unknown cache type %q", config.Cache.Type)
	}

	if config.Data.UniverseSize < 0 {
		return fmt.Errorf("data universe_size must not be negative")
	}

	// A missing connection entry is deliberately NOT a validation
	// error: it is reported when a refresh is attempted, so the
	// dashboard can still start and explain what is wrong.

	return nil
}
