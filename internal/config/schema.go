package config

type Config struct {
	Server      ServerConfig                `yaml:"server"`
	Log         LogConfig                   `yaml:"log"`
	CORS        CORSConfig                  `yaml:"cors"`
	Connections map[string]ConnectionConfig `yaml:"connections"`
	Data        DataConfig                  `yaml:"data"`
	Cache       CacheConfig                 `yaml:"cache"`
	Redis       *RedisConfig                `yaml:"redis"`
}

type ServerConfig struct {
	Port  int                `yaml:"port"`
	Debug *ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Port: 8080,
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedOrigins: []string{"http://localhost:5173"},
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders: []string{"*"},
	MaxAgeSeconds:  300,
}

// ConnectionConfig is one named data-source connection, looked up by
// Data.Connection. Mirrors the shape of a secrets-store entry.
type ConnectionConfig struct {
	Dialect  string `yaml:"dialect"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type DataConfig struct {
	// Connection names the entry in Connections used for refreshes.
	Connection string `yaml:"connection"`

	// SnapshotPath is where the CSV snapshot is written and read.
	SnapshotPath string `yaml:"snapshot_path"`

	// UniverseSize is the fixed number of known downloadable items,
	// used for the progress metric.
	UniverseSize int `yaml:"universe_size"`

	// MissingRegionLabel fills regions when no geocoder is available.
	MissingRegionLabel string `yaml:"missing_region_label"`

	// ErrorRegionLabel fills regions when the geocoder lookup failed.
	ErrorRegionLabel string `yaml:"error_region_label"`
}

var DefaultDataConfig = DataConfig{
	Connection:         "db_mysql",
	SnapshotPath:       "data.csv",
	MissingRegionLabel: "Unknown",
	ErrorRegionLabel:   "Geocoding Error",
}

type CacheConfig struct {
	Type string `yaml:"type"`
}

var DefaultCacheConfig = CacheConfig{
	Type: "memory",
}

type RedisConfig struct {
	Address    string `yaml:"address"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	CacheIndex int    `yaml:"cache_index"`
}
