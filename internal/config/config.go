// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Objects   ObjectStorageConfig
	Analytics AnalyticsConfig
	Locale    LocaleConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
	APIToken       string
}

// StoreConfig selects which record store backs the application.
type StoreConfig struct {
	Backend     string // sql, local or remote
	LocalDriver string // file, redis or memory
	LocalPath   string
	LocalKey    string
	RemoteURL   string
	RemoteToken string
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

type CacheConfig struct {
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	LockTTLSecond int
}

type ObjectStorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type AnalyticsConfig struct {
	LowStockThreshold   int
	AssumedInitialStock int
}

type LocaleConfig struct {
	PhoneRegion string
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	BackendSQL    = "sql"
	BackendLocal  = "local"
	BackendRemote = "remote"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	LocalDriverFile   = "file"
	LocalDriverRedis  = "redis"
	LocalDriverMemory = "memory"
)

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults(viper.GetViper())

		// Read from environment variables
		viper.AutomaticEnv()

		instance = fromViper(viper.GetViper())
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER_API_TOKEN", "")

	v.SetDefault("STORE_BACKEND", BackendLocal)
	v.SetDefault("STORE_LOCAL_DRIVER", LocalDriverFile)
	v.SetDefault("STORE_LOCAL_PATH", "./data/agarbatti.json")
	v.SetDefault("STORE_LOCAL_KEY", "agarbatti:database")
	v.SetDefault("STORE_REMOTE_URL", "http://localhost:8080")
	v.SetDefault("STORE_REMOTE_TOKEN", "")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "agarbatti")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SQLITE_PATH", "./data/agarbatti.db")

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_LOCK_TTL_SECONDS", 10)

	v.SetDefault("OBJECT_STORAGE_ENABLED", false)
	v.SetDefault("OBJECT_STORAGE_ENDPOINT", "")
	v.SetDefault("OBJECT_STORAGE_ACCESS_KEY", "")
	v.SetDefault("OBJECT_STORAGE_SECRET_KEY", "")
	v.SetDefault("OBJECT_STORAGE_BUCKET", "agarbatti-snapshots")
	v.SetDefault("OBJECT_STORAGE_REGION", "us-east-1")
	v.SetDefault("OBJECT_STORAGE_USE_SSL", true)

	v.SetDefault("ANALYTICS_LOW_STOCK_THRESHOLD", 20)
	v.SetDefault("ANALYTICS_ASSUMED_INITIAL_STOCK", 200)

	v.SetDefault("LOCALE_PHONE_REGION", "IN")

	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LOG_FORMAT", "console")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			APIToken:       v.GetString("SERVER_API_TOKEN"),
		},
		Store: StoreConfig{
			Backend:     v.GetString("STORE_BACKEND"),
			LocalDriver: v.GetString("STORE_LOCAL_DRIVER"),
			LocalPath:   v.GetString("STORE_LOCAL_PATH"),
			LocalKey:    v.GetString("STORE_LOCAL_KEY"),
			RemoteURL:   v.GetString("STORE_REMOTE_URL"),
			RemoteToken: v.GetString("STORE_REMOTE_TOKEN"),
		},
		Database: DatabaseConfig{
			Driver:     v.GetString("DB_DRIVER"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			DBName:     v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
		},
		Cache: CacheConfig{
			RedisURL:      v.GetString("REDIS_URL"),
			RedisHost:     v.GetString("REDIS_HOST"),
			RedisPort:     v.GetString("REDIS_PORT"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			LockTTLSecond: v.GetInt("REDIS_LOCK_TTL_SECONDS"),
		},
		Objects: ObjectStorageConfig{
			Enabled:   v.GetBool("OBJECT_STORAGE_ENABLED"),
			Endpoint:  v.GetString("OBJECT_STORAGE_ENDPOINT"),
			AccessKey: v.GetString("OBJECT_STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("OBJECT_STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("OBJECT_STORAGE_BUCKET"),
			Region:    v.GetString("OBJECT_STORAGE_REGION"),
			UseSSL:    v.GetBool("OBJECT_STORAGE_USE_SSL"),
		},
		Analytics: AnalyticsConfig{
			LowStockThreshold:   v.GetInt("ANALYTICS_LOW_STOCK_THRESHOLD"),
			AssumedInitialStock: v.GetInt("ANALYTICS_ASSUMED_INITIAL_STOCK"),
		},
		Locale: LocaleConfig{
			PhoneRegion: v.GetString("LOCALE_PHONE_REGION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
