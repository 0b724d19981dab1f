package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/weiawesome/neurolab/pkg/config"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Chat      ChatConfig
	Analytics AnalyticsConfig
	CORS      CORSConfig `mapstructure:"cors"`
	Profile   ProfileConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

// RedisConfig configures the analytics cache. An empty Address keeps the
// cache in process.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// ChatConfig controls the shape and latency of chat replies.
// Mode is "chunks" or "single".
type ChatConfig struct {
	Mode       string        `mapstructure:"mode"`
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
}

type AnalyticsConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProfileConfig names the profile served to requests without X-User-ID.
type ProfileConfig struct {
	DefaultUserID string `mapstructure:"default_user_id"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from path, or from ./config/config.yaml when
// path is empty.
func Load(path string) (*Config, error) {
	var (
		v   *viper.Viper
		err error
	)
	if path != "" {
		v, err = pkgconfig.LoadFile(path)
	} else {
		v, err = pkgconfig.Load("./config", "config")
	}
	if err != nil {
		return nil, err
	}

	setDefaults(v)

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("chat.mode", "CHAT_MODE")
	v.BindEnv("chat.reply_delay", "CHAT_REPLY_DELAY")
	v.BindEnv("analytics.delay", "ANALYTICS_DELAY")
	v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "neurolab")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.log_level", "silent")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.prefix", "neurolab")
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("chat.mode", "chunks")
	v.SetDefault("chat.reply_delay", "800ms")
	v.SetDefault("analytics.delay", "1s")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("profile.default_user_id", "user-1")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}
