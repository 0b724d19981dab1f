package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/weiawesome/neurolab/pkg/config"
)

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Reveal RevealConfig `mapstructure:"reveal"`
	Scroll ScrollConfig `mapstructure:"scroll"`
	Log    LogConfig    `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	UserID  string        `mapstructure:"user_id"`
}

// RevealConfig holds the fixed reveal pauses.
type RevealConfig struct {
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	ChunkDelay   time.Duration `mapstructure:"chunk_delay"`
}

// ScrollConfig sets the auto-scroll threshold in logical units. One
// terminal line counts as LineHeight units.
type ScrollConfig struct {
	Threshold  int `mapstructure:"threshold"`
	LineHeight int `mapstructure:"line_height"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from path, or from ./config/config.yaml when
// path is empty. A missing default file is not an error.
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

	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.user_id", "")
	v.SetDefault("reveal.initial_delay", "1000ms")
	v.SetDefault("reveal.chunk_delay", "600ms")
	v.SetDefault("scroll.threshold", 100)
	v.SetDefault("scroll.line_height", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.file", "")

	// Bind environment variables
	v.BindEnv("api.base_url", "NEUROLAB_API_URL")
	v.BindEnv("api.user_id", "NEUROLAB_USER_ID")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.file", "LOG_FILE")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
