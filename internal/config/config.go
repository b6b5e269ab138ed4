package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Library  LibraryConfig  `mapstructure:"library"`
	Grouping GroupingConfig `mapstructure:"grouping"`
	Renumber RenumberConfig `mapstructure:"renumber"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	Scanner  ScannerConfig  `mapstructure:"scanner"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug or release
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type LibraryConfig struct {
	StartDir        string   `mapstructure:"start_dir"` // 空 = 用户主目录
	VideoExtensions []string `mapstructure:"video_extensions"`
}

type GroupingConfig struct {
	ChunkSize int    `mapstructure:"chunk_size"`
	Strategy  string `mapstructure:"strategy"` // auto, chunk, boundary, year
}

type RenumberConfig struct {
	MinEpisode int `mapstructure:"min_episode"`
}

type MetadataConfig struct {
	Proxy           string        `mapstructure:"proxy"`
	Timeout         time.Duration `mapstructure:"timeout"`
	TVDBAPIKey      string        `mapstructure:"tvdb_api_key"`
	TMDBToken       string        `mapstructure:"tmdb_token"`
	DefaultProvider string        `mapstructure:"default_provider"`
}

type ScannerConfig struct {
	SizeWorkers int `mapstructure:"size_workers"`
}

var AppConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8306)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/renamer.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("library.start_dir", "")
	v.SetDefault("library.video_extensions", []string{"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "m4v"})
	v.SetDefault("grouping.chunk_size", 12)
	v.SetDefault("grouping.strategy", "auto")
	v.SetDefault("renumber.min_episode", 1)
	v.SetDefault("metadata.proxy", "")
	v.SetDefault("metadata.timeout", 10*time.Second)
	v.SetDefault("metadata.tvdb_api_key", "")
	v.SetDefault("metadata.tmdb_token", "")
	v.SetDefault("metadata.default_provider", "tvmaze")
	v.SetDefault("scanner.size_workers", 4)
}

func LoadConfig(configPath string) error {
	v := viper.New()
	setDefaults(v)

	// 配置文件路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	// 环境变量替换 (使用 RENAMER_ 前缀)
	// 比如 RENAMER_SERVER_PORT=9090
	v.SetEnvPrefix("RENAMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("Config file not found, using defaults")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	AppConfig = cfg
	return nil
}
