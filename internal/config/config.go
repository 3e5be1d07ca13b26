package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fallbacks substituted whenever a card has no usable thumbnail or video.
const (
	DefaultImageRoot        = "./images"
	DefaultThumbnailPath    = "./images/default-thumb.jpg"
	DefaultVideoURL         = "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4"
	DefaultMaxVisibleID     = 400
	DefaultRelatedLimit     = 12
	DefaultCatalogStatsCron = "@every 10m"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Cron    CronConfig    `mapstructure:"cron"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr  string `mapstructure:"http_addr"`
	StaticDir string `mapstructure:"static_dir"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type CronConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	CatalogStats string `mapstructure:"catalog_stats"`
}

// CatalogConfig bounds what the catalog exposes and which fallbacks it uses.
// MaxVisibleID is the inclusive upper bound of the visibility window.
type CatalogConfig struct {
	MaxVisibleID     int64  `mapstructure:"max_visible_id"`
	RelatedLimit     int    `mapstructure:"related_limit"`
	ImageRoot        string `mapstructure:"image_root"`
	DefaultThumbnail string `mapstructure:"default_thumbnail"`
	DefaultVideoURL  string `mapstructure:"default_video_url"`
}

// DefaultCatalog returns the catalog settings used when nothing is configured.
func DefaultCatalog() CatalogConfig {
	return CatalogConfig{
		MaxVisibleID:     DefaultMaxVisibleID,
		RelatedLimit:     DefaultRelatedLimit,
		ImageRoot:        DefaultImageRoot,
		DefaultThumbnail: DefaultThumbnailPath,
		DefaultVideoURL:  DefaultVideoURL,
	}
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":3001")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.auto_migrate", false)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.catalog_stats", DefaultCatalogStatsCron)
	v.SetDefault("catalog.max_visible_id", DefaultMaxVisibleID)
	v.SetDefault("catalog.related_limit", DefaultRelatedLimit)
	v.SetDefault("catalog.image_root", DefaultImageRoot)
	v.SetDefault("catalog.default_thumbnail", DefaultThumbnailPath)
	v.SetDefault("catalog.default_video_url", DefaultVideoURL)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
