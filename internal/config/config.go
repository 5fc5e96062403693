package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 REELVIEW_SERVER_ADDR
const EnvPrefix = "REELVIEW"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	I18n   I18nConfig   `mapstructure:"i18n"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Stats  StatsConfig  `mapstructure:"stats"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error dpanic panic fatal"`
	Path       string `mapstructure:"path" validate:"required"`
	MaxSize    int    `mapstructure:"max_size" validate:"gt=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

type I18nConfig struct {
	Locales              []string    `mapstructure:"locales" validate:"min=1,dive,required"`
	DefaultLocale        string      `mapstructure:"default_locale" validate:"required"`
	PrefixMode           string      `mapstructure:"prefix_mode" validate:"oneof=as-needed always never"`
	UnknownPrefix        string      `mapstructure:"unknown_prefix" validate:"oneof=default not-found"`
	ExcludePattern       string      `mapstructure:"exclude_pattern"`
	LocaleSegmentPattern string      `mapstructure:"locale_segment_pattern"`
	CookieName           string      `mapstructure:"cookie_name"`
	Source               string      `mapstructure:"source" validate:"oneof=file database"`
	BundleDir            string      `mapstructure:"bundle_dir"`
	Overrides            bool        `mapstructure:"overrides"`
	HealthCheckCron      string      `mapstructure:"health_check_cron"`
	Cache                CacheConfig `mapstructure:"cache"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type DBConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn" validate:"required_if=Enabled true"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
}

type StatsConfig struct {
	FlushCron string `mapstructure:"flush_cron"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "logs/reelview-admin.log")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("i18n.locales", []string{"en", "hi"})
	v.SetDefault("i18n.default_locale", "en")
	v.SetDefault("i18n.prefix_mode", "as-needed")
	v.SetDefault("i18n.unknown_prefix", "default")
	v.SetDefault("i18n.cookie_name", "REELVIEW_LOCALE")
	v.SetDefault("i18n.source", "file")
	v.SetDefault("i18n.health_check_cron", "*/10 * * * *")
	v.SetDefault("i18n.cache.ttl", 10*time.Minute)
	v.SetDefault("stats.flush_cron", "*/10 * * * *")
}

// Load 从 dir 读取 config.yaml，应用默认值和 REELVIEW_* 环境变量并校验。
// 返回的配置在进程生命周期内不再变化
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验字段规则及跨配置段的规则
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.I18n.Source == "database" && !c.DB.Enabled {
		return errors.New("invalid config: i18n.source=database requires db.enabled")
	}
	if c.I18n.Overrides && !c.DB.Enabled {
		return errors.New("invalid config: i18n.overrides requires db.enabled")
	}
	if c.I18n.Cache.Enabled && !c.Redis.Enabled {
		return errors.New("invalid config: i18n.cache.enabled requires redis.enabled")
	}
	return nil
}
