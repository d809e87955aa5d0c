package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable for local development.
const DefaultJWTSecret = "aparecida-web-dev-secret"

// EnvPrefix prefixes every environment override, e.g. APARECIDA_DATABASE_DSN.
const EnvPrefix = "APARECIDA"

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Site      SiteConfig      `mapstructure:"site" yaml:"site"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	CEP       CEPConfig       `mapstructure:"cep" yaml:"cep"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" yaml:"scheduler"`
}

type ServerConfig struct {
	Addr            string `mapstructure:"addr" yaml:"addr"`
	ReloadTemplates bool   `mapstructure:"reload_templates" yaml:"reload_templates"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" yaml:"driver"`
	DSN          string `mapstructure:"dsn" yaml:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
}

type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
	CookieSecure bool          `mapstructure:"cookie_secure" yaml:"cookie_secure"`
}

type StorageConfig struct {
	Root string `mapstructure:"root" yaml:"root"`
}

type SiteConfig struct {
	TimeZone string `mapstructure:"time_zone" yaml:"time_zone"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

type CEPConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type SchedulerConfig struct {
	BannerCleanupHour int `mapstructure:"banner_cleanup_hour" yaml:"banner_cleanup_hour"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			DSN:          "file:aparecida.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Auth: AuthConfig{
			JWTSecret: DefaultJWTSecret,
			TokenTTL:  24 * time.Hour,
		},
		Storage:   StorageConfig{Root: "./uploads"},
		Site:      SiteConfig{TimeZone: "America/Sao_Paulo"},
		Log:       LogConfig{Level: "info"},
		CEP:       CEPConfig{BaseURL: "https://viacep.com.br/ws", Timeout: 5 * time.Second},
		Scheduler: SchedulerConfig{BannerCleanupHour: 3},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.reload_templates", d.Server.ReloadTemplates)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)
	v.SetDefault("auth.cookie_secure", d.Auth.CookieSecure)
	v.SetDefault("storage.root", d.Storage.Root)
	v.SetDefault("site.time_zone", d.Site.TimeZone)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("cep.base_url", d.CEP.BaseURL)
	v.SetDefault("cep.timeout", d.CEP.Timeout)
	v.SetDefault("scheduler.banner_cleanup_hour", d.Scheduler.BannerCleanupHour)
}

// Load reads configuration with this precedence: environment
// (APARECIDA_*), the config file, defaults. An empty path looks for
// aparecida.yaml in the working directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("aparecida")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Scheduler.BannerCleanupHour < 0 || c.Scheduler.BannerCleanupHour > 23 {
		return fmt.Errorf("scheduler.banner_cleanup_hour must be 0-23, got %d", c.Scheduler.BannerCleanupHour)
	}
	if _, err := time.LoadLocation(c.Site.TimeZone); err != nil {
		return fmt.Errorf("site.time_zone: %w", err)
	}
	return nil
}

// Location resolves site.time_zone, falling back to UTC-3.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Site.TimeZone)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}
