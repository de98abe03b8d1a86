package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL         string
	Name        string
	MaxPoolSize int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	SecretKey                string
	AccessTokenExpireMinutes int
	PrimaryAdminEmail        string
}

// AccessTokenTTL is the session token lifetime derived from the
// ACCESS_TOKEN_EXPIRE_MINUTES setting.
func (c AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// AdminEmail returns the privileged email in normalized form.
func (c AuthConfig) AdminEmail() string {
	return strings.ToLower(strings.TrimSpace(c.PrimaryAdminEmail))
}

type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type ThrottleConfig struct {
	Window      time.Duration
	MaxAttempts int
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Database         DatabaseConfig
	Redis            RedisConfig
	Auth             AuthConfig
	AI               AIConfig
	Throttle         ThrottleConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PORTFOLIOPAL")
	v.AutomaticEnv()
	bindEnvAliases(v)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// bindEnvAliases maps the bare environment variable names the deployment
// uses onto their config keys.
func bindEnvAliases(v *viper.Viper) {
	aliases := map[string]string{
		"environment":                   "ENVIRONMENT",
		"http.port":                     "PORT",
		"database.url":                  "DATABASE_URL",
		"database.name":                 "DATABASE_NAME",
		"redis.addr":                    "REDIS_ADDR",
		"redis.password":                "REDIS_PASSWORD",
		"auth.secretkey":                "SECRET_KEY",
		"auth.accesstokenexpireminutes": "ACCESS_TOKEN_EXPIRE_MINUTES",
		"auth.primaryadminemail":        "PRIMARY_ADMIN_EMAIL",
		"ai.apikey":                     "OPENAI_API_KEY",
		"ai.baseurl":                    "OPENAI_BASE_URL",
		"ai.model":                      "OPENAI_MODEL",
	}
	for key, env := range aliases {
		_ = v.BindEnv(key, env)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("database.url", "mongodb://localhost:27017")
	v.SetDefault("database.name", "portfolio_pal")
	v.SetDefault("database.maxpoolsize", 30)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.secretkey", "dev-secret-change-me")
	v.SetDefault("auth.accesstokenexpireminutes", 60)
	v.SetDefault("auth.primaryadminemail", "myemail@domain.com")

	v.SetDefault("ai.baseurl", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", "30s")

	v.SetDefault("throttle.window", "1m")
	v.SetDefault("throttle.maxattempts", 10)
}
