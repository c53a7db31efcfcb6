package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Mode     string `mapstructure:"mode" validate:"oneof=debug release test"`
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	Profile  string `mapstructure:"profile" validate:"oneof=local prod"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`

	ReadLimit    int64         `mapstructure:"read_limit" validate:"min=512"`
	PingPeriod   time.Duration `mapstructure:"ping_period" validate:"min=1ms"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"min=1ms"`
	SendBuffer   int           `mapstructure:"send_buffer" validate:"min=1"`

	RoomIDLength       int    `mapstructure:"room_id_length" validate:"min=4,max=32"`
	MaxMembers         int    `mapstructure:"max_members" validate:"min=0"`
	BackpressurePolicy string `mapstructure:"backpressure_policy" validate:"oneof=kick drop"`

	UsernameServiceURL string        `mapstructure:"username_service_url" validate:"omitempty,url"`
	UsernameTimeout    time.Duration `mapstructure:"username_timeout" validate:"min=1ms"`

	CreateLimit    int           `mapstructure:"create_limit" validate:"min=1"`
	CreateInterval time.Duration `mapstructure:"create_interval" validate:"min=1ms"`
	// TrustedProxies lists the proxies whose X-Forwarded-For is believed.
	// Empty means the peer address is always the client.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,cidr|ip"`
}

// WSPath is the last path segment of the websocket endpoint.
func (c *Config) WSPath() string {
	if c.Profile == "prod" {
		return "wss"
	}
	return "ws"
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("rooms", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file, overrides CONFIG_ENV lookup")
	fs.Int("port", 8001, "http listen port")
	fs.String("profile", "local", "deployment profile: local or prod")
	fs.String("log-level", "info", "log level")
	fs.String("mode", "release", "gin mode: debug, release or test")
	return fs
}

func Load(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8001)
	v.SetDefault("profile", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("write_timeout", "5s")
	v.SetDefault("send_buffer", 32)
	v.SetDefault("room_id_length", 7)
	v.SetDefault("max_members", 0)
	v.SetDefault("backpressure_policy", "kick")
	v.SetDefault("username_service_url", "")
	v.SetDefault("username_timeout", "2s")
	v.SetDefault("create_limit", 10)
	v.SetDefault("create_interval", "1m")
	v.SetDefault("trusted_proxies", []string{})

	v.SetEnvPrefix("ROOMS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"port":      "port",
		"profile":   "profile",
		"log_level": "log-level",
		"mode":      "mode",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	fileName, _ := fs.GetString("config")
	if fileName == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		fileName = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(fileName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("profile", cfg.Profile).Msg("config ready")
	return &cfg, nil
}
