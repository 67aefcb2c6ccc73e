package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/deftip/internal/dictionary"
	"github.com/at-ishikawa/deftip/internal/tooltip"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Tooltip    TooltipConfig    `mapstructure:"tooltip"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,origin"`
}

type DictionaryConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type CacheConfig struct {
	Expiry        time.Duration `mapstructure:"expiry" validate:"gt=0"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"gt=0"`
}

type TooltipConfig struct {
	AutoHide  time.Duration `mapstructure:"auto_hide" validate:"gt=0"`
	ServerURL string        `mapstructure:"server_url" validate:"required,url"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/deftip")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("dictionary.base_url", dictionary.DefaultBaseURL)
	v.SetDefault("dictionary.timeout", dictionary.DefaultTimeout)
	v.SetDefault("cache.expiry", dictionary.DefaultExpiry)
	v.SetDefault("cache.sweep_interval", dictionary.DefaultSweepInterval)
	v.SetDefault("tooltip.auto_hide", tooltip.DefaultAutoHide)
	v.SetDefault("tooltip.server_url", "http://localhost:8080")

	if err := v.BindEnv("server.port", "DEFTIP_PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind DEFTIP_PORT environment variable: %w", err)
	}
	if err := v.BindEnv("dictionary.base_url", "DEFTIP_DICTIONARY_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DEFTIP_DICTIONARY_URL environment variable: %w", err)
	}
	if err := v.BindEnv("tooltip.server_url", "DEFTIP_SERVER_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DEFTIP_SERVER_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
