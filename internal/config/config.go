package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"libretranslate/internal/language"
)

type Config struct {
	Translator TranslatorConfig `mapstructure:"translator"`
	Database   DatabaseConfig   `mapstructure:"database"`
	History    HistoryConfig    `mapstructure:"history"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

type TranslatorConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Format   string        `mapstructure:"format"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Source   string        `mapstructure:"source"`
	Target   string        `mapstructure:"target"`
}

// SourceLanguage returns the parsed default source language.
func (c TranslatorConfig) SourceLanguage() language.Language {
	l, _ := language.Parse(c.Source)
	return l
}

// TargetLanguage returns the parsed default target language.
func (c TranslatorConfig) TargetLanguage() language.Language {
	l, _ := language.Parse(c.Target)
	return l
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.libretranslate")
	}

	v.SetEnvPrefix("LIBRETRANSLATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("translator.endpoint", "https://libretranslate.com/translate")
	v.SetDefault("translator.format", "text")
	v.SetDefault("translator.timeout", "2m")
	v.SetDefault("translator.source", "en")
	v.SetDefault("translator.target", "es")
	v.SetDefault("database.path", "./libretranslate.db")
	v.SetDefault("history.enabled", true)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Resolve relative paths
	if !filepath.IsAbs(cfg.Database.Path) {
		cwd, _ := os.Getwd()
		cfg.Database.Path = filepath.Join(cwd, cfg.Database.Path)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Translator.Endpoint == "" {
		return errors.New("translator.endpoint must not be empty")
	}
	if c.Translator.Timeout <= 0 {
		return errors.Errorf("translator.timeout must be positive, got %s", c.Translator.Timeout)
	}
	if _, err := language.Parse(c.Translator.Source); err != nil {
		return errors.Wrap(err, "translator.source")
	}
	if _, err := language.Parse(c.Translator.Target); err != nil {
		return errors.Wrap(err, "translator.target")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}
