package config

import (
	"errors"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/faize-ai/vagrant-helpers/internal/hostpath"
	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

// Config represents the vagrant-helpers CLI settings
type Config struct {
	Dir            string `mapstructure:"dir"`
	EnvFile        string `mapstructure:"env_file"`
	PathTranslator string `mapstructure:"path_translator"`
	LogFormat      string `mapstructure:"log_format"`

	v *viper.Viper
}

// Load reads settings from cfgFile, or ~/.vagrant-helpers/config.yaml when
// cfgFile is empty. A missing default config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := v.BindEnv("opts", opts.EnvOverride); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("VAGRANT_HELPERS")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := Config{v: v}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	dir, err := homedir.Expand(cfg.Dir)
	if err != nil {
		return nil, err
	}
	cfg.Dir = dir

	return &cfg, nil
}

// Viper exposes the underlying settings so flags can be bound to them.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

// Reload re-reads the settings after flags have been bound.
func (c *Config) Reload() error {
	fresh, err := fromViper(c.v)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// OptsOverride returns the options file override. It is read on every call
// so that a value loaded from the env file is seen.
func (c *Config) OptsOverride() string {
	return c.v.GetString("opts")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("dir", ".")
	v.SetDefault("env_file", ".env")
	v.SetDefault("opts", "")
	v.SetDefault("path_translator", hostpath.DefaultUtility)
	v.SetDefault("log_format", "text")
}

// ConfigDir returns the vagrant-helpers configuration directory path
func ConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vagrant-helpers"), nil
}
