// Package config loads host configuration for the sgoctl tool.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sgo-ml/sgo/internal/pluginmodule"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "SGO"

	// Config keys.
	cfgKeyPluginDir          = "plugin_dir"
	cfgKeyLogLevel           = "log_level"
	cfgKeyWatchEnabled       = "watch.enabled"
	cfgKeyWatchDebounceDelay = "watch.debounce_delay"
	cfgKeyWatchExclude       = "watch.exclude_patterns"

	defaultPluginDir = "plugins"
	defaultLogLevel  = "info"
)

// Config is the host configuration.
type Config struct {
	PluginDir string                   `mapstructure:"plugin_dir"`
	LogLevel  string                   `mapstructure:"log_level"`
	Watch     pluginmodule.WatchConfig `mapstructure:"watch"`
}

// PluginModuleConfig derives the plugin module configuration.
func (c *Config) PluginModuleConfig() *pluginmodule.Config {
	return &pluginmodule.Config{
		PluginDir: c.PluginDir,
		Watch:     c.Watch,
	}
}

// Load reads configuration with the usual precedence: explicit file, then
// SGO_* environment variables, then defaults. When configFile is empty the
// current directory and ~/.sgo are searched; a missing config file is not an
// error.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	watchDefaults := pluginmodule.DefaultWatchConfig()
	v.SetDefault(cfgKeyPluginDir, defaultPluginDir)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyWatchEnabled, watchDefaults.Enabled)
	v.SetDefault(cfgKeyWatchDebounceDelay, watchDefaults.DebounceDelay)
	v.SetDefault(cfgKeyWatchExclude, watchDefaults.ExcludePatterns)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.sgo")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Watch.DebounceDelay <= 0 {
		cfg.Watch.DebounceDelay = 500 * time.Millisecond
	}
	return &cfg, nil
}
