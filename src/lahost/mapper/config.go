// Package mapper converts between wire requests, configuration, and the
// entity types used across the daemon.
package mapper

import (
	"fmt"

	"github.com/polder-ide/lahost/src/lahost/entity"
	"go.uber.org/config"
)

const (
	_defaultServerName = "vela-analyzer"
	_defaultChannel    = "stable"
)

// ConfigToServerConfig populates a ServerConfig from the config provider,
// applying defaults for the server name and release channel.
func ConfigToServerConfig(provider config.Provider) (entity.ServerConfig, error) {
	var cfg entity.ServerConfig
	if err := provider.Get(entity.ServerConfigKey).Populate(&cfg); err != nil {
		return entity.ServerConfig{}, fmt.Errorf("populating server config: %w", err)
	}
	if cfg.Name == "" {
		cfg.Name = _defaultServerName
	}
	if cfg.Channel == "" {
		cfg.Channel = _defaultChannel
	}
	return cfg, nil
}

// ConfigToFeaturesConfig populates a FeaturesConfig from the config provider.
func ConfigToFeaturesConfig(provider config.Provider) (entity.FeaturesConfig, error) {
	var cfg entity.FeaturesConfig
	if err := provider.Get(entity.FeaturesConfigKey).Populate(&cfg); err != nil {
		return entity.FeaturesConfig{}, fmt.Errorf("populating features config: %w", err)
	}
	return cfg, nil
}

// ConfigToDiscoveryConfig populates a DiscoveryConfig from the config provider.
func ConfigToDiscoveryConfig(provider config.Provider) (entity.DiscoveryConfig, error) {
	var cfg entity.DiscoveryConfig
	if err := provider.Get(entity.DiscoveryConfigKey).Populate(&cfg); err != nil {
		return entity.DiscoveryConfig{}, fmt.Errorf("populating discovery config: %w", err)
	}
	return cfg, nil
}

// ConfigToStatusBarConfig populates a StatusBarConfig from the config provider.
func ConfigToStatusBarConfig(provider config.Provider) (entity.StatusBarConfig, error) {
	var cfg entity.StatusBarConfig
	if err := provider.Get(entity.StatusBarConfigKey).Populate(&cfg); err != nil {
		return entity.StatusBarConfig{}, fmt.Errorf("populating statusBar config: %w", err)
	}
	return cfg, nil
}
