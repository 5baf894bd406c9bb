package entity

// ServerConfigKey is the config provider key holding ServerConfig.
const ServerConfigKey = "server"

// FeaturesConfigKey is the config provider key holding FeaturesConfig.
const FeaturesConfigKey = "features"

// DiscoveryConfigKey is the config provider key holding DiscoveryConfig.
const DiscoveryConfigKey = "discovery"

// StatusBarConfigKey is the config provider key holding StatusBarConfig.
const StatusBarConfigKey = "statusBar"

// ServerConfig describes how to locate and launch the analysis server.
type ServerConfig struct {
	// Path is an explicit operator-provided binary override. Used verbatim
	// after tilde expansion, without any further validation.
	Path string `yaml:"path"`
	// Channel is the release channel, "stable" or "dev". On the dev channel
	// a missing override falls back to the bare name on $PATH.
	Channel string `yaml:"channel"`
	// Name is the server executable's bare name.
	Name string `yaml:"name"`
	// Version is the bundled server version this host distribution ships.
	Version string `yaml:"version"`
	// BundledDir is the directory holding the bundled server executable.
	BundledDir string `yaml:"bundledDir"`
	// ExtraEnv is merged over the daemon's own environment for both the
	// validity probe and the full launch.
	ExtraEnv map[string]string `yaml:"extraEnv"`
	// CheckOnSave is the initial check-on-save setting pushed to the server.
	CheckOnSave bool `yaml:"checkOnSave"`
}

// FeaturesConfig toggles the optional editor-side views fed by this daemon.
type FeaturesConfig struct {
	DependencyExplorer bool `yaml:"dependencyExplorer"`
	TestExplorer       bool `yaml:"testExplorer"`
}

// DiscoveryConfig names an external project-discovery runner, invoked when
// the server reports documents that belong to no indexed project.
type DiscoveryConfig struct {
	Runner string `yaml:"runner"`
}

// StatusBarConfig holds presentation choices owned by the user.
type StatusBarConfig struct {
	// ClickAction is the command bound to a plain click on the status item
	// while the server is healthy. "openLogs" or "stopServer".
	ClickAction string `yaml:"clickAction"`
}

// InitializationOptions is the immutable record sent to the server at launch.
// It is built once per start from the raw configuration plus an optional list
// of discovered projects; it is never mutated afterwards.
type InitializationOptions struct {
	CheckOnSave        bool                `json:"checkOnSave"`
	DetachedFiles      []string            `json:"detachedFiles,omitempty"`
	DiscoveredProjects []ProjectDescriptor `json:"discoveredProjects,omitempty"`
}

// ProjectDescriptor identifies one project reported by the discovery runner.
type ProjectDescriptor struct {
	Root  string   `json:"root"`
	Files []string `json:"files,omitempty"`
}
