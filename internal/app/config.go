package app

// Config holds the application configuration
type Config struct {
	// ConfigPath is the topology file to load.
	ConfigPath string

	// Watch enables the config file watcher while running.
	Watch bool
}

// NewConfig creates a new application configuration
func NewConfig(configPath string, watch bool) *Config {
	return &Config{
		ConfigPath: configPath,
		Watch:      watch,
	}
}
