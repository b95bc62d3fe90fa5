package config

import "time"

const (
	// DefaultConfigFile is the topology file looked up when --config is not set.
	DefaultConfigFile = "servicegraph.yaml"

	// DefaultStopTimeout is used when neither the file nor a service sets one.
	DefaultStopTimeout = 10 * time.Second
)

// GetDefaultConfig returns an empty configuration with defaults applied.
func GetDefaultConfig() Config {
	return Config{
		StopTimeout: DefaultStopTimeout,
	}
}

// applyDefaults fills in unset fields. Services inherit the file-wide stop
// timeout and default to the process kind.
func applyDefaults(cfg *Config) {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}
	for i := range cfg.Services {
		svc := &cfg.Services[i]
		if svc.Kind == "" {
			svc.Kind = ServiceKindProcess
		}
		if svc.StopTimeout <= 0 {
			svc.StopTimeout = cfg.StopTimeout
		}
	}
}
