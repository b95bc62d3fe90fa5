package config

import "time"

// Config is the top-level structure of a servicegraph topology file.
type Config struct {
	// StopTimeout is the default grace period between SIGTERM and SIGKILL.
	StopTimeout time.Duration `yaml:"stopTimeout,omitempty"`
	// Targets are the services `run` starts when none are given.
	Targets  []string        `yaml:"targets,omitempty"`
	Services []ServiceConfig `yaml:"services"`

	// Path is the file the config was loaded from. Not part of the file.
	Path string `yaml:"-"`
}

// ServiceKind selects the implementation backing a service.
type ServiceKind string

const (
	ServiceKindProcess ServiceKind = "process"
	ServiceKindVirtual ServiceKind = "virtual"
)

// ServiceConfig declares one service and the services it requires.
type ServiceConfig struct {
	Name        string            `yaml:"name"`
	Kind        ServiceKind       `yaml:"kind,omitempty"`        // process (default) or virtual
	Command     []string          `yaml:"command,omitempty"`     // argv, each element a template
	Env         map[string]string `yaml:"env,omitempty"`         // extra environment, values are templates
	Dir         string            `yaml:"dir,omitempty"`         // working directory, relative to the config file
	Requires    []string          `yaml:"requires,omitempty"`    // names of required services, in start order
	StopTimeout time.Duration     `yaml:"stopTimeout,omitempty"` // overrides Config.StopTimeout
}

// IsVirtual reports whether the service has no process behind it.
func (s ServiceConfig) IsVirtual() bool {
	return s.Kind == ServiceKindVirtual
}

// Service returns the service called name.
func (c Config) Service(name string) (ServiceConfig, bool) {
	for _, svc := range c.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return ServiceConfig{}, false
}

// Names returns the service names in declaration order.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Services))
	for _, svc := range c.Services {
		names = append(names, svc.Name)
	}
	return names
}
