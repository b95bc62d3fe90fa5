package config

import (
	"fmt"
	"strings"
)

// maxNameLength bounds service names so they stay readable in tables and logs.
const maxNameLength = 100

// ValidateEntityName validates that a service name follows proper conventions
func ValidateEntityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("must not exceed %d characters", maxNameLength)
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("cannot contain whitespace")
	}
	return nil
}

// Validate checks the structure of the config: unique well-formed names,
// requirements that refer to declared services, and a command for every
// process service. Cycles are not checked here; building the dependency
// graph rejects them. A non-nil result is a *ConfigurationErrorCollection.
func (c Config) Validate() error {
	errs := NewConfigurationErrorCollection()
	add := func(service, field, message string, suggestions ...string) {
		errs.Add(ConfigurationError{
			FilePath:    c.Path,
			Service:     service,
			Field:       field,
			ErrorType:   ErrorTypeValidation,
			Message:     message,
			Suggestions: suggestions,
		})
	}

	declared := make(map[string]bool, len(c.Services))
	for i, svc := range c.Services {
		if err := ValidateEntityName(svc.Name); err != nil {
			add("", fmt.Sprintf("services[%d].name", i), err.Error())
			continue
		}
		if declared[svc.Name] {
			add(svc.Name, "name", "declared more than once", "rename one of the services")
			continue
		}
		declared[svc.Name] = true
	}

	for _, svc := range c.Services {
		if svc.Name == "" {
			continue
		}

		switch svc.Kind {
		case ServiceKindProcess:
			if len(svc.Command) == 0 || strings.TrimSpace(svc.Command[0]) == "" {
				add(svc.Name, "command", "is required for process services",
					"add a command", "or set kind: virtual to group requirements")
			}
		case ServiceKindVirtual:
			if len(svc.Command) > 0 {
				add(svc.Name, "command", "is not allowed for virtual services")
			}
		default:
			add(svc.Name, "kind", fmt.Sprintf("must be one of: %s, %s, got %q",
				ServiceKindProcess, ServiceKindVirtual, svc.Kind))
		}

		seen := make(map[string]bool, len(svc.Requires))
		for _, req := range svc.Requires {
			switch {
			case !declared[req]:
				add(svc.Name, "requires", fmt.Sprintf("unknown service %q", req))
			case seen[req]:
				add(svc.Name, "requires", fmt.Sprintf("%q listed more than once", req))
			}
			seen[req] = true
		}
	}

	for _, target := range c.Targets {
		if !declared[target] {
			add("", "targets", fmt.Sprintf("unknown service %q", target))
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
