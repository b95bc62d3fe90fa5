package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func process(name string, requires ...string) ServiceConfig {
	return ServiceConfig{Name: name, Kind: ServiceKindProcess, Command: []string{"/bin/" + name}, Requires: requires}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantErrs  []string
		wantCount int
	}{
		{
			name: "valid graph",
			cfg: Config{
				Targets: []string{"api"},
				Services: []ServiceConfig{
					process("db"),
					{Name: "backend", Kind: ServiceKindVirtual, Requires: []string{"db"}},
					process("api", "backend"),
				},
			},
		},
		{
			name: "self requirement is left to the graph",
			cfg:  Config{Services: []ServiceConfig{process("a", "a")}},
		},
		{
			name:      "empty name",
			cfg:       Config{Services: []ServiceConfig{process("")}},
			wantErrs:  []string{"services[0].name: is required"},
			wantCount: 1,
		},
		{
			name:      "name with spaces",
			cfg:       Config{Services: []ServiceConfig{process("my db")}},
			wantErrs:  []string{"cannot contain whitespace"},
			wantCount: 1,
		},
		{
			name:      "name too long",
			cfg:       Config{Services: []ServiceConfig{process(strings.Repeat("x", maxNameLength+1))}},
			wantErrs:  []string{"must not exceed"},
			wantCount: 1,
		},
		{
			name:      "duplicate name",
			cfg:       Config{Services: []ServiceConfig{process("db"), process("db")}},
			wantErrs:  []string{"service db: name: declared more than once"},
			wantCount: 1,
		},
		{
			name:      "unknown requirement",
			cfg:       Config{Services: []ServiceConfig{process("api", "db")}},
			wantErrs:  []string{`service api: requires: unknown service "db"`},
			wantCount: 1,
		},
		{
			name:      "repeated requirement",
			cfg:       Config{Services: []ServiceConfig{process("db"), process("api", "db", "db")}},
			wantErrs:  []string{`"db" listed more than once`},
			wantCount: 1,
		},
		{
			name:      "process without command",
			cfg:       Config{Services: []ServiceConfig{{Name: "db", Kind: ServiceKindProcess}}},
			wantErrs:  []string{"command: is required for process services"},
			wantCount: 1,
		},
		{
			name: "virtual with command",
			cfg: Config{Services: []ServiceConfig{
				{Name: "group", Kind: ServiceKindVirtual, Command: []string{"true"}},
			}},
			wantErrs:  []string{"not allowed for virtual services"},
			wantCount: 1,
		},
		{
			name:      "unknown kind",
			cfg:       Config{Services: []ServiceConfig{{Name: "db", Kind: "container", Command: []string{"x"}}}},
			wantErrs:  []string{"kind: must be one of"},
			wantCount: 1,
		},
		{
			name:      "unknown target",
			cfg:       Config{Targets: []string{"web"}, Services: []ServiceConfig{process("db")}},
			wantErrs:  []string{`targets: unknown service "web"`},
			wantCount: 1,
		},
		{
			name: "errors are collected",
			cfg: Config{Services: []ServiceConfig{
				process("api", "db", "cache"),
				{Name: "worker", Kind: ServiceKindProcess},
			}},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantCount == 0 {
				assert.NoError(t, err)
				return
			}

			var errs *ConfigurationErrorCollection
			require.True(t, errors.As(err, &errs), "got %v", err)
			assert.Equal(t, tt.wantCount, errs.Count())
			for _, want := range tt.wantErrs {
				assert.Contains(t, errs.Errors[0].Error(), want)
			}
			for _, e := range errs.Errors {
				assert.Equal(t, ErrorTypeValidation, e.ErrorType)
			}
		})
	}
}

func TestValidateEntityName(t *testing.T) {
	assert.NoError(t, ValidateEntityName("postgres-primary"))
	assert.Error(t, ValidateEntityName("  "))
	assert.Error(t, ValidateEntityName("a\tb"))
}
