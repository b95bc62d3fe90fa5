package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateData is what command, env and dir templates are executed against.
type TemplateData struct {
	// Service is the name of the service being rendered.
	Service string
	// ConfigDir is the absolute directory of the topology file.
	ConfigDir string
}

// Render expands the templates of every service in cfg in place and resolves
// relative working directories against the config file's directory. Strings
// without template actions are left untouched. Errors are collected into a
// *ConfigurationErrorCollection.
func Render(cfg *Config) error {
	baseDir, err := filepath.Abs(cfg.BaseDir())
	if err != nil {
		return fmt.Errorf("cannot resolve config directory: %w", err)
	}

	errs := NewConfigurationErrorCollection()
	for i := range cfg.Services {
		svc := &cfg.Services[i]
		data := TemplateData{Service: svc.Name, ConfigDir: baseDir}

		fail := func(field string, err error) {
			errs.Add(ConfigurationError{
				FilePath:  cfg.Path,
				Service:   svc.Name,
				Field:     field,
				ErrorType: ErrorTypeTemplate,
				Message:   err.Error(),
			})
		}

		for j, arg := range svc.Command {
			out, err := renderString(arg, data)
			if err != nil {
				fail(fmt.Sprintf("command[%d]", j), err)
				continue
			}
			svc.Command[j] = out
		}

		for k, v := range svc.Env {
			out, err := renderString(v, data)
			if err != nil {
				fail("env."+k, err)
				continue
			}
			svc.Env[k] = out
		}

		if svc.Dir != "" {
			dir, err := renderString(svc.Dir, data)
			if err != nil {
				fail("dir", err)
				continue
			}
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(baseDir, dir)
			}
			svc.Dir = dir
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func renderString(text string, data TemplateData) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New(data.Service).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
