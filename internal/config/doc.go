// Package config loads servicegraph topology files.
//
// A topology file is a single YAML document declaring services and the
// services each one requires:
//
//	stopTimeout: 10s
//	targets: [api]
//	services:
//	  - name: db
//	    command: ["postgres", "-D", "{{ .ConfigDir }}/pgdata"]
//	    env:
//	      PGPORT: "5433"
//	  - name: backend
//	    kind: virtual
//	    requires: [db]
//	  - name: api
//	    command: ["./api", "--db-port", "{{ env \"PGPORT\" | default \"5432\" }}"]
//	    dir: ./api
//	    requires: [backend]
//	    stopTimeout: 5s
//
// # Loading
//
// LoadConfig reads the file, applies defaults (process kind, the file-wide
// stop timeout), validates the structure and renders templates. Unknown keys
// are rejected so that typos do not silently drop settings.
//
// # Validation
//
// Problems are collected into a ConfigurationErrorCollection rather than
// returned one at a time:
//
//	cfg, err := config.LoadConfig(path)
//	var errs *config.ConfigurationErrorCollection
//	if errors.As(err, &errs) {
//	    fmt.Println(errs.GetDetailedReport())
//	}
//
// Dependency cycles are not detected here. They surface when the dependency
// graph is built from the config.
//
// # Templates
//
// Command arguments, env values and dir are Go text/template strings with the
// sprig function library. Templates are executed against TemplateData, which
// exposes .Service and .ConfigDir. Relative dirs are resolved against the
// directory of the config file.
package config
