// Package config loads the runner's own settings from multiple sources (a YAML
// file, JSONPROPS_* environment variables, CLI flags) with precedence: CLI
// flags > Environment variables > YAML config > Defaults. These settings
// decide where application configuration files are searched for; the files
// themselves are handled by the bootstrap package.
package config
