// Package config loads and validates application settings from defaults, an
// optional YAML file, and TASKFORGE_-prefixed environment variables.
package config
