// Package config loads processor configuration from the environment
// and an optional YAML file, with struct-tag validation. Environment
// variables use the SLEEP_ prefix and take precedence over file values.
package config
