// Package config loads EM-loop settings from YAML via
// gopkg.in/yaml.v3, for callers that want to configure em.RunEM from a
// file instead of constructing an em.Config literal.
package config
