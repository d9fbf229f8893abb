// Package config loads, validates, and normalizes boardhook's TOML
// configuration.
//
// Load resolves the config path (explicit flag, then the user config dir, then
// a project-local boardhook.toml), decodes on top of Default(), expands and
// absolutizes paths, and validates the result. Other packages receive a fully
// normalized *Config and never re-check these invariants.
package config
