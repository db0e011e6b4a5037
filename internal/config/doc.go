// Package config loads, normalizes, and validates runeshot configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// DISCORD_TOKEN and RUN_ONCE. The Config type centralizes every knob the
// daemon and CLI need so the screenshot directory, ledger location, and
// Discord credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
