// Package config loads, normalizes, and validates roulette configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY, optionally sourced from a .env file in the working directory.
// The Config type centralizes every knob the CLI and API server need, so the
// catalog credentials, request timeouts, and store location are discovered in
// one pass and threaded explicitly into the components that use them.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
