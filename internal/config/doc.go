// Package config loads and merges coderev configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CODEREV_PROVIDER, CODEREV_MODEL, CODEREV_FORMAT, etc.)
//  3. Config file ($XDG_CONFIG_HOME/coderev/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single key.
package config
