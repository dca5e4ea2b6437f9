// Package config loads editor configuration.
//
// Configuration comes from three sources, later ones overriding earlier
// ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. INKWELL_* environment variables
//
// Example TOML:
//
//	[history]
//	max_undo = 200
//
//	[composition]
//	timeout = "2s"
//
//	[logging]
//	level = "debug"
//	format = "json"
package config
