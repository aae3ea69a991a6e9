// Package config provides configuration management for settingsexporter.
//
// Configuration is loaded from multiple sources and merged in a specific
// order, with later sources overriding earlier ones.
//
// # Configuration Layers
//
//  1. Default Configuration (embedded in binary)
//
//  2. User Configuration (~/.config/settingsexporter/config.yaml)
//     - Personal preferences that apply everywhere
//
//  3. Project Configuration (./.settingsexporter/config.yaml)
//     - Settings for the current directory, e.g. a shared printer farm checkout
//
// A single directory can also be loaded on top of the defaults with
// LoadConfigFromPath, which skips the user and project layers.
//
// # Configuration Structure
//
//	globalSettings:
//	  logLevel: info
//
//	store:
//	  machinesDir: ~/.local/share/settingsexporter/machines
//	  activeMachine: ultimaker_s5
//
//	export:
//	  defaultDirectory: ${HOME}/exports
//	  defaultFileName: settings.json
//	  stringifyResolved: false
//	  prompt: tui   # or "survey"
//
// Path values expand environment variables and a leading "~".
package config
