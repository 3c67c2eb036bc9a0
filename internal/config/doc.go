// Package config provides the configuration for cmdlog.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← CMDLOG_HISTORY_MAX_SIZE=500
//	├─────────────────────────────┤
//	│  2. Config File             │  ← cmdlog.toml or cmdlog.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command-line flags are applied by the caller on top of the result.
//
// # Sub-packages
//
//   - loader: Configuration file loading (TOML, YAML, environment variables)
//   - watcher: File watching for live reload
//
// # Example File
//
//	[history]
//	max_size = 1000
//
//	[logging]
//	level = "info"
//
//	[script]
//	call_limit = 1000000
//	timeout = "5s"
package config
