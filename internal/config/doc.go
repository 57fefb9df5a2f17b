// Package config provides user configuration management for the devicepanel project.
//
// This package manages a YAML-based configuration file storing the account
// console connection (base URL and access token), the map rendering key, and
// application preferences. The configuration follows OS-specific conventions
// for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/devicepanel/config.yaml or $HOME/.config/devicepanel/config.yaml
//   - macOS: $HOME/.config/devicepanel/config.yaml
//   - Windows: %LOCALAPPDATA%\devicepanel\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.SetConsole("https://console.example.com/api", token)
//	registry.SetMapKey(mapKey)
//
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
