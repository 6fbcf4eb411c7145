package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite cache database
	LogDir   string // Log file directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "repcache.db"),
		LogDir:   filepath.Join(cfg.BaseDir, "logs"),
	}
}

// DefaultBaseDir returns the default base directory under the XDG data
// home (e.g. ~/.local/share/repcache).
func DefaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "repcache")
}
