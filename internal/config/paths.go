package config

import (
	"fmt"
	"path/filepath"
)

// Dir is the directory, relative to an application's base directory, that
// holds its configuration files.
const Dir = "config"

// Path returns the configuration file for environment below baseDir.
func Path(baseDir, environment string) string {
	return filepath.Join(baseDir, Dir, fmt.Sprintf("config.%s.json", environment))
}

// ConnectorPath returns the configuration file of a data connector, which
// lives next to the application configuration.
func ConnectorPath(baseDir, handle, environment string) string {
	return filepath.Join(baseDir, Dir, fmt.Sprintf("%s.%s.json", handle, environment))
}

// BackupPath returns the path a backup of path taken at unixMillis is
// written to.
func BackupPath(path string, unixMillis int64) string {
	return fmt.Sprintf("%s-%d", path, unixMillis)
}
