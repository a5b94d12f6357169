package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("my-app", "config", "config.production.json"), Path("my-app", "production"))
	assert.Equal(t, filepath.Join("config", "config.development.json"), Path(".", "development"))
	assert.Equal(t, filepath.Join("my-app", "config", "mongodb.test.json"), ConnectorPath("my-app", "mongodb", "test"))
	assert.Equal(t, "config/config.test.json-1700000000000", BackupPath("config/config.test.json", 1700000000000))
}
