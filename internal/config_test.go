package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		TCPAddr:        ":9999",
		StorageBackend: "disk",
		FilesDir:       "files",
		LogLevel:       "INFO",
		MetricInterval: 30 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	req := require.New(t)

	req.NoError(validConfig().Validate())
}

func TestConfig_Validate_UnknownBackend(t *testing.T) {
	req := require.New(t)
	cfg := validConfig()
	cfg.StorageBackend = "s3"

	req.Error(cfg.Validate())
}

func TestConfig_Validate_BadgerNeedsFilepath(t *testing.T) {
	req := require.New(t)
	cfg := validConfig()
	cfg.StorageBackend = "badger"

	req.Error(cfg.Validate())

	cfg.BadgerFilepath = "/tmp/docsync-badger"
	req.NoError(cfg.Validate())
}

func TestConfig_Validate_DiskNeedsDir(t *testing.T) {
	req := require.New(t)
	cfg := validConfig()
	cfg.FilesDir = ""

	req.Error(cfg.Validate())
}
