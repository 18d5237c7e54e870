package internal

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is loaded from the environment by cmd/broker.
type Config struct {
	TCPAddr        string        `env:"TCP_ADDR,default=:9999" validate:"required"`
	WSAddr         string        `env:"WS_ADDR"` // empty disables the websocket transport
	StorageBackend string        `env:"STORAGE_BACKEND,default=disk" validate:"oneof=disk badger"`
	FilesDir       string        `env:"FILES_DIR,default=files"`
	BadgerFilepath string        `env:"BADGER_FILEPATH"`
	LogLevel       string        `env:"LOG_LEVEL,default=INFO" validate:"required"`
	DebugPort      int           `env:"DEBUG_PORT"` // 0 disables the debug endpoint
	MetricInterval time.Duration `env:"METRIC_INTERVAL,default=30s"`
}

var validate = validator.New()

// Validate applies the struct tags plus the cross-field rules the tags
// cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.StorageBackend == "badger" && c.BadgerFilepath == "" {
		return fmt.Errorf("BADGER_FILEPATH is required when STORAGE_BACKEND=badger")
	}
	if c.StorageBackend == "disk" && c.FilesDir == "" {
		return fmt.Errorf("FILES_DIR is required when STORAGE_BACKEND=disk")
	}
	return nil
}
