package config

import (
	"github.com/arthur-debert/varsub/pkg/errors"
)

// Store drivers accepted by the store key
const (
	StoreAfero = "afero"
	StoreBilly = "billy"
)

// Config is the effective varsub configuration
type Config struct {
	VariableFile string   `koanf:"variable_file" toml:"variable_file"`
	DebugPrint   bool     `koanf:"debug_print" toml:"debug_print"`
	BackupFolder string   `koanf:"backup_folder" toml:"backup_folder"`
	BackupEnable bool     `koanf:"backup_enable" toml:"backup_enable"`
	Extensions   []string `koanf:"extensions" toml:"extensions"`
	Recursive    bool     `koanf:"recursive" toml:"recursive"`
	Store        string   `koanf:"store" toml:"store"`
}

// Validate checks option combinations that cannot work
func (c *Config) Validate() error {
	if c.BackupEnable && c.BackupFolder == "" {
		return errors.New(errors.ErrConfigValid, "backup_folder must be set when backup_enable is true").
			WithDetail("key", "backup_folder")
	}
	switch c.Store {
	case StoreAfero, StoreBilly:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown store %q", c.Store).
			WithDetail("key", "store")
	}
	return nil
}
