package config

import "time"

// WatchConfig holds the design sheet watcher configuration
type WatchConfig struct {
	// Directory holding *.toml design sheets
	Dir string `mapstructure:"dir" validate:"required"`

	// Quiet period before a burst of writes is handled
	Debounce time.Duration `mapstructure:"debounce" validate:"min=10ms,max=1m"`

	// Lock file guarding against two watchers on the same database
	LockFile string `mapstructure:"lock_file" validate:"required"`
}
