package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "unitforge.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "unitforge"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "unitforge"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.ServiceName == "" {
		cfg.Logging.ServiceName = "unitforge"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9464
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.PollInterval == 0 {
		cfg.Metrics.PollInterval = 30 * time.Second
	}

	// Campaign defaults; booleans are seeded through viper
	stock := DefaultCampaign()
	if cfg.Campaign.MaintenanceCycleDays == 0 {
		cfg.Campaign.MaintenanceCycleDays = stock.MaintenanceCycleDays
	}
	if cfg.Campaign.ClanPriceModifier == 0 {
		cfg.Campaign.ClanPriceModifier = stock.ClanPriceModifier
	}
	if len(cfg.Campaign.UsedPartValue) == 0 {
		cfg.Campaign.UsedPartValue = stock.UsedPartValue
	}
	if cfg.Campaign.DamagedPartValue == 0 {
		cfg.Campaign.DamagedPartValue = stock.DamagedPartValue
	}

	// Watch defaults
	if cfg.Watch.Dir == "" {
		cfg.Watch.Dir = "sheets"
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 250 * time.Millisecond
	}
	if cfg.Watch.LockFile == "" {
		cfg.Watch.LockFile = "unitforge-watch.pid"
	}
}
