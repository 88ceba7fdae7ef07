package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Only hard requirements are enforced here; optional subsystems (Drive
// backups, the purge worker) degrade gracefully when unconfigured.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	// a purge interval without a retention window would delete fresh tombstones
	if cfg.Workers.PurgeInterval != 0 && cfg.Workers.PurgeRetention == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
