package config

// Config is the off-chain configuration shared by bridgectl and the observer.
type Config struct {
	// Logging
	LogLevel   int    `json:"log_level" mapstructure:"log_level"`
	LogFormat  string `json:"log_format" mapstructure:"log_format"`
	LogSampler bool   `json:"log_sampler" mapstructure:"log_sampler"`

	// Observer storage
	ObserverDBDir  string `json:"observer_db_dir" mapstructure:"observer_db_dir"`
	ObserverDBName string `json:"observer_db_name" mapstructure:"observer_db_name"`

	// Metrics
	MetricsEnabled bool   `json:"metrics_enabled" mapstructure:"metrics_enabled"`
	MetricsAddr    string `json:"metrics_addr" mapstructure:"metrics_addr"`

	// Programs, base58 encoded
	CoreBridgeProgramID  string `json:"core_bridge_program_id" mapstructure:"core_bridge_program_id"`
	TokenBridgeProgramID string `json:"token_bridge_program_id" mapstructure:"token_bridge_program_id"`

	// Local ledger genesis used by simulate
	FeeLamports           uint64 `json:"fee_lamports" mapstructure:"fee_lamports"`
	GuardianSetTTLSeconds uint32 `json:"guardian_set_ttl_seconds" mapstructure:"guardian_set_ttl_seconds"`
	PayerLamports         uint64 `json:"payer_lamports" mapstructure:"payer_lamports"`
}
