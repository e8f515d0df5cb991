package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"github.com/pushchain/svm-bridge/logger"
	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
	tokenbridgetypes "github.com/pushchain/svm-bridge/x/tokenbridge/types"
)

const (
	configSubdir   = "config"
	configFileName = "bridge_config.json"

	// EnvPrefix prefixes every environment override, e.g. BRIDGE_LOG_LEVEL.
	EnvPrefix = "BRIDGE"

	defaultLogLevel       = 1
	defaultLogFormat      = logger.FormatConsole
	defaultObserverDBDir  = "data"
	defaultObserverDBName = "observer.db"
	defaultMetricsAddr    = "127.0.0.1:9464"
	defaultFeeLamports    = 100
	defaultGuardianSetTTL = 86400
	defaultPayerLamports  = 1_000_000_000_000
)

func setDefaults(v *viper.Viper, basePath string) {
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_format", defaultLogFormat)
	v.SetDefault("log_sampler", false)
	v.SetDefault("observer_db_dir", filepath.Join(basePath, defaultObserverDBDir))
	v.SetDefault("observer_db_name", defaultObserverDBName)
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_addr", defaultMetricsAddr)
	v.SetDefault("core_bridge_program_id", corebridgetypes.DefaultProgramID.String())
	v.SetDefault("token_bridge_program_id", tokenbridgetypes.DefaultProgramID.String())
	v.SetDefault("fee_lamports", defaultFeeLamports)
	v.SetDefault("guardian_set_ttl_seconds", defaultGuardianSetTTL)
	v.SetDefault("payer_lamports", defaultPayerLamports)
}

func validateConfig(cfg *Config) error {
	// Validate log level
	if cfg.LogLevel < 0 || cfg.LogLevel > 5 {
		return fmt.Errorf("log level must be between 0 and 5")
	}

	// Validate log format
	if cfg.LogFormat != logger.FormatJSON && cfg.LogFormat != logger.FormatConsole {
		return fmt.Errorf("log format must be 'json' or 'console'")
	}

	// Set defaults for observer storage
	if cfg.ObserverDBDir == "" {
		cfg.ObserverDBDir = defaultObserverDBDir
	}
	if cfg.ObserverDBName == "" {
		cfg.ObserverDBName = defaultObserverDBName
	}

	if cfg.MetricsEnabled && cfg.MetricsAddr == "" {
		cfg.MetricsAddr = defaultMetricsAddr
	}

	// Set defaults for program IDs
	if cfg.CoreBridgeProgramID == "" {
		cfg.CoreBridgeProgramID = corebridgetypes.DefaultProgramID.String()
	}
	if cfg.TokenBridgeProgramID == "" {
		cfg.TokenBridgeProgramID = tokenbridgetypes.DefaultProgramID.String()
	}
	core, token, err := cfg.ProgramIDs()
	if err != nil {
		return err
	}
	if core.Equals(token) {
		return fmt.Errorf("core bridge and token bridge program IDs must differ")
	}

	if cfg.GuardianSetTTLSeconds == 0 {
		cfg.GuardianSetTTLSeconds = defaultGuardianSetTTL
	}
	return nil
}

// ProgramIDs decodes the configured core and token bridge program IDs.
func (c Config) ProgramIDs() (core, token solana.PublicKey, err error) {
	core, err = solana.PublicKeyFromBase58(c.CoreBridgeProgramID)
	if err != nil {
		return core, token, fmt.Errorf("invalid core bridge program ID %q: %w", c.CoreBridgeProgramID, err)
	}
	token, err = solana.PublicKeyFromBase58(c.TokenBridgeProgramID)
	if err != nil {
		return core, token, fmt.Errorf("invalid token bridge program ID %q: %w", c.TokenBridgeProgramID, err)
	}
	return core, token, nil
}

func configFile(basePath string) string {
	return filepath.Join(basePath, configSubdir, configFileName)
}

// Save writes the given config to <basePath>/config/bridge_config.json.
func Save(cfg *Config, basePath string) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	configDir := filepath.Join(basePath, configSubdir)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_format", cfg.LogFormat)
	v.Set("log_sampler", cfg.LogSampler)
	v.Set("observer_db_dir", cfg.ObserverDBDir)
	v.Set("observer_db_name", cfg.ObserverDBName)
	v.Set("metrics_enabled", cfg.MetricsEnabled)
	v.Set("metrics_addr", cfg.MetricsAddr)
	v.Set("core_bridge_program_id", cfg.CoreBridgeProgramID)
	v.Set("token_bridge_program_id", cfg.TokenBridgeProgramID)
	v.Set("fee_lamports", cfg.FeeLamports)
	v.Set("guardian_set_ttl_seconds", cfg.GuardianSetTTLSeconds)
	v.Set("payer_lamports", cfg.PayerLamports)

	if err := v.WriteConfigAs(configFile(basePath)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load builds the config from defaults, <basePath>/config/bridge_config.json
// when present, and BRIDGE_* environment variables, in increasing precedence.
func Load(basePath string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v, basePath)

	file := configFile(basePath)
	if _, err := os.Stat(file); err == nil {
		v.SetConfigFile(file)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
