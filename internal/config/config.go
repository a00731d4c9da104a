package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Db             DbConfig             `mapstructure:"db"`
	Ledger         LedgerConfig         `mapstructure:"ledger"`
	Treasury       TreasuryConfig       `mapstructure:"treasury"`
	SecondaryChain SecondaryChainConfig `mapstructure:"secondary-chain"`
	Settlement     SettlementConfig     `mapstructure:"settlement"`
	Queue          QueueConfig          `mapstructure:"queue"`
	Metrics        MetricsConfig        `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Server.Validate(); err != nil {
		return err
	}

	if err := cfg.Db.Validate(); err != nil {
		return err
	}

	if err := cfg.Ledger.Validate(); err != nil {
		return fmt.Errorf("invalid ledger config: %w", err)
	}

	if err := cfg.Treasury.Validate(); err != nil {
		return fmt.Errorf("invalid treasury config: %w", err)
	}

	if err := cfg.SecondaryChain.Validate(); err != nil {
		return fmt.Errorf("invalid secondary-chain config: %w", err)
	}

	if err := cfg.Settlement.Validate(); err != nil {
		return fmt.Errorf("invalid settlement config: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}

	if err := cfg.Queue.Validate(); err != nil {
		return err
	}

	return nil
}

// New returns a fully parsed Config object from a given file directory
func New(cfgFile string) (*Config, error) {
	_, err := os.Stat(cfgFile)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(cfgFile)

	v.AutomaticEnv()
	/*
		Nested fields in yml are replaced by `_` and any `-` by `__` when the config is overridden via env variable.
		For example:
		1. `treasury.secret` can be overridden by `TREASURY_SECRET`
		2. `secondary-chain.rpc-url` can be overridden by `SECONDARY__CHAIN_RPC__URL`
		`-` is avoided in env variable names as it's not supported in every shell.
	*/
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "__"))

	err = v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
