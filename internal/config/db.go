package config

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultDbConnectTimeout = 10 * time.Second
	dbAppName               = "stake-reward-service"
)

type DbConfig struct {
	DbName  string `mapstructure:"db-name"`
	Address string `mapstructure:"address"`
	// Upper bound on the number of stake logs returned for one address.
	MaxPaginationLimit int64 `mapstructure:"max-pagination-limit"`
	// Bounds server selection and the initial ping.
	ConnectTimeout time.Duration `mapstructure:"connect-timeout"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.Address == "" {
		return errors.New("missing db address")
	}
	if cfg.DbName == "" {
		return errors.New("missing db name")
	}

	cs, err := connstring.ParseAndValidate(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}
	if cs.Scheme != connstring.SchemeMongoDB {
		return fmt.Errorf("unsupported db scheme: %s", cs.Scheme)
	}
	if len(cs.Hosts) == 0 {
		return errors.New("missing host in db address")
	}

	if cfg.MaxPaginationLimit < 2 {
		return errors.New("max pagination limit must be greater than 1")
	}
	if cfg.ConnectTimeout < 0 {
		return errors.New("db connect timeout cannot be negative")
	}
	return nil
}

func (cfg *DbConfig) GetConnectTimeout() time.Duration {
	if cfg.ConnectTimeout == 0 {
		return defaultDbConnectTimeout
	}
	return cfg.ConnectTimeout
}

// ClientOptions are shared by the request path and the schema setup.
func (cfg *DbConfig) ClientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.Address).
		SetAppName(dbAppName).
		SetServerSelectionTimeout(cfg.GetConnectTimeout())
}
