package config

import (
	"errors"
	"net/url"
	"time"
)

type SecondaryChainConfig struct {
	RpcUrl  string        `mapstructure:"rpc-url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Maximum number of concurrent ownerOf calls during one score lookup.
	MaxConcurrency int `mapstructure:"max-concurrency"`
}

func (cfg *SecondaryChainConfig) Validate() error {
	if cfg.RpcUrl == "" {
		return errors.New("rpc-url cannot be empty")
	}

	parsedURL, err := url.ParseRequestURI(cfg.RpcUrl)
	if err != nil {
		return errors.New("invalid secondary chain rpc-url")
	}

	switch parsedURL.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return errors.New("rpc-url must use http, https, ws or wss")
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if cfg.MaxConcurrency <= 0 {
		return errors.New("max-concurrency must be positive")
	}

	return nil
}
