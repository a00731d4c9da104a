package config

import (
	"fmt"
	"net/url"
)

type QueueConfig struct {
	Url                        string `mapstructure:"url"`
	QueueUser                  string `mapstructure:"user"`
	QueuePassword              string `mapstructure:"password"`
	StakePaidQueueName         string `mapstructure:"stake-paid-queue-name"`
	RewardDistributedQueueName string `mapstructure:"reward-distributed-queue-name"`
	// Publish timeout in seconds.
	PublishTimeout int `mapstructure:"publish-timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if _, err := url.Parse(cfg.Url); err != nil {
		return fmt.Errorf("invalid queue url: %w", err)
	}

	if cfg.QueueUser == "" || cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue credentials")
	}

	if cfg.StakePaidQueueName == "" || cfg.RewardDistributedQueueName == "" {
		return fmt.Errorf("missing queue names")
	}

	if cfg.PublishTimeout <= 0 {
		return fmt.Errorf("publish timeout must be positive")
	}

	return nil
}
