package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// Public clusters refuse sign-and-submit and must never receive the
// treasury secret.
var publicLedgerHosts = []string{
	"s1.ripple.com",
	"s2.ripple.com",
	"xrplcluster.com",
	"xrpl.ws",
	"s.altnet.rippletest.net",
	"s.devnet.rippletest.net",
}

type LedgerConfig struct {
	// Node used for reads. Any node works, public ones included.
	RpcUrl string `mapstructure:"rpc-url"`
	// Node used for submit. The request carries the treasury secret, so this
	// must be a node operated alongside the service.
	SigningRpcUrl string `mapstructure:"signing-rpc-url"`
	// Allows a signing node outside loopback and private networks. It must
	// then be reached over https.
	RemoteSigner bool `mapstructure:"remote-signer"`
	// Request timeout in milliseconds.
	Timeout int `mapstructure:"timeout"`
	// Interval between `tx` polls while waiting for a submitted payment to validate.
	FinalityPollInterval time.Duration `mapstructure:"finality-poll-interval"`
	// Number of polls before a submission is treated as timed out (ambiguous).
	FinalityMaxPolls int `mapstructure:"finality-max-polls"`
	// Ledgers added to the validated index to compute LastLedgerSequence.
	LastLedgerOffset uint32 `mapstructure:"last-ledger-offset"`
	// Page size used when scanning the treasury history during reconciliation.
	AccountTxLimit int `mapstructure:"account-tx-limit"`
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.RpcUrl == "" {
		return errors.New("rpc-url cannot be empty")
	}

	parsedURL, err := url.ParseRequestURI(cfg.RpcUrl)
	if err != nil {
		return errors.New("invalid ledger rpc-url")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("rpc-url must start with http or https")
	}

	if err := cfg.validateSigningNode(); err != nil {
		return err
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout cannot be smaller or equal to 0")
	}

	if cfg.FinalityPollInterval <= 0 {
		return errors.New("finality-poll-interval must be positive")
	}

	if cfg.FinalityMaxPolls <= 0 {
		return errors.New("finality-max-polls must be positive")
	}

	if cfg.LastLedgerOffset == 0 {
		return errors.New("last-ledger-offset must be positive")
	}

	if cfg.AccountTxLimit <= 0 {
		return errors.New("account-tx-limit must be positive")
	}

	return nil
}

func (cfg *LedgerConfig) validateSigningNode() error {
	if cfg.SigningRpcUrl == "" {
		return errors.New("signing-rpc-url cannot be empty")
	}
	u, err := url.ParseRequestURI(cfg.SigningRpcUrl)
	if err != nil {
		return errors.New("invalid ledger signing-rpc-url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("signing-rpc-url must start with http or https")
	}

	host := strings.ToLower(u.Hostname())
	for _, public := range publicLedgerHosts {
		if host == public || strings.HasSuffix(host, "."+public) {
			return fmt.Errorf("signing-rpc-url %s is a public node, it would receive the treasury secret", host)
		}
	}
	if isLocalHost(host) {
		return nil
	}
	if !cfg.RemoteSigner {
		return fmt.Errorf("signing-rpc-url host %s is not local, set remote-signer to trust it", host)
	}
	if u.Scheme != "https" {
		return errors.New("a remote signing node must be reached over https")
	}
	return nil
}

func isLocalHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
}
