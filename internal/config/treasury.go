package config

import (
	"errors"
	"fmt"

	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

// TreasuryConfig describes the account that receives stakes and pays rewards,
// and the issued token it deals in.
type TreasuryConfig struct {
	Account string `mapstructure:"account"`
	// Signing secret of Account. Supply through TREASURY_SECRET rather than the yml file.
	Secret       string `mapstructure:"secret"`
	Currency     string `mapstructure:"currency"`
	Issuer       string `mapstructure:"issuer"`
	LegacyIssuer string `mapstructure:"legacy-issuer"`
	// Issuer of the NFTokens scored for the primary family.
	NftIssuer  string `mapstructure:"nft-issuer"`
	RewardMemo string `mapstructure:"reward-memo"`
}

func (cfg *TreasuryConfig) Validate() error {
	for name, addr := range map[string]string{
		"account":       cfg.Account,
		"issuer":        cfg.Issuer,
		"legacy-issuer": cfg.LegacyIssuer,
		"nft-issuer":    cfg.NftIssuer,
	} {
		if !utils.IsValidXrplAddress(addr) {
			return fmt.Errorf("invalid %s address: %q", name, addr)
		}
	}

	if cfg.Secret == "" {
		return errors.New("secret cannot be empty")
	}

	if !utils.IsValidCurrencyCode(cfg.Currency) {
		return fmt.Errorf("invalid currency code: %q", cfg.Currency)
	}

	return nil
}
