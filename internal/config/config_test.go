package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("..", "..", "config", "config-local.yml"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, src, 0o600))
	return path
}

func TestNew_LoadsLocalConfigWithEnvOverride(t *testing.T) {
	t.Setenv("TREASURY_SECRET", "sEdTestSecret")
	t.Setenv("SETTLEMENT_DISTRIBUTION__RATE", "0.25")

	cfg, err := New(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "sEdTestSecret", cfg.Treasury.Secret)
	assert.Equal(t, "0.25", cfg.Settlement.Rate.String())
	assert.Equal(t, time.UTC.String(), cfg.Settlement.Location.String())
	assert.Equal(t, 5*time.Minute, cfg.Settlement.MaturityInterval)
	assert.Equal(t, uint32(20), cfg.Ledger.LastLedgerOffset)
	assert.Equal(t, "0.0.0.0:8090", cfg.Server.Address())
	assert.Equal(t, 30*time.Second, cfg.Server.GetShutdownTimeout())
	assert.Equal(t, 10*time.Second, cfg.Db.GetConnectTimeout())
}

func TestNew_MissingSecretFails(t *testing.T) {
	_, err := New(writeConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret")
}

func TestSettlementConfigValidate(t *testing.T) {
	valid := func() SettlementConfig {
		return SettlementConfig{
			Timezone:         "Africa/Abidjan",
			MaturityInterval: time.Minute,
			DistributionCron: "0 0 1 * *",
			DistributionRate: "1",
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Africa/Abidjan", cfg.Location.String())

	badCron := valid()
	badCron.DistributionCron = "every month"
	assert.Error(t, badCron.Validate())

	tooHigh := valid()
	tooHigh.DistributionRate = "1.5"
	assert.Error(t, tooHigh.Validate())

	zero := valid()
	zero.DistributionRate = "0"
	assert.Error(t, zero.Validate())
}

func TestDbConfigValidate(t *testing.T) {
	valid := func() DbConfig {
		return DbConfig{
			DbName:             "stake-reward",
			Address:            "mongodb://localhost:27017/?replicaSet=rs0",
			MaxPaginationLimit: 10,
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaultDbConnectTimeout, cfg.GetConnectTimeout())

	garbage := valid()
	garbage.Address = "localhost:27017"
	assert.ErrorContains(t, garbage.Validate(), "invalid db address")

	limit := valid()
	limit.MaxPaginationLimit = 1
	assert.ErrorContains(t, limit.Validate(), "pagination")
}

func TestServerConfigValidate(t *testing.T) {
	cfg := ServerConfig{
		Host:                "127.0.0.1",
		Port:                8090,
		MaxContentLength:    4096,
		HealthCheckInterval: 60,
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaultShutdownTimeout, cfg.GetShutdownTimeout())

	cfg.ShutdownTimeout = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "shutdown timeout")

	cfg.ShutdownTimeout = 0
	cfg.LogLevel = "trace"
	assert.ErrorContains(t, cfg.Validate(), "outside debug..fatal")
}

func TestLedgerConfigValidate_SigningNode(t *testing.T) {
	valid := func() LedgerConfig {
		return LedgerConfig{
			RpcUrl:               "https://s1.ripple.com:51234",
			SigningRpcUrl:        "http://127.0.0.1:5005",
			Timeout:              1000,
			FinalityPollInterval: time.Second,
			FinalityMaxPolls:     3,
			LastLedgerOffset:     20,
			AccountTxLimit:       200,
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	private := valid()
	private.SigningRpcUrl = "http://10.0.3.7:5005"
	assert.NoError(t, private.Validate())

	missing := valid()
	missing.SigningRpcUrl = ""
	assert.ErrorContains(t, missing.Validate(), "signing-rpc-url cannot be empty")

	public := valid()
	public.SigningRpcUrl = "https://s2.ripple.com:51234"
	public.RemoteSigner = true
	assert.ErrorContains(t, public.Validate(), "public node")

	remote := valid()
	remote.SigningRpcUrl = "https://rippled.example.org:5005"
	assert.ErrorContains(t, remote.Validate(), "remote-signer")
	remote.RemoteSigner = true
	assert.NoError(t, remote.Validate())

	plain := valid()
	plain.SigningRpcUrl = "http://rippled.example.org:5005"
	plain.RemoteSigner = true
	assert.ErrorContains(t, plain.Validate(), "https")
}
