package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

func TestLedgerHealthCheck(t *testing.T) {
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	for _, state := range []string{"full", "proposing", "tracking"} {
		env := newTestEnv(t, now)
		env.ledger.On("GetServerState", mock.Anything).Return(state, nil).Once()
		assert.NoError(t, env.services.LedgerHealthCheck(context.Background()), state)
	}

	env := newTestEnv(t, now)
	env.ledger.On("GetServerState", mock.Anything).Return("syncing", nil).Once()
	assert.ErrorContains(t, env.services.LedgerHealthCheck(context.Background()), `"syncing"`)

	env = newTestEnv(t, now)
	env.ledger.On("GetServerState", mock.Anything).
		Return("", types.NewLedgerUnavailableError(errors.New("connection refused"))).Once()
	err := env.services.LedgerHealthCheck(context.Background())
	assert.True(t, types.HasErrorCode(err, types.LedgerUnavailable))
}
