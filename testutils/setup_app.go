package testutils

import (
	"testing"

	log "cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/pushchain/svm-bridge/app"
)

func SetupApp(t *testing.T) *app.BridgeApp {
	t.Helper()
	bridgeApp, err := app.NewBridgeApp(log.NewTestLogger(t), dbm.NewMemDB(), app.DefaultOptions())
	require.NoError(t, err)
	return bridgeApp
}

// SetupLedger returns an app whose bridges are initialized with the default
// test config, plus the funded test accounts.
func SetupLedger(t *testing.T) (*app.BridgeApp, sdk.Context, TestAccounts) {
	return SetupLedgerWithConfig(t, GetDefaultTestConfig())
}

func SetupLedgerWithConfig(t *testing.T, cfg TestConfig) (*app.BridgeApp, sdk.Context, TestAccounts) {
	t.Helper()
	bridgeApp := SetupApp(t)
	ctx := bridgeApp.NewContext(cfg.BlockTime)

	accounts := NewTestAccounts()
	gs := app.DefaultGenesis(accounts.Payer)
	gs.PayerLamports = cfg.PayerLamports
	gs.FeeLamports = cfg.FeeLamports
	require.NoError(t, bridgeApp.InitGenesis(ctx, gs))

	return bridgeApp, ctx, accounts
}
