package app

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	corebridgekeeper "github.com/pushchain/svm-bridge/x/corebridge/keeper"
	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
	svmkeeper "github.com/pushchain/svm-bridge/x/svm/keeper"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
	tokenbridgekeeper "github.com/pushchain/svm-bridge/x/tokenbridge/keeper"
	tokenbridgetypes "github.com/pushchain/svm-bridge/x/tokenbridge/types"
)

const Name = "svm-bridge"

// Options selects the program IDs the bridges are deployed at.
type Options struct {
	CoreBridgeProgramID  solana.PublicKey
	TokenBridgeProgramID solana.PublicKey
}

// DefaultOptions deploys both bridges at their well-known addresses.
func DefaultOptions() Options {
	return Options{
		CoreBridgeProgramID:  corebridgetypes.DefaultProgramID,
		TokenBridgeProgramID: tokenbridgetypes.DefaultProgramID,
	}
}

// BridgeApp wires the SVM ledger and the bridge programs over one multistore.
type BridgeApp struct {
	logger log.Logger
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey
	height int64

	SVMKeeper         svmkeeper.Keeper
	TokenProgram      svmkeeper.TokenProgram
	CoreBridgeKeeper  corebridgekeeper.Keeper
	TokenBridgeKeeper tokenbridgekeeper.Keeper
}

// NewBridgeApp mounts the ledger store on db and builds the keepers.
func NewBridgeApp(logger log.Logger, db dbm.DB, opts Options) (*BridgeApp, error) {
	keys := storetypes.NewKVStoreKeys(svmtypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load ledger store: %w", err)
	}

	app := &BridgeApp{
		logger: logger,
		cms:    cms,
		keys:   keys,
		height: cms.LastCommitID().Version,
	}

	app.SVMKeeper = svmkeeper.NewKeeper(runtime.NewKVStoreService(keys[svmtypes.StoreKey]), logger)
	app.TokenProgram = svmkeeper.NewTokenProgram(app.SVMKeeper)
	app.CoreBridgeKeeper = corebridgekeeper.NewKeeper(logger, opts.CoreBridgeProgramID, app.SVMKeeper)
	app.TokenBridgeKeeper = tokenbridgekeeper.NewKeeper(
		logger,
		opts.TokenBridgeProgramID,
		app.SVMKeeper,
		app.TokenProgram,
		app.CoreBridgeKeeper,
	)

	return app, nil
}

func (app *BridgeApp) Logger() log.Logger {
	return app.logger
}

// NewContext opens a context on the working state at the next block height.
func (app *BridgeApp) NewContext(blockTime time.Time) sdk.Context {
	header := cmtproto.Header{ChainID: Name, Height: app.height + 1, Time: blockTime}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Commit persists the working state as a new version.
func (app *BridgeApp) Commit() storetypes.CommitID {
	id := app.cms.Commit()
	app.height = id.Version
	return id
}

// Deploy marks the token program and both bridges as executable accounts.
func (app *BridgeApp) Deploy(ctx context.Context) error {
	for _, program := range []solana.PublicKey{
		solana.TokenProgramID,
		app.CoreBridgeKeeper.ProgramID(),
		app.TokenBridgeKeeper.ProgramID(),
	} {
		if err := app.SVMKeeper.DeployProgram(ctx, program); err != nil {
			return fmt.Errorf("failed to deploy %s: %w", program, err)
		}
	}
	return nil
}
