package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	svmkeeper "github.com/pushchain/svm-bridge/x/svm/keeper"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
	"github.com/pushchain/svm-bridge/x/tokenbridge/types"
)

// Keeper is the token bridge program.
type Keeper struct {
	logger    log.Logger
	programID solana.PublicKey

	// keepers
	svmKeeper        types.SVMKeeper
	tokenProgram     types.TokenProgram
	coreBridgeKeeper types.CoreBridgeKeeper
}

// NewKeeper creates a new Keeper instance
func NewKeeper(
	logger log.Logger,
	programID solana.PublicKey,
	svmKeeper types.SVMKeeper,
	tokenProgram types.TokenProgram,
	coreBridgeKeeper types.CoreBridgeKeeper,
) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	return Keeper{
		logger:           logger,
		programID:        programID,
		svmKeeper:        svmKeeper,
		tokenProgram:     tokenProgram,
		coreBridgeKeeper: coreBridgeKeeper,
	}
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

func (k Keeper) ProgramID() solana.PublicKey {
	return k.programID
}

func (k Keeper) GetCoreBridgeKeeper() types.CoreBridgeKeeper {
	return k.coreBridgeKeeper
}

// Initialize creates the token bridge Config, bound to the core bridge it was built with.
func (k Keeper) Initialize(ctx context.Context, accts types.InitializeAccounts) error {
	return svmkeeper.Atomic(ctx, func(ctx sdk.Context) error {
		checks := svmtypes.Checklist{
			svmtypes.RequireSigner("payer", accts.Payer),
			svmtypes.RequireWritable("payer", accts.Payer),
			svmtypes.RequireAddress("config", accts.Config, types.ConfigAddress(k.programID)),
			svmtypes.RequireWritable("config", accts.Config),
		}
		if err := checks.Verify(); err != nil {
			return err
		}

		signed, err := k.invokeSigned(accts.Config, types.SeedConfig)
		if err != nil {
			return err
		}
		if err := k.svmKeeper.CreateAccount(ctx, accts.Payer, signed, types.ConfigLen, k.programID); err != nil {
			return err
		}
		cfg := types.Config{CoreBridgeProgram: k.coreBridgeKeeper.ProgramID()}
		raw, err := cfg.Bytes()
		if err != nil {
			return err
		}
		if err := k.svmKeeper.WriteAccountData(ctx, k.programID, accts.Config, raw); err != nil {
			return err
		}

		k.logger.Info("token bridge initialized", "core_bridge", cfg.CoreBridgeProgram.String())
		return nil
	})
}

// GetConfig returns the token bridge Config.
func (k Keeper) GetConfig(ctx context.Context) (types.Config, error) {
	acct, err := k.svmKeeper.GetAccount(ctx, types.ConfigAddress(k.programID))
	if err != nil {
		return types.Config{}, err
	}
	if !acct.Exists() {
		return types.Config{}, types.ErrNotInitialized
	}
	if err := svmtypes.RequireOwner("config", acct, k.programID).Verify(); err != nil {
		return types.Config{}, err
	}
	cfg, err := types.ParseConfig(acct.Data)
	if err != nil {
		return types.Config{}, errorsmod.Wrap(svmtypes.ErrAccountDidNotDeserialize, err.Error())
	}
	return cfg, nil
}

// signerSeeds returns seeds plus the canonical bump under the token bridge.
func (k Keeper) signerSeeds(seeds ...[]byte) ([][]byte, error) {
	return svmtypes.SignerSeeds(k.programID, seeds...)
}

// invokeSigned signs meta as the token bridge PDA of seeds.
func (k Keeper) invokeSigned(meta *solana.AccountMeta, seeds ...[]byte) (*solana.AccountMeta, error) {
	signerSeeds, err := k.signerSeeds(seeds...)
	if err != nil {
		return nil, err
	}
	return svmtypes.InvokeSigned(meta, k.programID, signerSeeds...)
}
