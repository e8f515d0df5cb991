package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/x/svm/types"
)

// Keeper is the account ledger shared by every program. It owns no
// program logic beyond the system program rules in system.go.
type Keeper struct {
	logger        log.Logger
	schemaBuilder *collections.SchemaBuilder

	// Module State
	Accounts collections.Map[[]byte, types.Account] // address → account
}

// NewKeeper creates a new Keeper instance
func NewKeeper(storeService storetypes.KVStoreService, logger log.Logger) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:        logger,
		schemaBuilder: sb,

		Accounts: collections.NewMap(sb, types.AccountsKey, types.AccountsName, collections.BytesKey, types.AccountValueCodec{}),
	}

	if _, err := sb.Build(); err != nil {
		panic(err)
	}

	return k
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

func (k Keeper) SchemaBuilder() *collections.SchemaBuilder {
	return k.schemaBuilder
}

// GetAccount returns the account at key, or the empty system account if nothing lives there.
func (k Keeper) GetAccount(ctx context.Context, key solana.PublicKey) (types.Account, error) {
	acct, err := k.Accounts.Get(ctx, key.Bytes())
	if errors.Is(err, collections.ErrNotFound) {
		return types.EmptyAccount(), nil
	}
	if err != nil {
		return types.Account{}, err
	}
	return acct, nil
}

// setAccount stores acct, removing the entry once the account no longer exists.
func (k Keeper) setAccount(ctx context.Context, key solana.PublicKey, acct types.Account) error {
	if !acct.Exists() {
		return k.Accounts.Remove(ctx, key.Bytes())
	}
	return k.Accounts.Set(ctx, key.Bytes(), acct)
}

// Airdrop credits lamports out of thin air. It backs genesis funding and local simulation.
func (k Keeper) Airdrop(ctx context.Context, key solana.PublicKey, lamports uint64) error {
	acct, err := k.GetAccount(ctx, key)
	if err != nil {
		return err
	}
	if acct.Lamports+lamports < acct.Lamports {
		return errorsmod.Wrapf(types.ErrArithmeticOverflow, "airdrop to %s", key)
	}
	acct.Lamports += lamports
	return k.setAccount(ctx, key, acct)
}

// DeployProgram marks programID as an executable account owned by the BPF loader.
func (k Keeper) DeployProgram(ctx context.Context, programID solana.PublicKey) error {
	acct, err := k.GetAccount(ctx, programID)
	if err != nil {
		return err
	}
	if acct.Executable {
		return nil
	}
	acct.Owner = types.LoaderProgramID
	acct.Executable = true
	if acct.Lamports == 0 {
		acct.Lamports = types.MinimumBalance(0)
	}
	return k.setAccount(ctx, programID, acct)
}

// Clock returns the block time in unix seconds, as stamped on posted messages.
func (k Keeper) Clock(ctx context.Context) uint32 {
	return uint32(sdk.UnwrapSDKContext(ctx).BlockTime().Unix())
}

// Atomic runs fn against a cached branch of ctx. State writes and events reach
// ctx only when fn returns nil; any error discards everything fn did.
func Atomic(ctx context.Context, fn func(ctx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, commit := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	commit()
	return nil
}
