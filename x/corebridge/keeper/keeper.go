package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// Keeper is the core bridge program. All of its state lives in SVM accounts
// it owns; the keeper itself holds no store of its own.
type Keeper struct {
	logger    log.Logger
	programID solana.PublicKey

	// keepers
	svmKeeper types.SVMKeeper
}

// NewKeeper creates a new Keeper instance
func NewKeeper(logger log.Logger, programID solana.PublicKey, svmKeeper types.SVMKeeper) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	return Keeper{
		logger:    logger,
		programID: programID,
		svmKeeper: svmKeeper,
	}
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

func (k Keeper) ProgramID() solana.PublicKey {
	return k.programID
}

func (k Keeper) GetSVMKeeper() types.SVMKeeper {
	return k.svmKeeper
}

// ownedAccount loads key and requires the core bridge to own it.
func (k Keeper) ownedAccount(ctx context.Context, name string, key solana.PublicKey) (svmtypes.Account, error) {
	acct, err := k.svmKeeper.GetAccount(ctx, key)
	if err != nil {
		return svmtypes.Account{}, err
	}
	if err := svmtypes.RequireOwner(name, acct, k.programID).Verify(); err != nil {
		return svmtypes.Account{}, err
	}
	return acct, nil
}

// write stores data into an account the core bridge owns.
func (k Keeper) write(ctx context.Context, meta *solana.AccountMeta, data interface{ Bytes() ([]byte, error) }) error {
	raw, err := data.Bytes()
	if err != nil {
		return errorsmod.Wrap(svmtypes.ErrInvalidAccountData, err.Error())
	}
	return k.svmKeeper.WriteAccountData(ctx, k.programID, meta, raw)
}

// createSigned allocates a core bridge PDA, signing for it with seeds.
func (k Keeper) createSigned(ctx context.Context, payer, meta *solana.AccountMeta, space uint64, seeds ...[]byte) error {
	signerSeeds, err := svmtypes.SignerSeeds(k.programID, seeds...)
	if err != nil {
		return err
	}
	signed, err := svmtypes.InvokeSigned(meta, k.programID, signerSeeds...)
	if err != nil {
		return err
	}
	return k.svmKeeper.CreateAccount(ctx, payer, signed, space, k.programID)
}
