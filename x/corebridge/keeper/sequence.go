package keeper

import (
	"context"
	"math"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// GetEmitterSequence returns the sequence the next message of emitter will
// get: 0 before its first publish.
func (k Keeper) GetEmitterSequence(ctx context.Context, emitter solana.PublicKey) (uint64, error) {
	addr := types.EmitterSequenceAddress(k.programID, emitter)
	acct, err := k.svmKeeper.GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}
	if acct.DataIsEmpty() {
		return 0, nil
	}
	if err := svmtypes.RequireOwner("emitter sequence", acct, k.programID).Verify(); err != nil {
		return 0, err
	}
	seq, err := types.ParseEmitterSequence(acct.Data)
	if err != nil {
		return 0, errorsmod.Wrap(svmtypes.ErrAccountDidNotDeserialize, err.Error())
	}
	return seq.Value, nil
}

// allocateSequence hands out the current sequence of emitter and stores the
// next one. The tracker is created on first use, paid for by payer.
func (k Keeper) allocateSequence(ctx context.Context, meta, payer *solana.AccountMeta, emitter solana.PublicKey) (uint64, error) {
	checks := svmtypes.Checklist{
		svmtypes.RequireAddress("emitter sequence", meta, types.EmitterSequenceAddress(k.programID, emitter)),
		svmtypes.RequireWritable("emitter sequence", meta),
	}
	if err := checks.Verify(); err != nil {
		return 0, err
	}

	acct, err := k.svmKeeper.GetAccount(ctx, meta.PublicKey)
	if err != nil {
		return 0, err
	}
	if acct.DataIsEmpty() && acct.IsOwnedBy(solana.SystemProgramID) {
		if err := k.createSigned(ctx, payer, meta, types.EmitterSequenceLen, types.SeedEmitterSequence, emitter.Bytes()); err != nil {
			return 0, err
		}
	}

	current, err := k.GetEmitterSequence(ctx, emitter)
	if err != nil {
		return 0, err
	}
	if current == math.MaxUint64 {
		return 0, errorsmod.Wrapf(svmtypes.ErrArithmeticOverflow, "sequence of %s", emitter)
	}
	if err := k.write(ctx, meta, types.EmitterSequence{Value: current + 1}); err != nil {
		return 0, err
	}
	return current, nil
}
