package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmkeeper "github.com/pushchain/svm-bridge/x/svm/keeper"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// InitMessageV1 creates a draft message of args.Capacity zeroed payload bytes
// that only the emitter authority may write. The message fee is charged here.
func (k Keeper) InitMessageV1(ctx context.Context, accts types.InitMessageV1Accounts, args types.InitMessageV1Args) error {
	err := svmkeeper.Atomic(ctx, func(ctx sdk.Context) error {
		checks := svmtypes.Checklist{
			svmtypes.RequireSigner("emitter authority", accts.EmitterAuthority),
			svmtypes.RequireSigner("draft message", accts.Draft),
			svmtypes.RequireWritable("draft message", accts.Draft),
			svmtypes.RequireSigner("payer", accts.Payer),
			svmtypes.RequireWritable("payer", accts.Payer),
		}
		if err := checks.Verify(); err != nil {
			return err
		}
		if err := args.Commitment.Validate(); err != nil {
			return err
		}
		if args.Capacity == 0 {
			return types.ErrInvalidInstructionArgument.Wrap("zero capacity")
		}
		if args.Capacity > types.MaxPayloadSize {
			return types.ErrPayloadTooLarge.Wrapf("capacity %d, max %d", args.Capacity, types.MaxPayloadSize)
		}

		emitter := accts.EmitterAuthority.PublicKey
		if args.CpiProgramID != nil {
			expected := types.ProgramEmitterAddress(*args.CpiProgramID)
			if !expected.Equals(accts.EmitterAuthority.PublicKey) {
				return types.ErrInvalidProgramEmitter.Wrapf("expected %s, got %s", expected, accts.EmitterAuthority.PublicKey)
			}
			emitter = *args.CpiProgramID
		}

		if err := k.CollectFee(ctx, accts.Config, accts.Payer, accts.FeeCollector); err != nil {
			return err
		}
		if err := k.svmKeeper.CreateAccount(ctx, accts.Payer, accts.Draft, types.ComputeMessageSpace(int(args.Capacity)), k.programID); err != nil {
			return err
		}

		draft := types.PostedMessageV1{
			ConsistencyLevel: args.Commitment.ConsistencyLevel(),
			EmitterAuthority: accts.EmitterAuthority.PublicKey,
			Status:           types.MessageStatusWriting,
			Nonce:            args.Nonce,
			SolanaChainID:    types.SolanaChainID,
			Emitter:          emitter,
			Payload:          make([]byte, args.Capacity),
		}
		return k.write(ctx, accts.Draft, draft)
	})
	if err != nil {
		k.logger.Debug("init message rejected", "error", err)
	}
	return err
}

// WriteMessageV1 copies args.Data into the draft payload at args.Index.
func (k Keeper) WriteMessageV1(ctx context.Context, accts types.WriteMessageV1Accounts, args types.WriteMessageV1Args) error {
	err := svmkeeper.Atomic(ctx, func(ctx sdk.Context) error {
		checks := svmtypes.Checklist{
			svmtypes.RequireSigner("emitter authority", accts.EmitterAuthority),
			svmtypes.RequireWritable("draft message", accts.Draft),
		}
		if err := checks.Verify(); err != nil {
			return err
		}
		if len(args.Data) == 0 {
			return types.ErrInvalidInstructionArgument.Wrap("empty data")
		}

		draft, err := k.loadWritableDraft(ctx, accts.Draft, accts.EmitterAuthority)
		if err != nil {
			return err
		}
		end := uint64(args.Index) + uint64(len(args.Data))
		if end > uint64(len(draft.Payload)) {
			return types.ErrDataOverflow.Wrapf("write ends at %d, capacity %d", end, len(draft.Payload))
		}
		copy(draft.Payload[args.Index:], args.Data)
		return k.write(ctx, accts.Draft, draft)
	})
	if err != nil {
		k.logger.Debug("write message rejected", "error", err)
	}
	return err
}

// FinalizeMessageV1 publishes a draft: it takes the next sequence of the
// draft's emitter and locks the account for good. No fee is charged.
func (k Keeper) FinalizeMessageV1(ctx context.Context, accts types.FinalizeMessageV1Accounts) (uint64, error) {
	var sequence uint64
	err := svmkeeper.Atomic(ctx, func(ctx sdk.Context) (err error) {
		sequence, err = k.finalizeMessageV1(ctx, accts)
		return err
	})
	if err != nil {
		k.logger.Debug("finalize message rejected", "error", err)
		return 0, err
	}
	return sequence, nil
}

func (k Keeper) finalizeMessageV1(ctx sdk.Context, accts types.FinalizeMessageV1Accounts) (uint64, error) {
	checks := svmtypes.Checklist{
		svmtypes.RequireSigner("emitter authority", accts.EmitterAuthority),
		svmtypes.RequireWritable("draft message", accts.Draft),
		svmtypes.RequirePresent("emitter sequence", accts.EmitterSequence),
		svmtypes.RequireSigner("payer", accts.Payer),
		svmtypes.RequireWritable("payer", accts.Payer),
	}
	if err := checks.Verify(); err != nil {
		return 0, err
	}

	draft, err := k.loadWritableDraft(ctx, accts.Draft, accts.EmitterAuthority)
	if err != nil {
		return 0, err
	}
	if len(draft.Payload) == 0 {
		return 0, types.ErrInvalidInstructionArgument.Wrap("empty payload")
	}

	sequence, err := k.allocateSequence(ctx, accts.EmitterSequence, accts.Payer, draft.Emitter)
	if err != nil {
		return 0, err
	}

	draft.EmitterAuthority = solana.PublicKey{}
	draft.Status = types.MessageStatusPublished
	draft.PostedTimestamp = k.svmKeeper.Clock(ctx)
	draft.Sequence = sequence
	if err := k.publish(ctx, accts.Draft, draft); err != nil {
		return 0, err
	}
	return sequence, nil
}

// loadWritableDraft loads a finalized-once message still being written by authority.
func (k Keeper) loadWritableDraft(ctx context.Context, meta, authority *solana.AccountMeta) (types.PostedMessageV1, error) {
	acct, err := k.ownedAccount(ctx, "draft message", meta.PublicKey)
	if err != nil {
		return types.PostedMessageV1{}, err
	}
	draft, err := types.ParsePostedMessageV1(acct.Data)
	if err != nil {
		return types.PostedMessageV1{}, errorsmod.Wrap(svmtypes.ErrAccountDidNotDeserialize, err.Error())
	}
	if draft.Unreliable {
		return types.PostedMessageV1{}, errorsmod.Wrapf(svmtypes.ErrAccountDiscriminatorMismatch, "message %s is reusable", meta.PublicKey)
	}
	switch draft.Status {
	case types.MessageStatusWriting:
	case types.MessageStatusPublished:
		return types.PostedMessageV1{}, types.ErrMessageAlreadyPublished.Wrapf("%s", meta.PublicKey)
	default:
		return types.PostedMessageV1{}, types.ErrInvalidMessageStatus.Wrapf("%s is %s", meta.PublicKey, draft.Status)
	}
	if !draft.EmitterAuthority.Equals(authority.PublicKey) {
		return types.PostedMessageV1{}, types.ErrEmitterAuthorityMismatch.Wrapf("expected %s, got %s", draft.EmitterAuthority, authority.PublicKey)
	}
	return draft, nil
}
