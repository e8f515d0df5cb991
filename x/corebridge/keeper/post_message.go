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

// PostMessage publishes a payload into a fresh message account and returns
// the sequence it was assigned.
func (k Keeper) PostMessage(ctx context.Context, accts types.PostMessageAccounts, args types.PostMessageArgs) (uint64, error) {
	var sequence uint64
	err := svmkeeper.Atomic(ctx, func(ctx sdk.Context) (err error) {
		sequence, err = k.postMessage(ctx, accts, args)
		return err
	})
	if err != nil {
		k.logger.Debug("post message rejected", "error", err)
		return 0, err
	}
	return sequence, nil
}

// PostMessageUnreliable publishes into a reusable message account. The first
// call fixes the account size to the payload length; later calls must send a
// payload of that same length and come from the emitter stored in it.
func (k Keeper) PostMessageUnreliable(ctx context.Context, accts types.PostMessageAccounts, args types.PostMessageArgs) (uint64, error) {
	var sequence uint64
	err := svmkeeper.Atomic(ctx, func(ctx sdk.Context) (err error) {
		sequence, err = k.postMessageUnreliable(ctx, accts, args)
		return err
	})
	if err != nil {
		k.logger.Debug("post message unreliable rejected", "error", err)
		return 0, err
	}
	return sequence, nil
}

// postMessageChecks leaves the message signature to account creation: a
// reusable account only has to sign the first time.
func postMessageChecks(accts types.PostMessageAccounts) svmtypes.Checklist {
	return svmtypes.Checklist{
		svmtypes.RequireWritable("message", accts.Message),
		svmtypes.RequireSigner("emitter", accts.Emitter),
		svmtypes.RequirePresent("emitter sequence", accts.EmitterSequence),
		svmtypes.RequireSigner("payer", accts.Payer),
		svmtypes.RequireWritable("payer", accts.Payer),
	}
}

func validatePostArgs(args types.PostMessageArgs) error {
	if err := args.Commitment.Validate(); err != nil {
		return err
	}
	if len(args.Payload) > types.MaxPayloadSize {
		return types.ErrPayloadTooLarge.Wrapf("%d bytes, max %d", len(args.Payload), types.MaxPayloadSize)
	}
	return nil
}

func (k Keeper) postMessage(ctx sdk.Context, accts types.PostMessageAccounts, args types.PostMessageArgs) (uint64, error) {
	if err := postMessageChecks(accts).Verify(); err != nil {
		return 0, err
	}
	if err := validatePostArgs(args); err != nil {
		return 0, err
	}
	if len(args.Payload) == 0 {
		return 0, types.ErrInvalidInstructionArgument.Wrap("empty payload")
	}

	if err := k.CollectFee(ctx, accts.Config, accts.Payer, accts.FeeCollector); err != nil {
		return 0, err
	}
	if err := k.svmKeeper.CreateAccount(ctx, accts.Payer, accts.Message, types.ComputeMessageSpace(len(args.Payload)), k.programID); err != nil {
		return 0, err
	}

	emitter := accts.Emitter.PublicKey
	sequence, err := k.allocateSequence(ctx, accts.EmitterSequence, accts.Payer, emitter)
	if err != nil {
		return 0, err
	}

	msg := types.PostedMessageV1{
		ConsistencyLevel: args.Commitment.ConsistencyLevel(),
		Status:           types.MessageStatusPublished,
		PostedTimestamp:  k.svmKeeper.Clock(ctx),
		Nonce:            args.Nonce,
		Sequence:         sequence,
		SolanaChainID:    types.SolanaChainID,
		Emitter:          emitter,
		Payload:          args.Payload,
	}
	if err := k.publish(ctx, accts.Message, msg); err != nil {
		return 0, err
	}
	return sequence, nil
}

func (k Keeper) postMessageUnreliable(ctx sdk.Context, accts types.PostMessageAccounts, args types.PostMessageArgs) (uint64, error) {
	if err := postMessageChecks(accts).Verify(); err != nil {
		return 0, err
	}
	if err := validatePostArgs(args); err != nil {
		return 0, err
	}
	if _, err := k.loadConfig(ctx, accts.Config); err != nil {
		return 0, err
	}

	space := types.ComputeMessageSpace(len(args.Payload))
	existing, err := k.loadOrCreateUnreliable(ctx, accts.Payer, accts.Message, space)
	if err != nil {
		return 0, err
	}

	// A used mailbox stays with the emitter that first published into it.
	emitter := accts.Emitter.PublicKey
	if len(existing.Payload) > 0 && !existing.Emitter.Equals(emitter) {
		return 0, types.ErrEmitterMismatch.Wrapf("message %s belongs to %s, not %s", accts.Message.PublicKey, existing.Emitter, emitter)
	}

	if err := k.CollectFee(ctx, accts.Config, accts.Payer, accts.FeeCollector); err != nil {
		return 0, err
	}
	if len(args.Payload) == 0 {
		return 0, types.ErrInvalidInstructionArgument.Wrap("empty payload")
	}

	sequence, err := k.allocateSequence(ctx, accts.EmitterSequence, accts.Payer, emitter)
	if err != nil {
		return 0, err
	}

	msg := types.PostedMessageV1{
		Unreliable:       true,
		ConsistencyLevel: args.Commitment.ConsistencyLevel(),
		Status:           types.MessageStatusPublished,
		PostedTimestamp:  k.svmKeeper.Clock(ctx),
		Nonce:            args.Nonce,
		Sequence:         sequence,
		SolanaChainID:    types.SolanaChainID,
		Emitter:          emitter,
		Payload:          args.Payload,
	}
	if err := k.publish(ctx, accts.Message, msg); err != nil {
		return 0, err
	}
	return sequence, nil
}

// loadOrCreateUnreliable returns the current content of a reusable message
// account, creating it with space bytes when it does not exist yet. A fresh
// account reads as a message with an empty payload.
func (k Keeper) loadOrCreateUnreliable(ctx context.Context, payer, meta *solana.AccountMeta, space uint64) (types.PostedMessageV1, error) {
	acct, err := k.svmKeeper.GetAccount(ctx, meta.PublicKey)
	if err != nil {
		return types.PostedMessageV1{}, err
	}
	if acct.DataIsEmpty() && acct.IsOwnedBy(solana.SystemProgramID) {
		if err := k.svmKeeper.CreateAccount(ctx, payer, meta, space, k.programID); err != nil {
			return types.PostedMessageV1{}, err
		}
		return types.PostedMessageV1{Unreliable: true}, nil
	}

	if err := svmtypes.RequireOwner("message", acct, k.programID).Verify(); err != nil {
		return types.PostedMessageV1{}, err
	}
	if uint64(len(acct.Data)) != space {
		return types.PostedMessageV1{}, errorsmod.Wrapf(svmtypes.ErrConstraintSpace, "message %s has %d bytes, payload needs %d", meta.PublicKey, len(acct.Data), space)
	}
	msg, err := types.ParsePostedMessageV1(acct.Data)
	if err != nil {
		return types.PostedMessageV1{}, errorsmod.Wrap(svmtypes.ErrAccountDidNotDeserialize, err.Error())
	}
	if !msg.Unreliable {
		return types.PostedMessageV1{}, errorsmod.Wrapf(svmtypes.ErrAccountDiscriminatorMismatch, "message %s is not reusable", meta.PublicKey)
	}
	return msg, nil
}

// publish writes a Published message and announces it.
func (k Keeper) publish(ctx sdk.Context, meta *solana.AccountMeta, msg types.PostedMessageV1) error {
	if err := k.write(ctx, meta, msg); err != nil {
		return err
	}

	event, err := types.NewMessagePublishedEvent(types.MessagePublishedEvent{
		Message:          meta.PublicKey.String(),
		Emitter:          msg.Emitter.String(),
		Sequence:         msg.Sequence,
		Nonce:            msg.Nonce,
		ConsistencyLevel: msg.ConsistencyLevel,
		PostedTimestamp:  msg.PostedTimestamp,
		Unreliable:       msg.Unreliable,
		Payload:          msg.Payload,
	})
	if err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(event)

	k.logger.Info("message published",
		"emitter", msg.Emitter.String(),
		"sequence", msg.Sequence,
		"message", meta.PublicKey.String(),
		"unreliable", msg.Unreliable,
	)
	return nil
}

// GetPostedMessage reads a message account of either variant.
func (k Keeper) GetPostedMessage(ctx context.Context, address solana.PublicKey) (types.PostedMessageV1, error) {
	acct, err := k.ownedAccount(ctx, "message", address)
	if err != nil {
		return types.PostedMessageV1{}, err
	}
	msg, err := types.ParsePostedMessageV1(acct.Data)
	if err != nil {
		return types.PostedMessageV1{}, errorsmod.Wrap(svmtypes.ErrAccountDidNotDeserialize, err.Error())
	}
	return msg, nil
}
