package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmkeeper "github.com/pushchain/svm-bridge/x/svm/keeper"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// PublishMessage is the entry point for programs composing with the core
// bridge. invoker is the calling program; when emitterSeeds is set, the
// emitter authority is signed as the invoker's PDA for those seeds. The
// returned sequence is the one embedded in the published message. Fee,
// message and sequence either all change or none do.
func (k Keeper) PublishMessage(
	ctx context.Context,
	invoker solana.PublicKey,
	accts types.PublishMessageAccounts,
	message []byte,
	emitterSeeds [][]byte,
	directive types.PublishDirective,
) (uint64, error) {
	var sequence uint64
	err := svmkeeper.Atomic(ctx, func(ctx sdk.Context) error {
		post := types.PostMessageAccountsFrom(accts)
		if emitterSeeds != nil {
			signed, err := svmtypes.InvokeSigned(post.Emitter, invoker, emitterSeeds...)
			if err != nil {
				return err
			}
			post.Emitter = signed
		}

		var err error
		switch d := directive.(type) {
		case types.MessageDirective:
			sequence, err = k.postMessage(ctx, post, types.PostMessageArgs{
				Nonce:      d.Nonce,
				Payload:    message,
				Commitment: d.Commitment,
			})
		case types.UnreliableDirective:
			sequence, err = k.postMessageUnreliable(ctx, post, types.PostMessageArgs{
				Nonce:      d.Nonce,
				Payload:    message,
				Commitment: d.Commitment,
			})
		case types.PreparedDirective:
			if len(message) != 0 {
				return types.ErrInvalidInstructionArgument.Wrap("prepared message takes no payload")
			}
			sequence, err = k.finalizeMessageV1(ctx, types.FinalizeMessageV1Accounts{
				EmitterAuthority: post.Emitter,
				Draft:            post.Message,
				EmitterSequence:  post.EmitterSequence,
				Payer:            post.Payer,
			})
		default:
			return types.ErrInvalidInstructionArgument.Wrapf("unknown publish directive %T", directive)
		}
		return err
	})
	if err != nil {
		k.logger.Debug("publish message rejected", "invoker", invoker.String(), "error", err)
		return 0, err
	}
	return sequence, nil
}
