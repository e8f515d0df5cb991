package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"

	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
	svmkeeper "github.com/pushchain/svm-bridge/x/svm/keeper"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
	"github.com/pushchain/svm-bridge/x/tokenbridge/types"
)

// TransferTokensWithPayloadNative escrows a native token in custody and
// publishes a TransferWithMessage for it. Nothing is returned: the assigned
// sequence lives in the core bridge message account.
func (k Keeper) TransferTokensWithPayloadNative(ctx context.Context, accts types.TransferTokensWithPayloadNativeAccounts, args types.TransferTokensWithPayloadArgs) error {
	err := svmkeeper.Atomic(ctx, func(ctx sdk.Context) error {
		sender, err := types.NewSenderAddress(accts.SenderAuthority, args.CpiProgramID)
		if err != nil {
			return err
		}

		mint, err := k.depositNative(ctx, accts.TransferTokensNativeAccounts, args.Amount)
		if err != nil {
			return err
		}

		transfer := types.TransferWithMessage{
			NormAmount:    types.Normalize(uint256.NewInt(args.Amount), mint.Decimals()),
			TokenAddress:  accts.Mint.PublicKey,
			TokenChain:    corebridgetypes.SolanaChainID,
			Redeemer:      args.Redeemer,
			RedeemerChain: args.RedeemerChain,
			Sender:        sender,
			Payload:       args.Payload,
		}
		if err := transfer.Verify(); err != nil {
			return err
		}
		payload, err := transfer.Bytes()
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidPayload, err.Error())
		}
		return k.publish(ctx, accts.TransferTokensNativeAccounts, args.Nonce, payload)
	})
	if err != nil {
		k.logger.Debug("transfer tokens with payload rejected", "error", err)
	}
	return err
}

// TransferTokensNative escrows a native token in custody and publishes a
// Transfer paying relayerFee of the amount to whoever redeems it.
func (k Keeper) TransferTokensNative(ctx context.Context, accts types.TransferTokensNativeAccounts, args types.TransferTokensNativeArgs) error {
	err := svmkeeper.Atomic(ctx, func(ctx sdk.Context) error {
		if args.RelayerFee > args.Amount {
			return types.ErrInvalidRelayerFee.Wrapf("fee %d, amount %d", args.RelayerFee, args.Amount)
		}

		mint, err := k.depositNative(ctx, accts, args.Amount)
		if err != nil {
			return err
		}

		transfer := types.Transfer{
			NormAmount:     types.Normalize(uint256.NewInt(args.Amount), mint.Decimals()),
			TokenAddress:   accts.Mint.PublicKey,
			TokenChain:     corebridgetypes.SolanaChainID,
			Recipient:      args.Recipient,
			RecipientChain: args.RecipientChain,
			NormRelayerFee: types.Normalize(uint256.NewInt(args.RelayerFee), mint.Decimals()),
		}
		if err := transfer.Verify(); err != nil {
			return err
		}
		payload, err := transfer.Bytes()
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidPayload, err.Error())
		}
		return k.publish(ctx, accts, args.Nonce, payload)
	})
	if err != nil {
		k.logger.Debug("transfer tokens rejected", "error", err)
	}
	return err
}

func (k Keeper) transferChecks(accts types.TransferTokensNativeAccounts) svmtypes.Checklist {
	var mint solana.PublicKey
	if accts.Mint != nil {
		mint = accts.Mint.PublicKey
	}
	return svmtypes.Checklist{
		svmtypes.RequireSigner("payer", accts.Payer),
		svmtypes.RequireWritable("payer", accts.Payer),
		svmtypes.RequireWritable("source token", accts.SrcToken),
		svmtypes.RequirePresent("mint", accts.Mint),
		svmtypes.RequireAddress("wrapped asset", accts.WrappedAsset, types.WrappedAssetAddress(k.programID, mint)),
		svmtypes.RequireAddress("custody token", accts.CustodyToken, types.CustodyAddress(k.programID, mint)),
		svmtypes.RequireWritable("custody token", accts.CustodyToken),
		svmtypes.RequireAddress("transfer authority", accts.TransferAuthority, types.TransferAuthorityAddress(k.programID)),
		svmtypes.RequireAddress("custody authority", accts.CustodyAuthority, types.CustodyAuthorityAddress(k.programID)),
		svmtypes.RequireAddress("core emitter", accts.Core.Emitter, types.EmitterAddress(k.programID)),
		svmtypes.RequireWritable("core message", accts.Core.Message),
	}
}

// depositNative moves the truncated amount from the source account into
// custody, creating the custody account on first use.
func (k Keeper) depositNative(ctx context.Context, accts types.TransferTokensNativeAccounts, amount uint64) (types.Mint, error) {
	if err := k.transferChecks(accts).Verify(); err != nil {
		return types.Mint{}, err
	}

	mintAcct, err := k.svmKeeper.GetAccount(ctx, accts.Mint.PublicKey)
	if err != nil {
		return types.Mint{}, err
	}
	mint, err := types.LoadMint(mintAcct)
	if err != nil {
		return types.Mint{}, errorsmod.Wrapf(err, "mint %s", accts.Mint.PublicKey)
	}

	srcAcct, err := k.svmKeeper.GetAccount(ctx, accts.SrcToken.PublicKey)
	if err != nil {
		return types.Mint{}, err
	}
	src, err := types.LoadTokenAccount(srcAcct)
	if err != nil {
		return types.Mint{}, errorsmod.Wrapf(err, "source token %s", accts.SrcToken.PublicKey)
	}
	if !src.Mint().Equals(accts.Mint.PublicKey) {
		return types.Mint{}, errorsmod.Wrapf(svmtypes.ErrConstraintTokenMint, "source token mint %s, expected %s", src.Mint(), accts.Mint.PublicKey)
	}

	wrapped, err := k.svmKeeper.GetAccount(ctx, accts.WrappedAsset.PublicKey)
	if err != nil {
		return types.Mint{}, err
	}
	if !wrapped.DataIsEmpty() {
		return types.Mint{}, types.ErrWrappedAsset.Wrapf("mint %s", accts.Mint.PublicKey)
	}

	if err := k.ensureCustody(ctx, accts); err != nil {
		return types.Mint{}, err
	}

	truncated := types.TruncateAmount(amount, mint.Decimals())
	if truncated == 0 {
		return types.Mint{}, types.ErrZeroBridgeAmount.Wrapf("amount %d at %d decimals", amount, mint.Decimals())
	}
	authority, err := k.invokeSigned(accts.TransferAuthority, types.SeedTransferAuthority)
	if err != nil {
		return types.Mint{}, err
	}
	if err := k.tokenProgram.Transfer(ctx, accts.SrcToken, accts.CustodyToken, authority, truncated); err != nil {
		return types.Mint{}, err
	}
	return mint, nil
}

// ensureCustody creates the custody token account of the mint if it is
// missing and otherwise checks it is the one the custody authority controls.
func (k Keeper) ensureCustody(ctx context.Context, accts types.TransferTokensNativeAccounts) error {
	custody, err := k.svmKeeper.GetAccount(ctx, accts.CustodyToken.PublicKey)
	if err != nil {
		return err
	}
	if custody.DataIsEmpty() && custody.IsOwnedBy(solana.SystemProgramID) {
		signed, err := k.invokeSigned(accts.CustodyToken, accts.Mint.PublicKey.Bytes())
		if err != nil {
			return err
		}
		return k.tokenProgram.InitializeAccount(ctx, accts.Payer, signed, accts.Mint.PublicKey, accts.CustodyAuthority.PublicKey)
	}

	view, err := types.LoadTokenAccount(custody)
	if err != nil {
		return errorsmod.Wrapf(err, "custody token %s", accts.CustodyToken.PublicKey)
	}
	if !view.Mint().Equals(accts.Mint.PublicKey) || !view.Owner().Equals(accts.CustodyAuthority.PublicKey) {
		return types.ErrInvalidCustodyToken.Wrapf("%s", accts.CustodyToken.PublicKey)
	}
	return nil
}

// publish posts payload as a finalized message signed by the token bridge emitter.
func (k Keeper) publish(ctx context.Context, accts types.TransferTokensNativeAccounts, nonce uint32, payload []byte) error {
	emitterSeeds, err := k.signerSeeds(corebridgetypes.SeedProgramEmitter)
	if err != nil {
		return err
	}
	sequence, err := k.coreBridgeKeeper.PublishMessage(
		ctx,
		k.programID,
		accts.PublishAccounts(),
		payload,
		emitterSeeds,
		corebridgetypes.MessageDirective{Nonce: nonce, Commitment: corebridgetypes.CommitmentFinalized},
	)
	if err != nil {
		return err
	}

	k.logger.Info("native tokens sent to custody",
		"mint", accts.Mint.PublicKey.String(),
		"custody", accts.CustodyToken.PublicKey.String(),
		"sequence", sequence,
	)
	return nil
}
