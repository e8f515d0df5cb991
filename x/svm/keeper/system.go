package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/x/svm/types"
)

// Transfer moves lamports between two accounts the way the system program does:
// from must be a signing, writable, system-owned account without data.
func (k Keeper) Transfer(ctx context.Context, from, to *solana.AccountMeta, lamports uint64) error {
	checks := types.Checklist{
		types.RequireSigner("from", from),
		types.RequireWritable("from", from),
		types.RequireWritable("to", to),
	}
	if err := checks.Verify(); err != nil {
		return err
	}
	if lamports == 0 {
		return nil
	}

	src, err := k.GetAccount(ctx, from.PublicKey)
	if err != nil {
		return err
	}
	if !src.IsOwnedBy(solana.SystemProgramID) || !src.DataIsEmpty() {
		return errorsmod.Wrapf(types.ErrInvalidAccountData, "transfer source %s must be a system account without data", from.PublicKey)
	}
	if src.Lamports < lamports {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "%s has %d lamports, needs %d", from.PublicKey, src.Lamports, lamports)
	}
	if from.PublicKey.Equals(to.PublicKey) {
		return nil
	}

	dst, err := k.GetAccount(ctx, to.PublicKey)
	if err != nil {
		return err
	}
	if dst.Lamports+lamports < dst.Lamports {
		return errorsmod.Wrapf(types.ErrArithmeticOverflow, "credit %s", to.PublicKey)
	}

	src.Lamports -= lamports
	dst.Lamports += lamports
	if err := k.setAccount(ctx, from.PublicKey, src); err != nil {
		return err
	}
	return k.setAccount(ctx, to.PublicKey, dst)
}

// CreateAccount allocates space zeroed bytes at target, funds it to rent
// exemption from payer and assigns it to owner. Lamports already sitting at
// target count toward the exemption, so a pre-funded address can still be
// created. Target must sign, either as a keypair or through InvokeSigned.
func (k Keeper) CreateAccount(ctx context.Context, payer, target *solana.AccountMeta, space uint64, owner solana.PublicKey) error {
	checks := types.Checklist{
		types.RequireSigner("payer", payer),
		types.RequireWritable("payer", payer),
		types.RequireSigner("new account", target),
		types.RequireWritable("new account", target),
	}
	if err := checks.Verify(); err != nil {
		return err
	}
	if space > types.MaxPermittedDataLength {
		return errorsmod.Wrapf(types.ErrConstraintSpace, "space %d exceeds %d", space, types.MaxPermittedDataLength)
	}

	acct, err := k.GetAccount(ctx, target.PublicKey)
	if err != nil {
		return err
	}
	if !acct.DataIsEmpty() || !acct.IsOwnedBy(solana.SystemProgramID) {
		return errorsmod.Wrapf(types.ErrAccountAlreadyInUse, "%s", target.PublicKey)
	}

	required := types.MinimumBalance(space)
	if acct.Lamports < required {
		if err := k.Transfer(ctx, payer, target, required-acct.Lamports); err != nil {
			return err
		}
		if acct, err = k.GetAccount(ctx, target.PublicKey); err != nil {
			return err
		}
	}

	acct.Data = make([]byte, space)
	acct.Owner = owner
	k.logger.Debug("account created", "address", target.PublicKey.String(), "owner", owner.String(), "space", space)
	return k.setAccount(ctx, target.PublicKey, acct)
}

// WriteAccountData replaces the data of an account owned by program. The new
// data must have exactly the allocated length; accounts never change size.
func (k Keeper) WriteAccountData(ctx context.Context, program solana.PublicKey, meta *solana.AccountMeta, data []byte) error {
	checks := types.Checklist{
		types.RequireWritable("account", meta),
	}
	if err := checks.Verify(); err != nil {
		return err
	}

	acct, err := k.GetAccount(ctx, meta.PublicKey)
	if err != nil {
		return err
	}
	if !acct.IsOwnedBy(program) {
		return errorsmod.Wrapf(types.ErrExternalAccountDataModified, "%s is owned by %s, not %s", meta.PublicKey, acct.Owner, program)
	}
	if len(data) != len(acct.Data) {
		return errorsmod.Wrapf(types.ErrAccountDataSizeChanged, "%s holds %d bytes, got %d", meta.PublicKey, len(acct.Data), len(data))
	}

	acct.Data = append(acct.Data[:0:0], data...)
	return k.setAccount(ctx, meta.PublicKey, acct)
}
