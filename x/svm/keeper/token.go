package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/x/svm/types"
)

// TokenProgram is a minimal SPL token program running on the shared ledger.
// Bridge programs only ever see it through its instructions and the raw
// account bytes it writes.
type TokenProgram struct {
	k Keeper
}

func NewTokenProgram(k Keeper) TokenProgram {
	return TokenProgram{k: k}
}

func (p TokenProgram) ProgramID() solana.PublicKey {
	return solana.TokenProgramID
}

// GetMint decodes a mint owned by the token program.
func (p TokenProgram) GetMint(ctx context.Context, key solana.PublicKey) (types.MintData, error) {
	acct, err := p.k.GetAccount(ctx, key)
	if err != nil {
		return types.MintData{}, err
	}
	if !acct.IsOwnedBy(solana.TokenProgramID) {
		return types.MintData{}, errorsmod.Wrapf(types.ErrConstraintTokenProgram, "mint %s", key)
	}
	mint, err := types.DecodeMintData(acct.Data)
	if err != nil {
		return types.MintData{}, err
	}
	if !mint.IsInitialized {
		return types.MintData{}, errorsmod.Wrapf(types.ErrAccountNotInitialized, "mint %s", key)
	}
	return mint, nil
}

// GetTokenAccount decodes an initialized token account owned by the token program.
func (p TokenProgram) GetTokenAccount(ctx context.Context, key solana.PublicKey) (types.TokenAccountData, error) {
	acct, err := p.k.GetAccount(ctx, key)
	if err != nil {
		return types.TokenAccountData{}, err
	}
	if !acct.IsOwnedBy(solana.TokenProgramID) {
		return types.TokenAccountData{}, errorsmod.Wrapf(types.ErrConstraintTokenProgram, "token account %s", key)
	}
	data, err := types.DecodeTokenAccountData(acct.Data)
	if err != nil {
		return types.TokenAccountData{}, err
	}
	if data.State == types.TokenAccountUninitialized {
		return types.TokenAccountData{}, errorsmod.Wrapf(types.ErrAccountNotInitialized, "token account %s", key)
	}
	return data, nil
}

func (p TokenProgram) writeTokenAccount(ctx context.Context, meta *solana.AccountMeta, data types.TokenAccountData) error {
	raw, err := data.Bytes()
	if err != nil {
		return err
	}
	return p.k.WriteAccountData(ctx, solana.TokenProgramID, meta, raw)
}

func (p TokenProgram) writeMint(ctx context.Context, meta *solana.AccountMeta, data types.MintData) error {
	raw, err := data.Bytes()
	if err != nil {
		return err
	}
	return p.k.WriteAccountData(ctx, solana.TokenProgramID, meta, raw)
}

// InitializeMint allocates the mint account and initializes it.
func (p TokenProgram) InitializeMint(ctx context.Context, payer, mint *solana.AccountMeta, decimals uint8, mintAuthority solana.PublicKey) error {
	if err := p.k.CreateAccount(ctx, payer, mint, types.MintLen, solana.TokenProgramID); err != nil {
		return err
	}
	authority := mintAuthority
	return p.writeMint(ctx, mint, types.MintData{
		MintAuthority: &authority,
		Decimals:      decimals,
		IsInitialized: true,
	})
}

// InitializeAccount allocates a token account for mint held by owner.
func (p TokenProgram) InitializeAccount(ctx context.Context, payer, account *solana.AccountMeta, mint, owner solana.PublicKey) error {
	if _, err := p.GetMint(ctx, mint); err != nil {
		return err
	}
	if err := p.k.CreateAccount(ctx, payer, account, types.TokenAccountLen, solana.TokenProgramID); err != nil {
		return err
	}
	return p.writeTokenAccount(ctx, account, types.TokenAccountData{
		Mint:  mint,
		Owner: owner,
		State: types.TokenAccountInitialized,
	})
}

// MintTo issues amount new tokens into dest.
func (p TokenProgram) MintTo(ctx context.Context, mint, dest, authority *solana.AccountMeta, amount uint64) error {
	checks := types.Checklist{
		types.RequireWritable("mint", mint),
		types.RequireWritable("destination", dest),
		types.RequireSigner("mint authority", authority),
	}
	if err := checks.Verify(); err != nil {
		return err
	}

	mintData, err := p.GetMint(ctx, mint.PublicKey)
	if err != nil {
		return err
	}
	if mintData.MintAuthority == nil || !mintData.MintAuthority.Equals(authority.PublicKey) {
		return errorsmod.Wrapf(types.ErrConstraintTokenOwner, "%s is not the mint authority", authority.PublicKey)
	}
	destData, err := p.GetTokenAccount(ctx, dest.PublicKey)
	if err != nil {
		return err
	}
	if !destData.Mint.Equals(mint.PublicKey) {
		return errorsmod.Wrapf(types.ErrConstraintTokenMint, "destination mint %s", destData.Mint)
	}
	if destData.State == types.TokenAccountFrozen {
		return errorsmod.Wrapf(types.ErrAccountFrozen, "%s", dest.PublicKey)
	}
	if mintData.Supply+amount < mintData.Supply || destData.Amount+amount < destData.Amount {
		return errorsmod.Wrap(types.ErrArithmeticOverflow, "mint to")
	}

	mintData.Supply += amount
	destData.Amount += amount
	if err := p.writeMint(ctx, mint, mintData); err != nil {
		return err
	}
	return p.writeTokenAccount(ctx, dest, destData)
}

// Approve lets delegate move up to amount out of source.
func (p TokenProgram) Approve(ctx context.Context, source *solana.AccountMeta, delegate solana.PublicKey, owner *solana.AccountMeta, amount uint64) error {
	checks := types.Checklist{
		types.RequireWritable("source", source),
		types.RequireSigner("owner", owner),
	}
	if err := checks.Verify(); err != nil {
		return err
	}

	data, err := p.GetTokenAccount(ctx, source.PublicKey)
	if err != nil {
		return err
	}
	if !data.Owner.Equals(owner.PublicKey) {
		return errorsmod.Wrapf(types.ErrConstraintTokenOwner, "%s does not own %s", owner.PublicKey, source.PublicKey)
	}
	if data.State == types.TokenAccountFrozen {
		return errorsmod.Wrapf(types.ErrAccountFrozen, "%s", source.PublicKey)
	}

	data.Delegate = &delegate
	data.DelegatedAmount = amount
	return p.writeTokenAccount(ctx, source, data)
}

// Transfer moves amount from one token account to another of the same mint.
// authority is either the owner of from or its delegate; a delegate consumes
// its allowance.
func (p TokenProgram) Transfer(ctx context.Context, from, to, authority *solana.AccountMeta, amount uint64) error {
	checks := types.Checklist{
		types.RequireWritable("source", from),
		types.RequireWritable("destination", to),
		types.RequireSigner("authority", authority),
	}
	if err := checks.Verify(); err != nil {
		return err
	}

	src, err := p.GetTokenAccount(ctx, from.PublicKey)
	if err != nil {
		return err
	}
	dst, err := p.GetTokenAccount(ctx, to.PublicKey)
	if err != nil {
		return err
	}
	if src.State == types.TokenAccountFrozen || dst.State == types.TokenAccountFrozen {
		return errorsmod.Wrap(types.ErrAccountFrozen, "transfer")
	}
	if !src.Mint.Equals(dst.Mint) {
		return errorsmod.Wrapf(types.ErrConstraintTokenMint, "source mint %s, destination mint %s", src.Mint, dst.Mint)
	}

	switch {
	case src.Owner.Equals(authority.PublicKey):
	case src.Delegate != nil && src.Delegate.Equals(authority.PublicKey):
		if src.DelegatedAmount < amount {
			return errorsmod.Wrapf(types.ErrInsufficientFunds, "delegate allowance %d, needs %d", src.DelegatedAmount, amount)
		}
		src.DelegatedAmount -= amount
		if src.DelegatedAmount == 0 {
			src.Delegate = nil
		}
	default:
		return errorsmod.Wrapf(types.ErrConstraintTokenOwner, "%s may not transfer from %s", authority.PublicKey, from.PublicKey)
	}

	if src.Amount < amount {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "%s holds %d, needs %d", from.PublicKey, src.Amount, amount)
	}
	if from.PublicKey.Equals(to.PublicKey) {
		return p.writeTokenAccount(ctx, from, src)
	}
	if dst.Amount+amount < dst.Amount {
		return errorsmod.Wrap(types.ErrArithmeticOverflow, "transfer")
	}

	src.Amount -= amount
	dst.Amount += amount
	if err := p.writeTokenAccount(ctx, from, src); err != nil {
		return err
	}
	return p.writeTokenAccount(ctx, to, dst)
}
