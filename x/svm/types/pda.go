package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"
)

// Derive finds the program address for seeds under programID and the bump that proves it.
func Derive(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(seeds, programID)
}

// MustDerive is Derive for well-known seeds; it panics when no bump exists.
func MustDerive(programID solana.PublicKey, seeds ...[]byte) solana.PublicKey {
	addr, _, err := Derive(programID, seeds...)
	if err != nil {
		panic(err)
	}
	return addr
}

// SignerSeeds returns seeds with their canonical bump appended, ready for InvokeSigned.
func SignerSeeds(programID solana.PublicKey, seeds ...[]byte) ([][]byte, error) {
	_, bump, err := Derive(programID, seeds...)
	if err != nil {
		return nil, errorsmod.Wrap(ErrConstraintSeeds, err.Error())
	}
	signer := make([][]byte, 0, len(seeds)+1)
	signer = append(signer, seeds...)
	return append(signer, []byte{bump}), nil
}

// InvokeSigned returns a signing copy of meta when seeds (bump included) derive
// meta's address under programID. Only the program owning the seeds can produce
// that signature, which is what lets a program act as its PDAs.
func InvokeSigned(meta *solana.AccountMeta, programID solana.PublicKey, seeds ...[]byte) (*solana.AccountMeta, error) {
	if meta == nil {
		return nil, ErrNotEnoughAccountKeys
	}
	addr, err := solana.CreateProgramAddress(seeds, programID)
	if err != nil {
		return nil, errorsmod.Wrap(ErrConstraintSeeds, err.Error())
	}
	if !addr.Equals(meta.PublicKey) {
		return nil, errorsmod.Wrapf(ErrConstraintSeeds, "%s is not a program address of %s", meta.PublicKey, programID)
	}
	return solana.NewAccountMeta(meta.PublicKey, meta.IsWritable, true), nil
}
