package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"
)

// Check is a single named pre-condition of an instruction.
type Check struct {
	Name   string
	Verify func() error
}

// Checklist runs its checks in order and stops at the first failure.
type Checklist []Check

func (c Checklist) Verify() error {
	for _, check := range c {
		if err := check.Verify(); err != nil {
			return errorsmod.Wrapf(err, "check %q failed", check.Name)
		}
	}
	return nil
}

// RequirePresent fails when an account required by the instruction was not passed.
func RequirePresent(name string, meta *solana.AccountMeta) Check {
	return Check{
		Name: name + " present",
		Verify: func() error {
			if meta == nil {
				return ErrNotEnoughAccountKeys
			}
			return nil
		},
	}
}

func RequireSigner(name string, meta *solana.AccountMeta) Check {
	return Check{
		Name: name + " is signer",
		Verify: func() error {
			if meta == nil {
				return ErrNotEnoughAccountKeys
			}
			if !meta.IsSigner {
				return errorsmod.Wrapf(ErrMissingRequiredSignature, "%s", meta.PublicKey)
			}
			return nil
		},
	}
}

func RequireWritable(name string, meta *solana.AccountMeta) Check {
	return Check{
		Name: name + " is writable",
		Verify: func() error {
			if meta == nil {
				return ErrNotEnoughAccountKeys
			}
			if !meta.IsWritable {
				return errorsmod.Wrapf(ErrAccountNotWritable, "%s", meta.PublicKey)
			}
			return nil
		},
	}
}

// RequireAddress enforces a seeds constraint: meta must sit at the expected derived address.
func RequireAddress(name string, meta *solana.AccountMeta, expected solana.PublicKey) Check {
	return Check{
		Name: name + " seeds",
		Verify: func() error {
			if meta == nil {
				return ErrNotEnoughAccountKeys
			}
			if !meta.PublicKey.Equals(expected) {
				return errorsmod.Wrapf(ErrConstraintSeeds, "expected %s, got %s", expected, meta.PublicKey)
			}
			return nil
		},
	}
}

// RequireOwner fails unless acct is owned by owner.
func RequireOwner(name string, acct Account, owner solana.PublicKey) Check {
	return Check{
		Name: name + " owner",
		Verify: func() error {
			if !acct.IsOwnedBy(owner) {
				return errorsmod.Wrapf(ErrConstraintOwner, "expected %s, got %s", owner, acct.Owner)
			}
			return nil
		},
	}
}

// RequireProgram fails unless meta is the given program.
func RequireProgram(name string, meta *solana.AccountMeta, program solana.PublicKey) Check {
	return Check{
		Name: name + " program id",
		Verify: func() error {
			if meta == nil {
				return ErrNotEnoughAccountKeys
			}
			if !meta.PublicKey.Equals(program) {
				return errorsmod.Wrapf(ErrInvalidAccountData, "expected program %s, got %s", program, meta.PublicKey)
			}
			return nil
		},
	}
}
