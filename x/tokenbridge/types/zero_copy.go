package types

import (
	errorsmod "cosmossdk.io/errors"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// TokenAccount is a read-only view over the bytes of an account the token
// program owns. Load checks owner, size and state once; each accessor reads
// its field from a fixed offset on every call.
type TokenAccount struct {
	data []byte
}

// LoadTokenAccount validates acct as an initialized token account.
func LoadTokenAccount(acct svmtypes.Account) (TokenAccount, error) {
	if !acct.IsOwnedBy(solana.TokenProgramID) {
		return TokenAccount{}, errorsmod.Wrapf(svmtypes.ErrConstraintTokenProgram, "owner %s", acct.Owner)
	}
	if len(acct.Data) != svmtypes.TokenAccountLen {
		return TokenAccount{}, errorsmod.Wrapf(svmtypes.ErrAccountDidNotDeserialize, "token account length %d", len(acct.Data))
	}
	switch svmtypes.TokenAccountState(acct.Data[108]) {
	case svmtypes.TokenAccountInitialized, svmtypes.TokenAccountFrozen:
	case svmtypes.TokenAccountUninitialized:
		return TokenAccount{}, svmtypes.ErrAccountNotInitialized
	default:
		return TokenAccount{}, errorsmod.Wrapf(svmtypes.ErrAccountDidNotDeserialize, "token account state %d", acct.Data[108])
	}
	return TokenAccount{data: acct.Data}, nil
}

func (a TokenAccount) Mint() solana.PublicKey {
	return solana.PublicKeyFromBytes(a.data[0:32])
}

func (a TokenAccount) Owner() solana.PublicKey {
	return solana.PublicKeyFromBytes(a.data[32:64])
}

func (a TokenAccount) Amount() uint64 {
	return bin.LE.Uint64(a.data[64:72])
}

// Delegate is set when DelegatedAmount may be spent by someone other than the owner.
func (a TokenAccount) Delegate() *solana.PublicKey {
	return optionKey(a.data[72:108])
}

func (a TokenAccount) State() svmtypes.TokenAccountState {
	return svmtypes.TokenAccountState(a.data[108])
}

// IsNative returns the rent-exempt reserve of a wrapped SOL account, nil otherwise.
func (a TokenAccount) IsNative() *uint64 {
	if bin.LE.Uint32(a.data[109:113]) == 0 {
		return nil
	}
	reserve := bin.LE.Uint64(a.data[113:121])
	return &reserve
}

func (a TokenAccount) DelegatedAmount() uint64 {
	return bin.LE.Uint64(a.data[121:129])
}

func (a TokenAccount) CloseAuthority() *solana.PublicKey {
	return optionKey(a.data[129:165])
}

// Mint is a read-only view over a mint account.
type Mint struct {
	data []byte
}

// LoadMint validates acct as an initialized mint.
func LoadMint(acct svmtypes.Account) (Mint, error) {
	if !acct.IsOwnedBy(solana.TokenProgramID) {
		return Mint{}, errorsmod.Wrapf(svmtypes.ErrConstraintTokenProgram, "owner %s", acct.Owner)
	}
	if len(acct.Data) != svmtypes.MintLen {
		return Mint{}, errorsmod.Wrapf(svmtypes.ErrAccountDidNotDeserialize, "mint length %d", len(acct.Data))
	}
	if acct.Data[45] == 0 {
		return Mint{}, svmtypes.ErrAccountNotInitialized
	}
	return Mint{data: acct.Data}, nil
}

func (m Mint) MintAuthority() *solana.PublicKey {
	return optionKey(m.data[0:36])
}

func (m Mint) Supply() uint64 {
	return bin.LE.Uint64(m.data[36:44])
}

func (m Mint) Decimals() uint8 {
	return m.data[44]
}

func (m Mint) IsInitialized() bool {
	return m.data[45] != 0
}

func (m Mint) FreezeAuthority() *solana.PublicKey {
	return optionKey(m.data[46:82])
}

// optionKey reads a 36 byte COption<Pubkey>.
func optionKey(b []byte) *solana.PublicKey {
	if bin.LE.Uint32(b[0:4]) == 0 {
		return nil
	}
	key := solana.PublicKeyFromBytes(b[4:36])
	return &key
}
