package testutils

import (
	"github.com/gagliardetto/solana-go"
)

type TestAccounts struct {
	Payer    solana.PublicKey
	EmitterA solana.PublicKey
	EmitterB solana.PublicKey
}

func NewTestAccounts() TestAccounts {
	return TestAccounts{
		Payer:    solana.NewWallet().PublicKey(),
		EmitterA: solana.NewWallet().PublicKey(),
		EmitterB: solana.NewWallet().PublicKey(),
	}
}

// NewKeypairAddress stands in for a freshly generated keypair.
func NewKeypairAddress() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func Signer(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, true, true)
}

func Writable(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, true, false)
}

func ReadOnly(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, false, false)
}
