package types

import (
	"context"

	"github.com/gagliardetto/solana-go"

	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

//go:generate mockgen -source=expected_keepers.go -destination=../mocks/expected_keepers.go -package=mocks

// SVM keeper
type SVMKeeper interface {
	GetAccount(ctx context.Context, key solana.PublicKey) (svmtypes.Account, error)
	CreateAccount(ctx context.Context, payer, target *solana.AccountMeta, space uint64, owner solana.PublicKey) error
	WriteAccountData(ctx context.Context, program solana.PublicKey, meta *solana.AccountMeta, data []byte) error
}

// External token ledger
type TokenProgram interface {
	ProgramID() solana.PublicKey
	InitializeAccount(ctx context.Context, payer, account *solana.AccountMeta, mint, owner solana.PublicKey) error
	Transfer(ctx context.Context, from, to, authority *solana.AccountMeta, amount uint64) error
}

// Core bridge keeper
type CoreBridgeKeeper interface {
	ProgramID() solana.PublicKey
	PublishMessage(
		ctx context.Context,
		invoker solana.PublicKey,
		accts corebridgetypes.PublishMessageAccounts,
		message []byte,
		emitterSeeds [][]byte,
		directive corebridgetypes.PublishDirective,
	) (uint64, error)
}
