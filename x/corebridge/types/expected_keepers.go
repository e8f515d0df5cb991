package types

import (
	"context"

	"github.com/gagliardetto/solana-go"

	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// SVM keeper
type SVMKeeper interface {
	GetAccount(ctx context.Context, key solana.PublicKey) (svmtypes.Account, error)
	Transfer(ctx context.Context, from, to *solana.AccountMeta, lamports uint64) error
	CreateAccount(ctx context.Context, payer, target *solana.AccountMeta, space uint64, owner solana.PublicKey) error
	WriteAccountData(ctx context.Context, program solana.PublicKey, meta *solana.AccountMeta, data []byte) error
	Clock(ctx context.Context) uint32
}
