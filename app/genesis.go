package app

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
	tokenbridgetypes "github.com/pushchain/svm-bridge/x/tokenbridge/types"
)

// DefaultGuardianSetTTL is how long an expired guardian set stays valid, in seconds.
const DefaultGuardianSetTTL = 86400

// GenesisState funds the genesis payer and initializes both bridges with it.
type GenesisState struct {
	Payer                 solana.PublicKey
	PayerLamports         uint64
	FeeLamports           uint64
	GuardianSetTTLSeconds uint32
}

func DefaultGenesis(payer solana.PublicKey) GenesisState {
	return GenesisState{
		Payer:                 payer,
		PayerLamports:         1_000_000_000_000,
		FeeLamports:           100,
		GuardianSetTTLSeconds: DefaultGuardianSetTTL,
	}
}

// InitGenesis deploys the programs and initializes the core and token bridges.
func (app *BridgeApp) InitGenesis(ctx context.Context, gs GenesisState) error {
	if gs.Payer.IsZero() {
		return fmt.Errorf("genesis payer is required")
	}
	if err := app.Deploy(ctx); err != nil {
		return err
	}
	if err := app.SVMKeeper.Airdrop(ctx, gs.Payer, gs.PayerLamports); err != nil {
		return fmt.Errorf("failed to fund genesis payer: %w", err)
	}

	payer := solana.NewAccountMeta(gs.Payer, true, true)
	coreID := app.CoreBridgeKeeper.ProgramID()
	err := app.CoreBridgeKeeper.Initialize(ctx, corebridgetypes.InitializeAccounts{
		Payer:        payer,
		Config:       solana.Meta(corebridgetypes.ConfigAddress(coreID)).WRITE(),
		FeeCollector: solana.Meta(corebridgetypes.FeeCollectorAddress(coreID)).WRITE(),
	}, corebridgetypes.InitializeArgs{
		GuardianSetTTLSeconds: gs.GuardianSetTTLSeconds,
		FeeLamports:           gs.FeeLamports,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize core bridge: %w", err)
	}

	err = app.TokenBridgeKeeper.Initialize(ctx, tokenbridgetypes.InitializeAccounts{
		Payer:  payer,
		Config: solana.Meta(tokenbridgetypes.ConfigAddress(app.TokenBridgeKeeper.ProgramID())).WRITE(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token bridge: %w", err)
	}
	return nil
}
