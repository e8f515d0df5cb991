package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmkeeper "github.com/pushchain/svm-bridge/x/svm/keeper"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// Initialize creates the Config singleton and funds the fee collector to
// rent exemption. It can only succeed once.
func (k Keeper) Initialize(ctx context.Context, accts types.InitializeAccounts, args types.InitializeArgs) error {
	return svmkeeper.Atomic(ctx, func(ctx sdk.Context) error {
		checks := svmtypes.Checklist{
			svmtypes.RequireSigner("payer", accts.Payer),
			svmtypes.RequireWritable("payer", accts.Payer),
			svmtypes.RequireAddress("config", accts.Config, types.ConfigAddress(k.programID)),
			svmtypes.RequireWritable("config", accts.Config),
			svmtypes.RequireAddress("fee collector", accts.FeeCollector, types.FeeCollectorAddress(k.programID)),
			svmtypes.RequireWritable("fee collector", accts.FeeCollector),
		}
		if err := checks.Verify(); err != nil {
			return err
		}

		if err := k.createSigned(ctx, accts.Payer, accts.Config, types.ConfigLen, types.SeedConfig); err != nil {
			return err
		}

		collector, err := k.svmKeeper.GetAccount(ctx, accts.FeeCollector.PublicKey)
		if err != nil {
			return err
		}
		if exempt := svmtypes.MinimumBalance(0); collector.Lamports < exempt {
			if err := k.svmKeeper.Transfer(ctx, accts.Payer, accts.FeeCollector, exempt-collector.Lamports); err != nil {
				return err
			}
			collector.Lamports = exempt
		}

		cfg := types.Config{
			LastLamports:   collector.Lamports,
			GuardianSetTTL: args.GuardianSetTTLSeconds,
			FeeLamports:    args.FeeLamports,
		}
		if err := k.write(ctx, accts.Config, cfg); err != nil {
			return err
		}

		k.logger.Info("core bridge initialized", "config", accts.Config.PublicKey.String(), "fee_lamports", args.FeeLamports)
		return nil
	})
}

// loadConfig reads the Config passed as meta after checking it is the real singleton.
func (k Keeper) loadConfig(ctx context.Context, meta *solana.AccountMeta) (types.Config, error) {
	if err := svmtypes.RequireAddress("config", meta, types.ConfigAddress(k.programID)).Verify(); err != nil {
		return types.Config{}, err
	}
	acct, err := k.svmKeeper.GetAccount(ctx, meta.PublicKey)
	if err != nil {
		return types.Config{}, err
	}
	if !acct.Exists() {
		return types.Config{}, types.ErrNotInitialized
	}
	if err := svmtypes.RequireOwner("config", acct, k.programID).Verify(); err != nil {
		return types.Config{}, err
	}
	cfg, err := types.ParseConfig(acct.Data)
	if err != nil {
		return types.Config{}, errorsmod.Wrap(svmtypes.ErrAccountDidNotDeserialize, err.Error())
	}
	return cfg, nil
}

// GetConfig returns the core bridge Config.
func (k Keeper) GetConfig(ctx context.Context) (types.Config, error) {
	return k.loadConfig(ctx, solana.Meta(types.ConfigAddress(k.programID)))
}

// CollectFee charges the configured message fee. Without a fee collector or
// with a zero fee it does nothing. On payment the config records the new
// collector balance, so config must be writable then.
func (k Keeper) CollectFee(ctx context.Context, config, payer, feeCollector *solana.AccountMeta) error {
	cfg, err := k.loadConfig(ctx, config)
	if err != nil {
		return err
	}
	if feeCollector == nil || cfg.FeeLamports == 0 {
		return nil
	}

	checks := svmtypes.Checklist{
		svmtypes.RequireAddress("fee collector", feeCollector, types.FeeCollectorAddress(k.programID)),
		svmtypes.RequireWritable("fee collector", feeCollector),
		svmtypes.RequireWritable("config", config),
	}
	if err := checks.Verify(); err != nil {
		return err
	}

	if err := k.svmKeeper.Transfer(ctx, payer, feeCollector, cfg.FeeLamports); err != nil {
		return err
	}
	collector, err := k.svmKeeper.GetAccount(ctx, feeCollector.PublicKey)
	if err != nil {
		return err
	}
	cfg.LastLamports = collector.Lamports
	return k.write(ctx, config, cfg)
}
