package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pushchain/svm-bridge/app"
	"github.com/pushchain/svm-bridge/config"
	"github.com/pushchain/svm-bridge/observer"
	"github.com/pushchain/svm-bridge/observer/db"
	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
	tokenbridgetypes "github.com/pushchain/svm-bridge/x/tokenbridge/types"
)

const (
	simMintDecimals   = 9
	simUserBalance    = 1_000_000_000
	simTransferAmount = 150_000_000
	simRecipientChain = 2
)

var simGenesisTime = time.Unix(1_700_000_000, 0)

func signer(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, true, true)
}

func writable(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, true, false)
}

func readOnly(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, false, false)
}

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// simulation drives a throwaway in-memory ledger block by block and hands
// every block's events to the observer.
type simulation struct {
	app       *app.BridgeApp
	cfg       config.Config
	observer  *observer.Observer
	logger    zerolog.Logger
	blockTime time.Time
	payer     solana.PublicKey
}

func newSimulation(cfg config.Config, obs *observer.Observer, logger zerolog.Logger) (*simulation, error) {
	coreID, tokenID, err := cfg.ProgramIDs()
	if err != nil {
		return nil, err
	}
	logger = logger.With().Str("component", "simulate").Logger()
	bridgeApp, err := app.NewBridgeApp(log.NewCustomLogger(logger), dbm.NewMemDB(), app.Options{
		CoreBridgeProgramID:  coreID,
		TokenBridgeProgramID: tokenID,
	})
	if err != nil {
		return nil, err
	}
	return &simulation{
		app:       bridgeApp,
		cfg:       cfg,
		observer:  obs,
		logger:    logger,
		blockTime: simGenesisTime,
		payer:     newKey(),
	}, nil
}

// step runs fn in the next block, commits it and feeds its events to the observer.
func (s *simulation) step(ctx context.Context, name string, fn func(ctx sdk.Context) error) error {
	sdkCtx := s.app.NewContext(s.blockTime)
	if err := fn(sdkCtx); err != nil {
		return errors.Wrapf(err, "%s failed", name)
	}
	s.app.Commit()
	s.blockTime = s.blockTime.Add(time.Second)

	added, err := s.observer.HandleEvents(ctx, sdkCtx.BlockHeight(), sdkCtx.EventManager().Events())
	if err != nil {
		return err
	}
	s.logger.Info().Str("step", name).Int64("height", sdkCtx.BlockHeight()).Int("messages", added).Msg("block committed")
	return nil
}

func (s *simulation) postAccounts(emitter, message solana.PublicKey) corebridgetypes.PostMessageAccounts {
	coreID := s.app.CoreBridgeKeeper.ProgramID()
	return corebridgetypes.PostMessageAccounts{
		Config:          writable(corebridgetypes.ConfigAddress(coreID)),
		Message:         signer(message),
		Emitter:         signer(emitter),
		EmitterSequence: writable(corebridgetypes.EmitterSequenceAddress(coreID, emitter)),
		Payer:           signer(s.payer),
		FeeCollector:    writable(corebridgetypes.FeeCollectorAddress(coreID)),
	}
}

func (s *simulation) run(ctx context.Context) error {
	err := s.step(ctx, "genesis", func(ctx sdk.Context) error {
		gs := app.DefaultGenesis(s.payer)
		gs.PayerLamports = s.cfg.PayerLamports
		gs.FeeLamports = s.cfg.FeeLamports
		gs.GuardianSetTTLSeconds = s.cfg.GuardianSetTTLSeconds
		return s.app.InitGenesis(ctx, gs)
	})
	if err != nil {
		return err
	}

	emitter := newKey()
	err = s.step(ctx, "post message", func(ctx sdk.Context) error {
		_, err := s.app.CoreBridgeKeeper.PostMessage(ctx, s.postAccounts(emitter, newKey()), corebridgetypes.PostMessageArgs{
			Nonce:      1,
			Payload:    []byte("hello from bridgectl"),
			Commitment: corebridgetypes.CommitmentFinalized,
		})
		return err
	})
	if err != nil {
		return err
	}

	// the same account carries both unreliable messages
	unreliable := newKey()
	for i, payload := range [][]byte{{1, 2, 3}, {4, 5, 6}} {
		nonce := uint32(7 + i)
		err = s.step(ctx, fmt.Sprintf("post unreliable %d", i+1), func(ctx sdk.Context) error {
			_, err := s.app.CoreBridgeKeeper.PostMessageUnreliable(ctx, s.postAccounts(emitter, unreliable), corebridgetypes.PostMessageArgs{
				Nonce:      nonce,
				Payload:    payload,
				Commitment: corebridgetypes.CommitmentConfirmed,
			})
			return err
		})
		if err != nil {
			return err
		}
	}

	return s.transferNative(ctx)
}

func (s *simulation) transferNative(ctx context.Context) error {
	tokenID := s.app.TokenBridgeKeeper.ProgramID()
	coreID := s.app.CoreBridgeKeeper.ProgramID()
	mint, user, userToken, mintAuthority := newKey(), newKey(), newKey(), newKey()

	err := s.step(ctx, "token setup", func(ctx sdk.Context) error {
		token := s.app.TokenProgram
		if err := token.InitializeMint(ctx, signer(s.payer), signer(mint), simMintDecimals, mintAuthority); err != nil {
			return err
		}
		if err := token.InitializeAccount(ctx, signer(s.payer), signer(userToken), mint, user); err != nil {
			return err
		}
		if err := token.MintTo(ctx, writable(mint), writable(userToken), signer(mintAuthority), simUserBalance); err != nil {
			return err
		}
		return token.Approve(ctx, writable(userToken), tokenbridgetypes.TransferAuthorityAddress(tokenID), signer(user), simUserBalance)
	})
	if err != nil {
		return err
	}

	emitter := tokenbridgetypes.EmitterAddress(tokenID)
	return s.step(ctx, "transfer tokens native", func(ctx sdk.Context) error {
		return s.app.TokenBridgeKeeper.TransferTokensNative(ctx, tokenbridgetypes.TransferTokensNativeAccounts{
			Payer:             signer(s.payer),
			SrcToken:          writable(userToken),
			Mint:              readOnly(mint),
			WrappedAsset:      readOnly(tokenbridgetypes.WrappedAssetAddress(tokenID, mint)),
			CustodyToken:      writable(tokenbridgetypes.CustodyAddress(tokenID, mint)),
			TransferAuthority: readOnly(tokenbridgetypes.TransferAuthorityAddress(tokenID)),
			CustodyAuthority:  readOnly(tokenbridgetypes.CustodyAuthorityAddress(tokenID)),
			Core: tokenbridgetypes.CoreBridgeAccounts{
				Config:          writable(corebridgetypes.ConfigAddress(coreID)),
				Message:         signer(newKey()),
				Emitter:         readOnly(emitter),
				EmitterSequence: writable(corebridgetypes.EmitterSequenceAddress(coreID, emitter)),
				FeeCollector:    writable(corebridgetypes.FeeCollectorAddress(coreID)),
			},
		}, tokenbridgetypes.TransferTokensNativeArgs{
			Nonce:          42,
			Amount:         simTransferAmount,
			Recipient:      newKey(),
			RecipientChain: simRecipientChain,
		})
	})
}

func writeMetrics(out io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return errors.Wrap(err, "failed to write metrics")
		}
	}
	return nil
}

func simulateCmd(cliCtx *cliContext) *cobra.Command {
	var inMemory, showMetrics bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run reliable, unreliable and token bridge publishes on a local ledger and record them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				database *db.DB
				err      error
			)
			if inMemory {
				database, err = db.OpenInMemoryDB(true)
			} else {
				database, err = db.OpenFileDB(cliCtx.cfg.ObserverDBDir, cliCtx.cfg.ObserverDBName, true)
			}
			if err != nil {
				return err
			}
			defer database.Close()

			registry := prometheus.NewRegistry()
			obs := observer.New(database, registry, cliCtx.logger)
			sim, err := newSimulation(cliCtx.cfg, obs, cliCtx.logger)
			if err != nil {
				return err
			}
			if err := sim.run(cmd.Context()); err != nil {
				return err
			}

			msgs, err := obs.ListMessages(cmd.Context(), "")
			if err != nil {
				return err
			}
			if err := printMessages(cmd.OutOrStdout(), msgs); err != nil {
				return err
			}
			if showMetrics || cliCtx.cfg.MetricsEnabled {
				return writeMetrics(cmd.OutOrStdout(), registry)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "keep observed messages in memory instead of the observer database")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print observer metrics after the run")
	return cmd
}
