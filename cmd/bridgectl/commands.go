package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	sdkversion "github.com/cosmos/cosmos-sdk/version"
	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pushchain/svm-bridge/observer"
	"github.com/pushchain/svm-bridge/observer/db"
	"github.com/pushchain/svm-bridge/observer/presenter"
	"github.com/pushchain/svm-bridge/observer/store"
	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
	tokenbridgetypes "github.com/pushchain/svm-bridge/x/tokenbridge/types"
)

func InitRootCmd(rootCmd *cobra.Command, cliCtx *cliContext) {
	rootCmd.AddCommand(deriveCmd(cliCtx))
	rootCmd.AddCommand(payloadCmd())
	rootCmd.AddCommand(normalizeCmd())
	rootCmd.AddCommand(simulateCmd(cliCtx))
	rootCmd.AddCommand(messagesCmd(cliCtx))
	rootCmd.AddCommand(serveCmd(cliCtx))
	rootCmd.AddCommand(versionCmd())
}

func printField(w io.Writer, name string, value any) {
	fmt.Fprintf(w, "%-20s %v\n", name+":", value)
}

func parseAddress(name, s string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "invalid %s %q", name, s)
	}
	return key, nil
}

func parseHex(s string) ([]byte, error) {
	bz, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex")
	}
	return bz, nil
}

func encodeAddress(addr [32]byte) string {
	return base58.Encode(addr[:])
}

func deriveCmd(cliCtx *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the program derived addresses of the configured bridges",
	}
	cmd.AddCommand(deriveCoreCmd(cliCtx))
	cmd.AddCommand(deriveTokenCmd(cliCtx))
	return cmd
}

func deriveCoreCmd(cliCtx *cliContext) *cobra.Command {
	var emitter, program string
	cmd := &cobra.Command{
		Use:   "core",
		Short: "Core bridge config, fee collector and emitter accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coreID, _, err := cliCtx.cfg.ProgramIDs()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printField(out, "program", coreID)
			printField(out, "config", corebridgetypes.ConfigAddress(coreID))
			printField(out, "fee_collector", corebridgetypes.FeeCollectorAddress(coreID))
			if emitter != "" {
				key, err := parseAddress("emitter", emitter)
				if err != nil {
					return err
				}
				printField(out, "emitter_sequence", corebridgetypes.EmitterSequenceAddress(coreID, key))
			}
			if program != "" {
				key, err := parseAddress("program", program)
				if err != nil {
					return err
				}
				printField(out, "program_emitter", corebridgetypes.ProgramEmitterAddress(key))
				printField(out, "program_sequence", corebridgetypes.EmitterSequenceAddress(coreID, key))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&emitter, "emitter", "", "emitter whose sequence tracker to derive")
	cmd.Flags().StringVar(&program, "program", "", "program whose emitter authority to derive")
	return cmd
}

func deriveTokenCmd(cliCtx *cliContext) *cobra.Command {
	var mint string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token bridge config, authorities, emitter and custody accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coreID, tokenID, err := cliCtx.cfg.ProgramIDs()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			emitter := tokenbridgetypes.EmitterAddress(tokenID)
			printField(out, "program", tokenID)
			printField(out, "config", tokenbridgetypes.ConfigAddress(tokenID))
			printField(out, "transfer_authority", tokenbridgetypes.TransferAuthorityAddress(tokenID))
			printField(out, "custody_authority", tokenbridgetypes.CustodyAuthorityAddress(tokenID))
			printField(out, "emitter", emitter)
			printField(out, "emitter_sequence", corebridgetypes.EmitterSequenceAddress(coreID, emitter))
			if mint != "" {
				key, err := parseAddress("mint", mint)
				if err != nil {
					return err
				}
				printField(out, "custody", tokenbridgetypes.CustodyAddress(tokenID, key))
				printField(out, "wrapped_asset", tokenbridgetypes.WrappedAssetAddress(tokenID, key))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mint, "mint", "", "mint whose custody account to derive")
	return cmd
}

func payloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Encode and decode token bridge transfer payloads",
	}
	cmd.AddCommand(payloadEncodeCmd())
	cmd.AddCommand(payloadDecodeCmd())
	return cmd
}

type encodeFlags struct {
	kind       string
	amount     string
	fee        string
	token      string
	tokenChain uint16
	to         string
	toChain    uint16
	sender     string
	payload    string
}

func (f encodeFlags) encode() ([]byte, error) {
	amount, err := uint256.FromDecimal(f.amount)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", f.amount)
	}
	token, err := parseAddress("token", f.token)
	if err != nil {
		return nil, err
	}
	to, err := parseAddress("recipient", f.to)
	if err != nil {
		return nil, err
	}

	switch f.kind {
	case "transfer":
		fee, err := uint256.FromDecimal(f.fee)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid relayer fee %q", f.fee)
		}
		t := tokenbridgetypes.Transfer{
			NormAmount:     amount,
			TokenAddress:   token,
			TokenChain:     f.tokenChain,
			Recipient:      to,
			RecipientChain: f.toChain,
			NormRelayerFee: fee,
		}
		if err := t.Verify(); err != nil {
			return nil, err
		}
		return t.Bytes()
	case "transfer-with-message":
		sender, err := parseAddress("sender", f.sender)
		if err != nil {
			return nil, err
		}
		payload, err := parseHex(f.payload)
		if err != nil {
			return nil, err
		}
		t := tokenbridgetypes.TransferWithMessage{
			NormAmount:    amount,
			TokenAddress:  token,
			TokenChain:    f.tokenChain,
			Redeemer:      to,
			RedeemerChain: f.toChain,
			Sender:        sender,
			Payload:       payload,
		}
		if err := t.Verify(); err != nil {
			return nil, err
		}
		return t.Bytes()
	default:
		return nil, errors.Errorf("unknown payload type %q", f.kind)
	}
}

func payloadEncodeCmd() *cobra.Command {
	var f encodeFlags
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a transfer payload as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := f.encode()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(bz))
			return nil
		},
	}
	cmd.Flags().StringVar(&f.kind, "type", "transfer-with-message", "transfer or transfer-with-message")
	cmd.Flags().StringVar(&f.amount, "amount", "", "normalized amount")
	cmd.Flags().StringVar(&f.fee, "fee", "0", "normalized relayer fee (transfer only)")
	cmd.Flags().StringVar(&f.token, "token", "", "token address (base58)")
	cmd.Flags().Uint16Var(&f.tokenChain, "token-chain", corebridgetypes.SolanaChainID, "token chain")
	cmd.Flags().StringVar(&f.to, "to", "", "recipient or redeemer address (base58)")
	cmd.Flags().Uint16Var(&f.toChain, "to-chain", 0, "recipient or redeemer chain")
	cmd.Flags().StringVar(&f.sender, "sender", "", "sender address (base58, transfer-with-message only)")
	cmd.Flags().StringVar(&f.payload, "payload", "", "message payload (hex, transfer-with-message only)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func payloadDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a transfer payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := parseHex(args[0])
			if err != nil {
				return err
			}
			if len(bz) == 0 {
				return errors.New("empty payload")
			}
			out := cmd.OutOrStdout()
			switch bz[0] {
			case tokenbridgetypes.PayloadIDTransfer:
				t, err := tokenbridgetypes.ParseTransfer(bz)
				if err != nil {
					return err
				}
				printField(out, "type", "transfer")
				printField(out, "amount", t.NormAmount.Dec())
				printField(out, "token", encodeAddress(t.TokenAddress))
				printField(out, "token_chain", t.TokenChain)
				printField(out, "recipient", encodeAddress(t.Recipient))
				printField(out, "recipient_chain", t.RecipientChain)
				printField(out, "relayer_fee", t.NormRelayerFee.Dec())
			case tokenbridgetypes.PayloadIDTransferWithMessage:
				t, err := tokenbridgetypes.ParseTransferWithMessage(bz)
				if err != nil {
					return err
				}
				printField(out, "type", "transfer-with-message")
				printField(out, "amount", t.NormAmount.Dec())
				printField(out, "token", encodeAddress(t.TokenAddress))
				printField(out, "token_chain", t.TokenChain)
				printField(out, "redeemer", encodeAddress(t.Redeemer))
				printField(out, "redeemer_chain", t.RedeemerChain)
				printField(out, "sender", encodeAddress(t.Sender))
				printField(out, "payload", hex.EncodeToString(t.Payload))
			default:
				return errors.Errorf("unknown payload id %d", bz[0])
			}
			return nil
		},
	}
}

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <amount> <decimals>",
		Short: "Show the bridged amount of a raw token amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid amount %q", args[0])
			}
			decimals, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return errors.Wrapf(err, "invalid decimals %q", args[1])
			}
			norm := tokenbridgetypes.Normalize(uint256.NewInt(amount), uint8(decimals))
			out := cmd.OutOrStdout()
			printField(out, "normalized", norm.Dec())
			printField(out, "truncated", tokenbridgetypes.TruncateAmount(amount, uint8(decimals)))
			return nil
		},
	}
}

func messagesCmd(cliCtx *cliContext) *cobra.Command {
	var emitter string
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List messages recorded by the observer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.OpenFileDB(cliCtx.cfg.ObserverDBDir, cliCtx.cfg.ObserverDBName, true)
			if err != nil {
				return err
			}
			defer database.Close()

			obs := observer.New(database, prometheus.NewRegistry(), cliCtx.logger)
			msgs, err := obs.ListMessages(cmd.Context(), emitter)
			if err != nil {
				return err
			}

			return printMessages(cmd.OutOrStdout(), msgs)
		},
	}
	cmd.Flags().StringVar(&emitter, "emitter", "", "only list messages of this emitter")
	return cmd
}

func serveCmd(cliCtx *cliContext) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve observed messages and observer metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.OpenFileDB(cliCtx.cfg.ObserverDBDir, cliCtx.cfg.ObserverDBName, true)
			if err != nil {
				return err
			}
			defer database.Close()

			registry := prometheus.NewRegistry()
			obs := observer.New(database, registry, cliCtx.logger)
			if addr == "" {
				addr = cliCtx.cfg.MetricsAddr
			}
			return presenter.NewPresenter(cliCtx.logger, obs, registry).Serve(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, defaults to the configured metrics address")
	return cmd
}

func printMessages(out io.Writer, msgs []store.PublishedMessage) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMITTER\tSEQUENCE\tNONCE\tCONSISTENCY\tUNRELIABLE\tHEIGHT\tPAYLOAD")
	for _, msg := range msgs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%t\t%d\t%s\n",
			msg.Emitter, msg.Sequence, msg.Nonce, msg.ConsistencyLevel, msg.Unreliable, msg.BlockHeight, hex.EncodeToString(msg.Payload))
	}
	return w.Flush()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print bridgectl version info",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", sdkversion.Name)
			fmt.Fprintf(out, "App Name:   %s\n", sdkversion.AppName)
			fmt.Fprintf(out, "Version:    %s\n", sdkversion.Version)
			fmt.Fprintf(out, "Commit:     %s\n", sdkversion.Commit)
			fmt.Fprintf(out, "Build Tags: %s\n", sdkversion.BuildTags)
		},
	}
}
