package types

import (
	"github.com/gagliardetto/solana-go"
)

type InitializeAccounts struct {
	Payer  *solana.AccountMeta
	Config *solana.AccountMeta
}

// CoreBridgeAccounts are forwarded untouched to the core bridge publish.
// FeeCollector is optional.
type CoreBridgeAccounts struct {
	Config          *solana.AccountMeta
	Message         *solana.AccountMeta
	Emitter         *solana.AccountMeta
	EmitterSequence *solana.AccountMeta
	FeeCollector    *solana.AccountMeta
}

type TransferTokensNativeAccounts struct {
	Payer             *solana.AccountMeta
	SrcToken          *solana.AccountMeta
	Mint              *solana.AccountMeta
	WrappedAsset      *solana.AccountMeta
	CustodyToken      *solana.AccountMeta
	TransferAuthority *solana.AccountMeta
	CustodyAuthority  *solana.AccountMeta
	Core              CoreBridgeAccounts
}

type TransferTokensWithPayloadNativeAccounts struct {
	TransferTokensNativeAccounts
	SenderAuthority *solana.AccountMeta
}

type TransferTokensNativeArgs struct {
	Nonce          uint32
	Amount         uint64
	RelayerFee     uint64
	Recipient      [32]byte
	RecipientChain uint16
}

type TransferTokensWithPayloadArgs struct {
	Nonce         uint32
	Amount        uint64
	Redeemer      [32]byte
	RedeemerChain uint16
	Payload       []byte
	// CpiProgramID makes the program the sender; SenderAuthority must then be its sender PDA.
	CpiProgramID *solana.PublicKey
}

// PublishAccounts presents the instruction's accounts to the core bridge.
func (a TransferTokensNativeAccounts) PublishAccounts() PublishAccounts {
	return PublishAccounts{core: a.Core, payer: a.Payer}
}

// PublishAccounts satisfies the core bridge publish contract.
type PublishAccounts struct {
	core  CoreBridgeAccounts
	payer *solana.AccountMeta
}

func (p PublishAccounts) CoreBridgeConfig() *solana.AccountMeta     { return p.core.Config }
func (p PublishAccounts) CoreEmitterAuthority() *solana.AccountMeta { return p.core.Emitter }
func (p PublishAccounts) CoreEmitterSequence() *solana.AccountMeta  { return p.core.EmitterSequence }
func (p PublishAccounts) CoreMessage() *solana.AccountMeta          { return p.core.Message }
func (p PublishAccounts) CoreFeeCollector() *solana.AccountMeta     { return p.core.FeeCollector }
func (p PublishAccounts) Payer() *solana.AccountMeta                { return p.payer }
