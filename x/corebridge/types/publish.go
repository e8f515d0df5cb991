package types

import (
	"github.com/gagliardetto/solana-go"
)

// PublishMessageAccounts is what a composing program must supply to publish
// through the core bridge. Any accounts struct exposing these can be passed.
type PublishMessageAccounts interface {
	CoreBridgeConfig() *solana.AccountMeta
	CoreEmitterAuthority() *solana.AccountMeta
	CoreEmitterSequence() *solana.AccountMeta
	CoreMessage() *solana.AccountMeta
	// CoreFeeCollector returns nil when no fee collector was passed.
	CoreFeeCollector() *solana.AccountMeta
	Payer() *solana.AccountMeta
}

// PublishDirective selects which instruction PublishMessage runs.
type PublishDirective interface {
	publishDirective()
}

// MessageDirective posts a fresh finalized-once message account.
type MessageDirective struct {
	Nonce      uint32
	Commitment Commitment
}

// UnreliableDirective posts into a reusable message account.
type UnreliableDirective struct {
	Nonce      uint32
	Commitment Commitment
}

// PreparedDirective finalizes a draft written with InitMessageV1 and
// WriteMessageV1. The message argument of PublishMessage must be empty.
type PreparedDirective struct{}

func (MessageDirective) publishDirective()    {}
func (UnreliableDirective) publishDirective() {}
func (PreparedDirective) publishDirective()   {}

// PostMessageAccountsFrom maps the publish contract onto the post instructions.
func PostMessageAccountsFrom(accts PublishMessageAccounts) PostMessageAccounts {
	return PostMessageAccounts{
		Config:          accts.CoreBridgeConfig(),
		Message:         accts.CoreMessage(),
		Emitter:         accts.CoreEmitterAuthority(),
		EmitterSequence: accts.CoreEmitterSequence(),
		Payer:           accts.Payer(),
		FeeCollector:    accts.CoreFeeCollector(),
	}
}
