package types

import (
	"github.com/gagliardetto/solana-go"
)

type InitializeAccounts struct {
	Payer        *solana.AccountMeta
	Config       *solana.AccountMeta
	FeeCollector *solana.AccountMeta
}

type InitializeArgs struct {
	GuardianSetTTLSeconds uint32
	FeeLamports           uint64
}

// PostMessageAccounts serves both the reliable and the unreliable post
// instructions. FeeCollector is optional.
type PostMessageAccounts struct {
	Config          *solana.AccountMeta
	Message         *solana.AccountMeta
	Emitter         *solana.AccountMeta
	EmitterSequence *solana.AccountMeta
	Payer           *solana.AccountMeta
	FeeCollector    *solana.AccountMeta
}

type PostMessageArgs struct {
	Nonce      uint32
	Payload    []byte
	Commitment Commitment
}

type InitMessageV1Accounts struct {
	EmitterAuthority *solana.AccountMeta
	Draft            *solana.AccountMeta
	Payer            *solana.AccountMeta
	Config           *solana.AccountMeta
	FeeCollector     *solana.AccountMeta
}

type InitMessageV1Args struct {
	Nonce      uint32
	Commitment Commitment
	// Capacity is the payload size the draft is allocated with.
	Capacity uint32
	// CpiProgramID makes the program the emitter; EmitterAuthority must then be its emitter PDA.
	CpiProgramID *solana.PublicKey
}

type WriteMessageV1Accounts struct {
	EmitterAuthority *solana.AccountMeta
	Draft            *solana.AccountMeta
}

type WriteMessageV1Args struct {
	Index uint32
	Data  []byte
}

type FinalizeMessageV1Accounts struct {
	EmitterAuthority *solana.AccountMeta
	Draft            *solana.AccountMeta
	EmitterSequence  *solana.AccountMeta
	Payer            *solana.AccountMeta
}
