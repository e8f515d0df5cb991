package types

import (
	"github.com/gagliardetto/solana-go"

	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

const (
	ModuleName = "corebridge"

	// SolanaChainID identifies this chain in every posted message.
	SolanaChainID uint16 = 1

	// MaxPayloadSize bounds a single message payload.
	MaxPayloadSize = 30 * 1024
)

// Seed prefixes of the core bridge program derived addresses.
var (
	SeedConfig          = []byte("Bridge")
	SeedFeeCollector    = []byte("fee_collector")
	SeedEmitterSequence = []byte("Sequence")

	// SeedProgramEmitter is derived under an integrating program, not the core bridge.
	SeedProgramEmitter = []byte("emitter")
)

// DefaultProgramID is the core bridge address used when none is configured.
var DefaultProgramID = solana.MustPublicKeyFromBase58("worm2ZoG2kUd4vFXhvjh93UUH596ayRfgQ2MgjNMTth")

func ConfigAddress(programID solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(programID, SeedConfig)
}

func FeeCollectorAddress(programID solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(programID, SeedFeeCollector)
}

// EmitterSequenceAddress is where the sequence tracker of emitter lives.
func EmitterSequenceAddress(programID, emitter solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(programID, SeedEmitterSequence, emitter.Bytes())
}

// ProgramEmitterAddress is the emitter authority an integrating program signs with.
func ProgramEmitterAddress(program solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(program, SeedProgramEmitter)
}
