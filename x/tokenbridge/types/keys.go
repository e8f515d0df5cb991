package types

import (
	"github.com/gagliardetto/solana-go"

	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

const (
	ModuleName = "tokenbridge"

	// MaxDecimals is the canonical precision of bridged amounts.
	MaxDecimals = 8
)

// Seed prefixes of the token bridge program derived addresses.
var (
	SeedConfig            = []byte("config")
	SeedWrappedAsset      = []byte("meta")
	SeedTransferAuthority = []byte("authority_signer")
	SeedCustodyAuthority  = []byte("custody_signer")

	// SeedSender is derived under an integrating program to authorize transfers on its behalf.
	SeedSender = []byte("sender")
)

// DefaultProgramID is the token bridge address used when none is configured.
var DefaultProgramID = solana.MustPublicKeyFromBase58("wormDTUJ6AWPNvk59vGQbDvGJmqbDTdgWgAqcLBCgUb")

func ConfigAddress(programID solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(programID, SeedConfig)
}

// WrappedAssetAddress only holds data for mints the bridge created itself.
func WrappedAssetAddress(programID, mint solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(programID, SeedWrappedAsset, mint.Bytes())
}

// CustodyAddress is the token account escrowing native mint.
func CustodyAddress(programID, mint solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(programID, mint.Bytes())
}

func TransferAuthorityAddress(programID solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(programID, SeedTransferAuthority)
}

func CustodyAuthorityAddress(programID solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(programID, SeedCustodyAuthority)
}

// EmitterAddress is the emitter of every token bridge message.
func EmitterAddress(programID solana.PublicKey) solana.PublicKey {
	return corebridgetypes.ProgramEmitterAddress(programID)
}

// SenderAuthorityAddress is the signer an integrating program uses in place of a wallet.
func SenderAuthorityAddress(program solana.PublicKey) solana.PublicKey {
	return svmtypes.MustDerive(program, SeedSender)
}
