package types

import (
	"github.com/gagliardetto/solana-go"

	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// NewSenderAddress is the sender encoded in a transfer with message. A wallet
// sends as itself. A program sends as its own ID by signing with its sender
// PDA, which is how one program authorizes transfers without a private key.
func NewSenderAddress(senderAuthority *solana.AccountMeta, cpiProgramID *solana.PublicKey) ([32]byte, error) {
	if err := svmtypes.RequireSigner("sender authority", senderAuthority).Verify(); err != nil {
		return [32]byte{}, err
	}
	if cpiProgramID == nil {
		return [32]byte(senderAuthority.PublicKey), nil
	}
	expected := SenderAuthorityAddress(*cpiProgramID)
	if !expected.Equals(senderAuthority.PublicKey) {
		return [32]byte{}, ErrInvalidProgramSender.Wrapf("expected %s, got %s", expected, senderAuthority.PublicKey)
	}
	return [32]byte(*cpiProgramID), nil
}
