package types

import (
	"cosmossdk.io/collections"
	"github.com/gagliardetto/solana-go"
)

var (
	// AccountsKey saves every SVM account keyed by its 32 byte address.
	AccountsKey = collections.NewPrefix(0)

	// AccountsName is the name of the Accounts collection.
	AccountsName = "accounts"
)

const (
	ModuleName = "svm"

	StoreKey = ModuleName
)

// LoaderProgramID owns every deployed program account.
var LoaderProgramID = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
