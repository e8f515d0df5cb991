package types_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
	"github.com/pushchain/svm-bridge/x/tokenbridge/types"
)

func tokenAccount(t *testing.T, data svmtypes.TokenAccountData) svmtypes.Account {
	t.Helper()
	bz, err := data.Bytes()
	require.NoError(t, err)
	return svmtypes.Account{Lamports: 1, Owner: solana.TokenProgramID, Data: bz}
}

func TestLoadTokenAccount(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	delegate := solana.NewWallet().PublicKey()
	reserve := uint64(2_039_280)

	acct := tokenAccount(t, svmtypes.TokenAccountData{
		Mint:            mint,
		Owner:           owner,
		Amount:          1_000,
		Delegate:        &delegate,
		State:           svmtypes.TokenAccountFrozen,
		IsNative:        &reserve,
		DelegatedAmount: 250,
	})

	view, err := types.LoadTokenAccount(acct)
	require.NoError(t, err)
	require.Equal(t, mint, view.Mint())
	require.Equal(t, owner, view.Owner())
	require.Equal(t, uint64(1_000), view.Amount())
	require.Equal(t, &delegate, view.Delegate())
	require.Equal(t, svmtypes.TokenAccountFrozen, view.State())
	require.Equal(t, &reserve, view.IsNative())
	require.Equal(t, uint64(250), view.DelegatedAmount())
	require.Nil(t, view.CloseAuthority())
}

func TestLoadTokenAccountErrors(t *testing.T) {
	valid := tokenAccount(t, svmtypes.TokenAccountData{State: svmtypes.TokenAccountInitialized})

	testCases := []struct {
		name     string
		malleate func(*svmtypes.Account)
		err      error
	}{
		{
			name:     "not owned by the token program",
			malleate: func(a *svmtypes.Account) { a.Owner = solana.SystemProgramID },
			err:      svmtypes.ErrConstraintTokenProgram,
		},
		{
			name:     "wrong length",
			malleate: func(a *svmtypes.Account) { a.Data = a.Data[:svmtypes.MintLen] },
			err:      svmtypes.ErrAccountDidNotDeserialize,
		},
		{
			name:     "uninitialized",
			malleate: func(a *svmtypes.Account) { a.Data[108] = 0 },
			err:      svmtypes.ErrAccountNotInitialized,
		},
		{
			name:     "unknown state",
			malleate: func(a *svmtypes.Account) { a.Data[108] = 3 },
			err:      svmtypes.ErrAccountDidNotDeserialize,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			acct := valid
			acct.Data = append([]byte{}, valid.Data...)
			tc.malleate(&acct)

			_, err := types.LoadTokenAccount(acct)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoadMint(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	bz, err := svmtypes.MintData{
		MintAuthority: &authority,
		Supply:        42,
		Decimals:      9,
		IsInitialized: true,
	}.Bytes()
	require.NoError(t, err)

	mint, err := types.LoadMint(svmtypes.Account{Lamports: 1, Owner: solana.TokenProgramID, Data: bz})
	require.NoError(t, err)
	require.Equal(t, &authority, mint.MintAuthority())
	require.Equal(t, uint64(42), mint.Supply())
	require.Equal(t, uint8(9), mint.Decimals())
	require.True(t, mint.IsInitialized())
	require.Nil(t, mint.FreezeAuthority())

	bz[45] = 0
	_, err = types.LoadMint(svmtypes.Account{Lamports: 1, Owner: solana.TokenProgramID, Data: bz})
	require.ErrorIs(t, err, svmtypes.ErrAccountNotInitialized)

	_, err = types.LoadMint(svmtypes.Account{Lamports: 1, Owner: solana.SystemProgramID, Data: bz})
	require.ErrorIs(t, err, svmtypes.ErrConstraintTokenProgram)

	_, err = types.LoadMint(svmtypes.Account{Lamports: 1, Owner: solana.TokenProgramID, Data: bz[:40]})
	require.ErrorIs(t, err, svmtypes.ErrAccountDidNotDeserialize)
}
