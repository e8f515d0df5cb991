package keeper_test

import (
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pushchain/svm-bridge/app"
	"github.com/pushchain/svm-bridge/testutils"
	"github.com/pushchain/svm-bridge/x/corebridge/keeper"
	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

type KeeperTestSuite struct {
	suite.Suite

	app   *app.BridgeApp
	ctx   sdk.Context
	k     keeper.Keeper
	accts testutils.TestAccounts
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (s *KeeperTestSuite) SetupTest() {
	s.app, s.ctx, s.accts = testutils.SetupLedger(s.T())
	s.k = s.app.CoreBridgeKeeper
}

func (s *KeeperTestSuite) lamports(key solana.PublicKey) uint64 {
	acct, err := s.app.SVMKeeper.GetAccount(s.ctx, key)
	s.Require().NoError(err)
	return acct.Lamports
}

func (s *KeeperTestSuite) configMeta() *solana.AccountMeta {
	return testutils.Writable(types.ConfigAddress(s.k.ProgramID()))
}

func (s *KeeperTestSuite) feeCollector() solana.PublicKey {
	return types.FeeCollectorAddress(s.k.ProgramID())
}

// postAccounts builds the accounts of a post instruction; the fee collector is
// left out when withFee is false.
func (s *KeeperTestSuite) postAccounts(emitter, message solana.PublicKey, withFee bool) types.PostMessageAccounts {
	accts := types.PostMessageAccounts{
		Config:          s.configMeta(),
		Message:         testutils.Signer(message),
		Emitter:         testutils.Signer(emitter),
		EmitterSequence: testutils.Writable(types.EmitterSequenceAddress(s.k.ProgramID(), emitter)),
		Payer:           testutils.Signer(s.accts.Payer),
	}
	if withFee {
		accts.FeeCollector = testutils.Writable(s.feeCollector())
	}
	return accts
}

func (s *KeeperTestSuite) TestInitialize() {
	cfg, err := s.k.GetConfig(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(100), cfg.FeeLamports)
	s.Require().Equal(uint32(app.DefaultGuardianSetTTL), cfg.GuardianSetTTL)
	s.Require().Equal(svmtypes.MinimumBalance(0), cfg.LastLamports)
	s.Require().Equal(svmtypes.MinimumBalance(0), s.lamports(s.feeCollector()))

	err = s.k.Initialize(s.ctx, types.InitializeAccounts{
		Payer:        testutils.Signer(s.accts.Payer),
		Config:       s.configMeta(),
		FeeCollector: testutils.Writable(s.feeCollector()),
	}, types.InitializeArgs{FeeLamports: 1})
	s.Require().ErrorIs(err, svmtypes.ErrAccountAlreadyInUse)

	cfg, err = s.k.GetConfig(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(100), cfg.FeeLamports)
}

func (s *KeeperTestSuite) TestInitializeRejectsWrongConfigAddress() {
	bridgeApp := testutils.SetupApp(s.T())
	ctx := bridgeApp.NewContext(time.Unix(1_700_000_000, 0))
	payer := testutils.NewKeypairAddress()
	s.Require().NoError(bridgeApp.SVMKeeper.Airdrop(ctx, payer, 1_000_000_000))

	programID := bridgeApp.CoreBridgeKeeper.ProgramID()
	err := bridgeApp.CoreBridgeKeeper.Initialize(ctx, types.InitializeAccounts{
		Payer:        testutils.Signer(payer),
		Config:       testutils.Signer(testutils.NewKeypairAddress()),
		FeeCollector: testutils.Writable(types.FeeCollectorAddress(programID)),
	}, types.InitializeArgs{})
	s.Require().ErrorIs(err, svmtypes.ErrConstraintSeeds)

	_, err = bridgeApp.CoreBridgeKeeper.GetConfig(ctx)
	s.Require().ErrorIs(err, types.ErrNotInitialized)
}

func (s *KeeperTestSuite) TestCollectFee() {
	payerBefore := s.lamports(s.accts.Payer)
	collectorBefore := s.lamports(s.feeCollector())

	s.Run("charges the configured fee", func() {
		err := s.k.CollectFee(s.ctx, s.configMeta(), testutils.Signer(s.accts.Payer), testutils.Writable(s.feeCollector()))
		s.Require().NoError(err)
		s.Require().Equal(payerBefore-100, s.lamports(s.accts.Payer))
		s.Require().Equal(collectorBefore+100, s.lamports(s.feeCollector()))

		cfg, err := s.k.GetConfig(s.ctx)
		s.Require().NoError(err)
		s.Require().Equal(collectorBefore+100, cfg.LastLamports)
	})

	s.Run("no fee collector is a no-op", func() {
		before := s.lamports(s.accts.Payer)
		s.Require().NoError(s.k.CollectFee(s.ctx, s.configMeta(), testutils.Signer(s.accts.Payer), nil))
		s.Require().Equal(before, s.lamports(s.accts.Payer))
	})

	s.Run("impostor fee collector", func() {
		err := s.k.CollectFee(s.ctx, s.configMeta(), testutils.Signer(s.accts.Payer), testutils.Writable(testutils.NewKeypairAddress()))
		s.Require().ErrorIs(err, svmtypes.ErrConstraintSeeds)
	})
}

func TestCollectFeeZeroFee(t *testing.T) {
	cfg := testutils.GetDefaultTestConfig()
	cfg.FeeLamports = 0
	bridgeApp, ctx, accts := testutils.SetupLedgerWithConfig(t, cfg)
	k := bridgeApp.CoreBridgeKeeper

	payer, err := bridgeApp.SVMKeeper.GetAccount(ctx, accts.Payer)
	require.NoError(t, err)

	feeCollector := testutils.Writable(types.FeeCollectorAddress(k.ProgramID()))
	require.NoError(t, k.CollectFee(ctx, testutils.Writable(types.ConfigAddress(k.ProgramID())), testutils.Signer(accts.Payer), feeCollector))

	after, err := bridgeApp.SVMKeeper.GetAccount(ctx, accts.Payer)
	require.NoError(t, err)
	require.Equal(t, payer.Lamports, after.Lamports)
}
