package keeper_test

import (
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/testutils"
	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

func (s *KeeperTestSuite) TestPostMessage() {
	message := testutils.NewKeypairAddress()
	payerBefore := s.lamports(s.accts.Payer)

	seq, err := s.k.PostMessage(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), types.PostMessageArgs{
		Nonce:      11,
		Payload:    []byte("hello wormhole"),
		Commitment: types.CommitmentFinalized,
	})
	s.Require().NoError(err)
	s.Require().Zero(seq)

	msg, err := s.k.GetPostedMessage(s.ctx, message)
	s.Require().NoError(err)
	s.Require().False(msg.Unreliable)
	s.Require().Equal(types.MessageStatusPublished, msg.Status)
	s.Require().Equal(uint8(32), msg.ConsistencyLevel)
	s.Require().Equal(uint32(1_700_000_000), msg.PostedTimestamp)
	s.Require().Equal(uint32(11), msg.Nonce)
	s.Require().Zero(msg.Sequence)
	s.Require().Equal(types.SolanaChainID, msg.SolanaChainID)
	s.Require().Equal(s.accts.EmitterA, msg.Emitter)
	s.Require().True(msg.EmitterAuthority.IsZero())
	s.Require().Equal([]byte("hello wormhole"), msg.Payload)

	acct, err := s.app.SVMKeeper.GetAccount(s.ctx, message)
	s.Require().NoError(err)
	s.Require().Equal(s.k.ProgramID(), acct.Owner)
	s.Require().Len(acct.Data, int(types.ComputeMessageSpace(len("hello wormhole"))))

	// fee, message rent and sequence tracker rent
	spent := 100 +
		svmtypes.MinimumBalance(types.ComputeMessageSpace(len("hello wormhole"))) +
		svmtypes.MinimumBalance(types.EmitterSequenceLen)
	s.Require().Equal(payerBefore-spent, s.lamports(s.accts.Payer))

	next, err := s.k.GetEmitterSequence(s.ctx, s.accts.EmitterA)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), next)
}

func (s *KeeperTestSuite) TestPostMessageRejects() {
	testCases := []struct {
		name     string
		malleate func(*types.PostMessageAccounts, *types.PostMessageArgs)
		err      error
		kind     svmtypes.ErrorKind
	}{
		{
			name: "empty payload",
			malleate: func(_ *types.PostMessageAccounts, args *types.PostMessageArgs) {
				args.Payload = nil
			},
			err:  types.ErrInvalidInstructionArgument,
			kind: svmtypes.KindInvalidArgument,
		},
		{
			name: "payload too large",
			malleate: func(_ *types.PostMessageAccounts, args *types.PostMessageArgs) {
				args.Payload = make([]byte, types.MaxPayloadSize+1)
			},
			err:  types.ErrPayloadTooLarge,
			kind: svmtypes.KindInvalidArgument,
		},
		{
			name: "unknown commitment",
			malleate: func(_ *types.PostMessageAccounts, args *types.PostMessageArgs) {
				args.Commitment = types.Commitment(7)
			},
			err:  types.ErrInvalidCommitment,
			kind: svmtypes.KindInvalidArgument,
		},
		{
			name: "emitter did not sign",
			malleate: func(accts *types.PostMessageAccounts, _ *types.PostMessageArgs) {
				accts.Emitter = testutils.ReadOnly(accts.Emitter.PublicKey)
			},
			err:  svmtypes.ErrMissingRequiredSignature,
			kind: svmtypes.KindConstraintViolation,
		},
		{
			name: "message did not sign",
			malleate: func(accts *types.PostMessageAccounts, _ *types.PostMessageArgs) {
				accts.Message = testutils.Writable(accts.Message.PublicKey)
			},
			err:  svmtypes.ErrMissingRequiredSignature,
			kind: svmtypes.KindConstraintViolation,
		},
		{
			name: "wrong emitter sequence",
			malleate: func(accts *types.PostMessageAccounts, _ *types.PostMessageArgs) {
				accts.EmitterSequence = testutils.Writable(types.EmitterSequenceAddress(accts.Config.PublicKey, accts.Emitter.PublicKey))
			},
			err:  svmtypes.ErrConstraintSeeds,
			kind: svmtypes.KindConstraintViolation,
		},
		{
			name: "missing emitter sequence",
			malleate: func(accts *types.PostMessageAccounts, _ *types.PostMessageArgs) {
				accts.EmitterSequence = nil
			},
			err:  svmtypes.ErrNotEnoughAccountKeys,
			kind: svmtypes.KindConstraintViolation,
		},
		{
			name: "wrong config",
			malleate: func(accts *types.PostMessageAccounts, _ *types.PostMessageArgs) {
				accts.Config = testutils.Writable(testutils.NewKeypairAddress())
			},
			err:  svmtypes.ErrConstraintSeeds,
			kind: svmtypes.KindConstraintViolation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			message := testutils.NewKeypairAddress()
			accts := s.postAccounts(s.accts.EmitterA, message, true)
			args := types.PostMessageArgs{Nonce: 1, Payload: []byte{1}, Commitment: types.CommitmentConfirmed}
			tc.malleate(&accts, &args)

			payerBefore := s.lamports(s.accts.Payer)
			_, err := s.k.PostMessage(s.ctx, accts, args)
			s.Require().ErrorIs(err, tc.err)
			s.Require().Equal(tc.kind, svmtypes.Classify(err))

			acct, err := s.app.SVMKeeper.GetAccount(s.ctx, message)
			s.Require().NoError(err)
			s.Require().False(acct.Exists())
			s.Require().Equal(payerBefore, s.lamports(s.accts.Payer))
		})
	}
}

func (s *KeeperTestSuite) TestPostMessageReusedAccount() {
	message := testutils.NewKeypairAddress()
	args := types.PostMessageArgs{Nonce: 1, Payload: []byte{1, 2}, Commitment: types.CommitmentConfirmed}

	_, err := s.k.PostMessage(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), args)
	s.Require().NoError(err)

	_, err = s.k.PostMessage(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), args)
	s.Require().ErrorIs(err, svmtypes.ErrAccountAlreadyInUse)

	next, err := s.k.GetEmitterSequence(s.ctx, s.accts.EmitterA)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), next)
}

func (s *KeeperTestSuite) TestPostMessageUnreliable() {
	message := testutils.NewKeypairAddress()

	seq, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), types.PostMessageArgs{
		Nonce:      7,
		Payload:    []byte{1, 2, 3},
		Commitment: types.CommitmentConfirmed,
	})
	s.Require().NoError(err)
	s.Require().Equal(uint64(0), seq)

	msg, err := s.k.GetPostedMessage(s.ctx, message)
	s.Require().NoError(err)
	s.Require().True(msg.Unreliable)
	s.Require().Equal(types.MessageStatusPublished, msg.Status)
	s.Require().Equal(uint8(1), msg.ConsistencyLevel)
	s.Require().Equal(uint32(7), msg.Nonce)
	s.Require().Equal(uint64(0), msg.Sequence)
	s.Require().Equal(s.accts.EmitterA, msg.Emitter)
	s.Require().Equal([]byte{1, 2, 3}, msg.Payload)

	// the mailbox is reused by a later block
	s.ctx = s.ctx.WithBlockTime(time.Unix(1_700_000_060, 0))
	seq, err = s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), types.PostMessageArgs{
		Nonce:      8,
		Payload:    []byte{4, 5, 6},
		Commitment: types.CommitmentConfirmed,
	})
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), seq)

	msg, err = s.k.GetPostedMessage(s.ctx, message)
	s.Require().NoError(err)
	s.Require().Equal(uint32(8), msg.Nonce)
	s.Require().Equal(uint64(1), msg.Sequence)
	s.Require().Equal(uint32(1_700_000_060), msg.PostedTimestamp)
	s.Require().Equal([]byte{4, 5, 6}, msg.Payload)
}

func (s *KeeperTestSuite) TestPostMessageUnreliableEmitterMismatch() {
	message := testutils.NewKeypairAddress()
	_, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), types.PostMessageArgs{
		Nonce:      7,
		Payload:    []byte{1, 2, 3},
		Commitment: types.CommitmentConfirmed,
	})
	s.Require().NoError(err)

	before, err := s.app.SVMKeeper.GetAccount(s.ctx, message)
	s.Require().NoError(err)
	payerBefore := s.lamports(s.accts.Payer)
	collectorBefore := s.lamports(s.feeCollector())

	_, err = s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterB, message, true), types.PostMessageArgs{
		Nonce:      9,
		Payload:    []byte{7, 8, 9},
		Commitment: types.CommitmentConfirmed,
	})
	s.Require().ErrorIs(err, types.ErrEmitterMismatch)
	s.Require().Equal(svmtypes.KindConstraintViolation, svmtypes.Classify(err))

	after, err := s.app.SVMKeeper.GetAccount(s.ctx, message)
	s.Require().NoError(err)
	s.Require().Equal(before, after)
	s.Require().Equal(payerBefore, s.lamports(s.accts.Payer))
	s.Require().Equal(collectorBefore, s.lamports(s.feeCollector()))

	nextA, err := s.k.GetEmitterSequence(s.ctx, s.accts.EmitterA)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), nextA)
	nextB, err := s.k.GetEmitterSequence(s.ctx, s.accts.EmitterB)
	s.Require().NoError(err)
	s.Require().Zero(nextB)

	trackerB, err := s.app.SVMKeeper.GetAccount(s.ctx, types.EmitterSequenceAddress(s.k.ProgramID(), s.accts.EmitterB))
	s.Require().NoError(err)
	s.Require().False(trackerB.Exists())
}

func (s *KeeperTestSuite) TestPostMessageUnreliableCapacity() {
	message := testutils.NewKeypairAddress()
	accts := s.postAccounts(s.accts.EmitterA, message, true)
	_, err := s.k.PostMessageUnreliable(s.ctx, accts, types.PostMessageArgs{Nonce: 1, Payload: []byte{1, 2, 3}})
	s.Require().NoError(err)

	for _, payload := range [][]byte{{1, 2, 3, 4}, {1, 2}} {
		_, err := s.k.PostMessageUnreliable(s.ctx, accts, types.PostMessageArgs{Nonce: 2, Payload: payload})
		s.Require().ErrorIs(err, svmtypes.ErrConstraintSpace)
	}

	msg, err := s.k.GetPostedMessage(s.ctx, message)
	s.Require().NoError(err)
	s.Require().Equal([]byte{1, 2, 3}, msg.Payload)
	next, err := s.k.GetEmitterSequence(s.ctx, s.accts.EmitterA)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), next)
}

func (s *KeeperTestSuite) TestPostMessageUnreliableRejects() {
	s.Run("empty payload on a fresh account", func() {
		message := testutils.NewKeypairAddress()
		_, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), types.PostMessageArgs{})
		s.Require().ErrorIs(err, types.ErrInvalidInstructionArgument)
		s.Require().Equal(svmtypes.KindInvalidArgument, svmtypes.Classify(err))

		acct, err := s.app.SVMKeeper.GetAccount(s.ctx, message)
		s.Require().NoError(err)
		s.Require().False(acct.Exists())
	})

	s.Run("reliable message account", func() {
		message := testutils.NewKeypairAddress()
		args := types.PostMessageArgs{Nonce: 1, Payload: []byte{1}}
		_, err := s.k.PostMessage(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), args)
		s.Require().NoError(err)

		_, err = s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), args)
		s.Require().ErrorIs(err, svmtypes.ErrAccountDiscriminatorMismatch)
	})

	s.Run("account owned by another program", func() {
		message := testutils.NewKeypairAddress()
		s.Require().NoError(s.app.SVMKeeper.CreateAccount(s.ctx, testutils.Signer(s.accts.Payer), testutils.Signer(message), types.ComputeMessageSpace(1), solana.TokenProgramID))

		_, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), types.PostMessageArgs{Payload: []byte{1}})
		s.Require().ErrorIs(err, svmtypes.ErrConstraintOwner)
	})

	s.Run("payer cannot cover the account", func() {
		poor := testutils.NewKeypairAddress()
		s.Require().NoError(s.app.SVMKeeper.Airdrop(s.ctx, poor, 1))

		accts := s.postAccounts(s.accts.EmitterA, testutils.NewKeypairAddress(), true)
		accts.Payer = testutils.Signer(poor)
		_, err := s.k.PostMessageUnreliable(s.ctx, accts, types.PostMessageArgs{Payload: []byte{1}})
		s.Require().ErrorIs(err, svmtypes.ErrInsufficientFunds)
		s.Require().Equal(svmtypes.KindInsufficientFunds, svmtypes.Classify(err))
		s.Require().Equal(uint64(1), s.lamports(poor))
	})
}

func (s *KeeperTestSuite) TestPostMessageFees() {
	message := testutils.NewKeypairAddress()
	args := types.PostMessageArgs{Nonce: 1, Payload: []byte{1, 2, 3}}

	// first publish pays for both accounts; later ones only for the fee
	_, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), args)
	s.Require().NoError(err)

	s.Run("fee collector passed", func() {
		payerBefore := s.lamports(s.accts.Payer)
		collectorBefore := s.lamports(s.feeCollector())

		_, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), args)
		s.Require().NoError(err)
		s.Require().Equal(payerBefore-100, s.lamports(s.accts.Payer))
		s.Require().Equal(collectorBefore+100, s.lamports(s.feeCollector()))

		cfg, err := s.k.GetConfig(s.ctx)
		s.Require().NoError(err)
		s.Require().Equal(collectorBefore+100, cfg.LastLamports)
	})

	s.Run("no fee collector", func() {
		payerBefore := s.lamports(s.accts.Payer)
		collectorBefore := s.lamports(s.feeCollector())

		_, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, message, false), args)
		s.Require().NoError(err)
		s.Require().Equal(payerBefore, s.lamports(s.accts.Payer))
		s.Require().Equal(collectorBefore, s.lamports(s.feeCollector()))
	})
}

func (s *KeeperTestSuite) TestSequencesAcrossVariants() {
	emitterA, emitterB := s.accts.EmitterA, s.accts.EmitterB
	mailboxA, mailboxB := testutils.NewKeypairAddress(), testutils.NewKeypairAddress()
	args := types.PostMessageArgs{Payload: []byte{0xaa}}

	post := func(emitter solana.PublicKey) uint64 {
		seq, err := s.k.PostMessage(s.ctx, s.postAccounts(emitter, testutils.NewKeypairAddress(), true), args)
		s.Require().NoError(err)
		return seq
	}
	postUnreliable := func(emitter, mailbox solana.PublicKey) uint64 {
		seq, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(emitter, mailbox, true), args)
		s.Require().NoError(err)
		return seq
	}

	s.Require().Equal(uint64(0), post(emitterA))
	s.Require().Equal(uint64(0), post(emitterB))
	s.Require().Equal(uint64(1), postUnreliable(emitterA, mailboxA))
	s.Require().Equal(uint64(2), s.finalizeDraft(emitterA, []byte{1, 2}))
	s.Require().Equal(uint64(1), postUnreliable(emitterB, mailboxB))
	s.Require().Equal(uint64(3), postUnreliable(emitterA, mailboxA))
	s.Require().Equal(uint64(4), post(emitterA))

	nextA, err := s.k.GetEmitterSequence(s.ctx, emitterA)
	s.Require().NoError(err)
	s.Require().Equal(uint64(5), nextA)
	nextB, err := s.k.GetEmitterSequence(s.ctx, emitterB)
	s.Require().NoError(err)
	s.Require().Equal(uint64(2), nextB)
}

func (s *KeeperTestSuite) TestMessagePublishedEvent() {
	message := testutils.NewKeypairAddress()
	_, err := s.k.PostMessage(s.ctx, s.postAccounts(s.accts.EmitterA, message, true), types.PostMessageArgs{
		Nonce:      3,
		Payload:    []byte{9, 9},
		Commitment: types.CommitmentFinalized,
	})
	s.Require().NoError(err)

	var found []types.MessagePublishedEvent
	for _, event := range s.ctx.EventManager().Events() {
		if event.Type != types.EventTypeMessagePublished {
			continue
		}
		parsed, err := types.ParseMessagePublishedEvent(event)
		s.Require().NoError(err)
		found = append(found, parsed)
	}
	s.Require().Len(found, 1)
	s.Require().Equal(types.MessagePublishedEvent{
		Message:          message.String(),
		Emitter:          s.accts.EmitterA.String(),
		Sequence:         0,
		Nonce:            3,
		ConsistencyLevel: 32,
		PostedTimestamp:  1_700_000_000,
		Payload:          []byte{9, 9},
	}, found[0])
}

func (s *KeeperTestSuite) TestPostMessageNotInitialized() {
	bridgeApp := testutils.SetupApp(s.T())
	ctx := bridgeApp.NewContext(time.Unix(1_700_000_000, 0))
	s.Require().NoError(bridgeApp.Deploy(ctx))
	payer := testutils.NewKeypairAddress()
	s.Require().NoError(bridgeApp.SVMKeeper.Airdrop(ctx, payer, 1_000_000_000))

	k := bridgeApp.CoreBridgeKeeper
	emitter := testutils.NewKeypairAddress()
	_, err := k.PostMessage(ctx, types.PostMessageAccounts{
		Config:          testutils.Writable(types.ConfigAddress(k.ProgramID())),
		Message:         testutils.Signer(testutils.NewKeypairAddress()),
		Emitter:         testutils.Signer(emitter),
		EmitterSequence: testutils.Writable(types.EmitterSequenceAddress(k.ProgramID(), emitter)),
		Payer:           testutils.Signer(payer),
		FeeCollector:    testutils.Writable(types.FeeCollectorAddress(k.ProgramID())),
	}, types.PostMessageArgs{Payload: []byte{1}})
	s.Require().ErrorIs(err, types.ErrNotInitialized)
}
