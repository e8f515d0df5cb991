package keeper_test

import (
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/testutils"
	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

func (s *KeeperTestSuite) initAccounts(authority, draft solana.PublicKey) types.InitMessageV1Accounts {
	return types.InitMessageV1Accounts{
		EmitterAuthority: testutils.Signer(authority),
		Draft:            testutils.Signer(draft),
		Payer:            testutils.Signer(s.accts.Payer),
		Config:           s.configMeta(),
		FeeCollector:     testutils.Writable(s.feeCollector()),
	}
}

func (s *KeeperTestSuite) finalizeAccounts(authority, draft, emitter solana.PublicKey) types.FinalizeMessageV1Accounts {
	return types.FinalizeMessageV1Accounts{
		EmitterAuthority: testutils.Signer(authority),
		Draft:            testutils.Writable(draft),
		EmitterSequence:  testutils.Writable(types.EmitterSequenceAddress(s.k.ProgramID(), emitter)),
		Payer:            testutils.Signer(s.accts.Payer),
	}
}

// finalizeDraft publishes payload through a draft written in one chunk.
func (s *KeeperTestSuite) finalizeDraft(emitter solana.PublicKey, payload []byte) uint64 {
	draft := testutils.NewKeypairAddress()
	s.Require().NoError(s.k.InitMessageV1(s.ctx, s.initAccounts(emitter, draft), types.InitMessageV1Args{
		Capacity: uint32(len(payload)),
	}))
	s.Require().NoError(s.k.WriteMessageV1(s.ctx, types.WriteMessageV1Accounts{
		EmitterAuthority: testutils.Signer(emitter),
		Draft:            testutils.Writable(draft),
	}, types.WriteMessageV1Args{Data: payload}))

	seq, err := s.k.FinalizeMessageV1(s.ctx, s.finalizeAccounts(emitter, draft, emitter))
	s.Require().NoError(err)
	return seq
}

func (s *KeeperTestSuite) TestDraftLifecycle() {
	emitter := s.accts.EmitterA
	draft := testutils.NewKeypairAddress()
	writeAccts := types.WriteMessageV1Accounts{
		EmitterAuthority: testutils.Signer(emitter),
		Draft:            testutils.Writable(draft),
	}

	payerBefore := s.lamports(s.accts.Payer)
	collectorBefore := s.lamports(s.feeCollector())
	err := s.k.InitMessageV1(s.ctx, s.initAccounts(emitter, draft), types.InitMessageV1Args{
		Nonce:      42,
		Commitment: types.CommitmentFinalized,
		Capacity:   6,
	})
	s.Require().NoError(err)
	s.Require().Equal(payerBefore-100-svmtypes.MinimumBalance(types.ComputeMessageSpace(6)), s.lamports(s.accts.Payer))
	s.Require().Equal(collectorBefore+100, s.lamports(s.feeCollector()))

	msg, err := s.k.GetPostedMessage(s.ctx, draft)
	s.Require().NoError(err)
	s.Require().Equal(types.MessageStatusWriting, msg.Status)
	s.Require().Equal(emitter, msg.EmitterAuthority)
	s.Require().Equal(emitter, msg.Emitter)
	s.Require().Equal(make([]byte, 6), msg.Payload)

	s.Require().NoError(s.k.WriteMessageV1(s.ctx, writeAccts, types.WriteMessageV1Args{Index: 0, Data: []byte{1, 2, 3}}))
	s.Require().NoError(s.k.WriteMessageV1(s.ctx, writeAccts, types.WriteMessageV1Args{Index: 3, Data: []byte{4, 5, 6}}))

	err = s.k.WriteMessageV1(s.ctx, writeAccts, types.WriteMessageV1Args{Index: 4, Data: []byte{7, 8, 9}})
	s.Require().ErrorIs(err, types.ErrDataOverflow)
	s.Require().Equal(svmtypes.KindInvalidArgument, svmtypes.Classify(err))

	err = s.k.WriteMessageV1(s.ctx, writeAccts, types.WriteMessageV1Args{Index: 0})
	s.Require().ErrorIs(err, types.ErrInvalidInstructionArgument)

	err = s.k.WriteMessageV1(s.ctx, types.WriteMessageV1Accounts{
		EmitterAuthority: testutils.Signer(s.accts.EmitterB),
		Draft:            testutils.Writable(draft),
	}, types.WriteMessageV1Args{Data: []byte{0xff}})
	s.Require().ErrorIs(err, types.ErrEmitterAuthorityMismatch)

	_, err = s.k.FinalizeMessageV1(s.ctx, s.finalizeAccounts(s.accts.EmitterB, draft, emitter))
	s.Require().ErrorIs(err, types.ErrEmitterAuthorityMismatch)

	// finalizing only pays for the new sequence tracker
	payerBefore = s.lamports(s.accts.Payer)
	seq, err := s.k.FinalizeMessageV1(s.ctx, s.finalizeAccounts(emitter, draft, emitter))
	s.Require().NoError(err)
	s.Require().Zero(seq)
	s.Require().Equal(payerBefore-svmtypes.MinimumBalance(types.EmitterSequenceLen), s.lamports(s.accts.Payer))

	msg, err = s.k.GetPostedMessage(s.ctx, draft)
	s.Require().NoError(err)
	s.Require().Equal(types.MessageStatusPublished, msg.Status)
	s.Require().True(msg.EmitterAuthority.IsZero())
	s.Require().Equal([]byte{1, 2, 3, 4, 5, 6}, msg.Payload)
	s.Require().Equal(uint8(32), msg.ConsistencyLevel)
	s.Require().Equal(uint32(42), msg.Nonce)
	s.Require().Equal(uint32(1_700_000_000), msg.PostedTimestamp)

	err = s.k.WriteMessageV1(s.ctx, writeAccts, types.WriteMessageV1Args{Data: []byte{0}})
	s.Require().ErrorIs(err, types.ErrMessageAlreadyPublished)
	_, err = s.k.FinalizeMessageV1(s.ctx, s.finalizeAccounts(emitter, draft, emitter))
	s.Require().ErrorIs(err, types.ErrMessageAlreadyPublished)

	next, err := s.k.GetEmitterSequence(s.ctx, emitter)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), next)
}

func (s *KeeperTestSuite) TestInitMessageV1Rejects() {
	testCases := []struct {
		name string
		args types.InitMessageV1Args
		err  error
	}{
		{"zero capacity", types.InitMessageV1Args{}, types.ErrInvalidInstructionArgument},
		{"capacity too large", types.InitMessageV1Args{Capacity: types.MaxPayloadSize + 1}, types.ErrPayloadTooLarge},
		{"unknown commitment", types.InitMessageV1Args{Capacity: 1, Commitment: types.Commitment(2)}, types.ErrInvalidCommitment},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			draft := testutils.NewKeypairAddress()
			err := s.k.InitMessageV1(s.ctx, s.initAccounts(s.accts.EmitterA, draft), tc.args)
			s.Require().ErrorIs(err, tc.err)
			s.Require().Equal(svmtypes.KindInvalidArgument, svmtypes.Classify(err))

			acct, err := s.app.SVMKeeper.GetAccount(s.ctx, draft)
			s.Require().NoError(err)
			s.Require().False(acct.Exists())
		})
	}
}

func (s *KeeperTestSuite) TestInitMessageV1ProgramEmitter() {
	program := testutils.NewKeypairAddress()
	authority := types.ProgramEmitterAddress(program)

	s.Run("authority is the program emitter", func() {
		draft := testutils.NewKeypairAddress()
		err := s.k.InitMessageV1(s.ctx, s.initAccounts(authority, draft), types.InitMessageV1Args{
			Capacity:     4,
			CpiProgramID: &program,
		})
		s.Require().NoError(err)

		msg, err := s.k.GetPostedMessage(s.ctx, draft)
		s.Require().NoError(err)
		s.Require().Equal(program, msg.Emitter)
		s.Require().Equal(authority, msg.EmitterAuthority)
	})

	s.Run("authority is not the program emitter", func() {
		err := s.k.InitMessageV1(s.ctx, s.initAccounts(s.accts.EmitterA, testutils.NewKeypairAddress()), types.InitMessageV1Args{
			Capacity:     4,
			CpiProgramID: &program,
		})
		s.Require().ErrorIs(err, types.ErrInvalidProgramEmitter)
	})
}

func (s *KeeperTestSuite) TestWriteMessageV1RejectsUnreliable() {
	mailbox := testutils.NewKeypairAddress()
	_, err := s.k.PostMessageUnreliable(s.ctx, s.postAccounts(s.accts.EmitterA, mailbox, true), types.PostMessageArgs{Payload: []byte{1}})
	s.Require().NoError(err)

	err = s.k.WriteMessageV1(s.ctx, types.WriteMessageV1Accounts{
		EmitterAuthority: testutils.Signer(s.accts.EmitterA),
		Draft:            testutils.Writable(mailbox),
	}, types.WriteMessageV1Args{Data: []byte{2}})
	s.Require().ErrorIs(err, svmtypes.ErrAccountDiscriminatorMismatch)
}
