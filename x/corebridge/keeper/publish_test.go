package keeper_test

import (
	"github.com/gagliardetto/solana-go"

	"github.com/pushchain/svm-bridge/testutils"
	"github.com/pushchain/svm-bridge/x/corebridge/types"
	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

type publishAccounts struct {
	config, emitter, sequence, message, feeCollector, payer *solana.AccountMeta
}

func (a publishAccounts) CoreBridgeConfig() *solana.AccountMeta     { return a.config }
func (a publishAccounts) CoreEmitterAuthority() *solana.AccountMeta { return a.emitter }
func (a publishAccounts) CoreEmitterSequence() *solana.AccountMeta  { return a.sequence }
func (a publishAccounts) CoreMessage() *solana.AccountMeta          { return a.message }
func (a publishAccounts) CoreFeeCollector() *solana.AccountMeta     { return a.feeCollector }
func (a publishAccounts) Payer() *solana.AccountMeta                { return a.payer }

type unknownDirective struct{ types.PreparedDirective }

// programPublish is what an integrating program passes when it publishes as
// its emitter PDA: the emitter is neither a signer nor the program itself.
func (s *KeeperTestSuite) programPublish(program, message solana.PublicKey) (publishAccounts, [][]byte) {
	emitter := types.ProgramEmitterAddress(program)
	seeds, err := svmtypes.SignerSeeds(program, types.SeedProgramEmitter)
	s.Require().NoError(err)
	return publishAccounts{
		config:       s.configMeta(),
		emitter:      testutils.ReadOnly(emitter),
		sequence:     testutils.Writable(types.EmitterSequenceAddress(s.k.ProgramID(), emitter)),
		message:      testutils.Signer(message),
		feeCollector: testutils.Writable(s.feeCollector()),
		payer:        testutils.Signer(s.accts.Payer),
	}, seeds
}

func (s *KeeperTestSuite) TestPublishMessage() {
	program := testutils.NewKeypairAddress()
	emitter := types.ProgramEmitterAddress(program)

	message := testutils.NewKeypairAddress()
	accts, seeds := s.programPublish(program, message)
	seq, err := s.k.PublishMessage(s.ctx, program, accts, []byte("reliable"), seeds, types.MessageDirective{
		Nonce:      5,
		Commitment: types.CommitmentFinalized,
	})
	s.Require().NoError(err)
	s.Require().Zero(seq)

	msg, err := s.k.GetPostedMessage(s.ctx, message)
	s.Require().NoError(err)
	s.Require().False(msg.Unreliable)
	s.Require().Equal(emitter, msg.Emitter)
	s.Require().Equal(seq, msg.Sequence)
	s.Require().Equal(uint32(5), msg.Nonce)
	s.Require().Equal([]byte("reliable"), msg.Payload)

	mailbox := testutils.NewKeypairAddress()
	accts, seeds = s.programPublish(program, mailbox)
	seq, err = s.k.PublishMessage(s.ctx, program, accts, []byte("unreliable"), seeds, types.UnreliableDirective{Nonce: 6})
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), seq)

	msg, err = s.k.GetPostedMessage(s.ctx, mailbox)
	s.Require().NoError(err)
	s.Require().True(msg.Unreliable)
	s.Require().Equal(uint64(1), msg.Sequence)
	s.Require().Equal(uint8(1), msg.ConsistencyLevel)
}

func (s *KeeperTestSuite) TestPublishMessagePrepared() {
	program := testutils.NewKeypairAddress()
	emitter := types.ProgramEmitterAddress(program)
	draft := testutils.NewKeypairAddress()

	// the program signs as its emitter PDA while preparing the draft
	err := s.k.InitMessageV1(s.ctx, s.initAccounts(emitter, draft), types.InitMessageV1Args{
		Nonce:    9,
		Capacity: 3,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.k.WriteMessageV1(s.ctx, types.WriteMessageV1Accounts{
		EmitterAuthority: testutils.Signer(emitter),
		Draft:            testutils.Writable(draft),
	}, types.WriteMessageV1Args{Data: []byte{7, 7, 7}}))

	accts, seeds := s.programPublish(program, draft)
	accts.message = testutils.Writable(draft)

	_, err = s.k.PublishMessage(s.ctx, program, accts, []byte{1}, seeds, types.PreparedDirective{})
	s.Require().ErrorIs(err, types.ErrInvalidInstructionArgument)

	collectorBefore := s.lamports(s.feeCollector())
	seq, err := s.k.PublishMessage(s.ctx, program, accts, nil, seeds, types.PreparedDirective{})
	s.Require().NoError(err)
	s.Require().Zero(seq)
	s.Require().Equal(collectorBefore, s.lamports(s.feeCollector()))

	msg, err := s.k.GetPostedMessage(s.ctx, draft)
	s.Require().NoError(err)
	s.Require().Equal(types.MessageStatusPublished, msg.Status)
	s.Require().Equal(emitter, msg.Emitter)
	s.Require().Equal([]byte{7, 7, 7}, msg.Payload)
}

func (s *KeeperTestSuite) TestPublishMessageRejects() {
	program := testutils.NewKeypairAddress()

	s.Run("emitter not signed without seeds", func() {
		accts, _ := s.programPublish(program, testutils.NewKeypairAddress())
		_, err := s.k.PublishMessage(s.ctx, program, accts, []byte{1}, nil, types.MessageDirective{})
		s.Require().ErrorIs(err, svmtypes.ErrMissingRequiredSignature)
	})

	s.Run("seeds of another program", func() {
		accts, seeds := s.programPublish(program, testutils.NewKeypairAddress())
		_, err := s.k.PublishMessage(s.ctx, testutils.NewKeypairAddress(), accts, []byte{1}, seeds, types.MessageDirective{})
		s.Require().ErrorIs(err, svmtypes.ErrConstraintSeeds)
	})

	s.Run("unknown directive", func() {
		accts, seeds := s.programPublish(program, testutils.NewKeypairAddress())
		_, err := s.k.PublishMessage(s.ctx, program, accts, []byte{1}, seeds, unknownDirective{})
		s.Require().ErrorIs(err, types.ErrInvalidInstructionArgument)
	})

	s.Run("failure after the fee leaves no trace", func() {
		message := testutils.NewKeypairAddress()
		accts, seeds := s.programPublish(program, message)
		_, err := s.k.PublishMessage(s.ctx, program, accts, []byte{1}, seeds, types.MessageDirective{})
		s.Require().NoError(err)

		payerBefore := s.lamports(s.accts.Payer)
		collectorBefore := s.lamports(s.feeCollector())
		before, err := s.k.GetEmitterSequence(s.ctx, types.ProgramEmitterAddress(program))
		s.Require().NoError(err)

		_, err = s.k.PublishMessage(s.ctx, program, accts, []byte{2}, seeds, types.MessageDirective{})
		s.Require().ErrorIs(err, svmtypes.ErrAccountAlreadyInUse)

		s.Require().Equal(payerBefore, s.lamports(s.accts.Payer))
		s.Require().Equal(collectorBefore, s.lamports(s.feeCollector()))
		after, err := s.k.GetEmitterSequence(s.ctx, types.ProgramEmitterAddress(program))
		s.Require().NoError(err)
		s.Require().Equal(before, after)
	})
}
