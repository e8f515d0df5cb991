package types

import (
	errorsmod "cosmossdk.io/errors"

	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// Error codes for the corebridge module
const (
	BaseErrorCode uint32 = 1
)

var (
	ErrInvalidInstructionArgument = svmtypes.InvalidArgument(errorsmod.Register(ModuleName, BaseErrorCode+1, "invalid instruction argument"))
	ErrEmitterMismatch            = errorsmod.Register(ModuleName, BaseErrorCode+2, "emitter does not match the message account")
	ErrMessageAlreadyPublished    = errorsmod.Register(ModuleName, BaseErrorCode+3, "message already published")
	ErrEmitterAuthorityMismatch   = errorsmod.Register(ModuleName, BaseErrorCode+4, "emitter authority does not match the draft message")
	ErrDataOverflow               = svmtypes.InvalidArgument(errorsmod.Register(ModuleName, BaseErrorCode+5, "write exceeds message capacity"))
	ErrInvalidProgramEmitter      = errorsmod.Register(ModuleName, BaseErrorCode+6, "emitter authority is not the program emitter")
	ErrInvalidMessageStatus       = errorsmod.Register(ModuleName, BaseErrorCode+7, "invalid message status")
	ErrNotInitialized             = errorsmod.Register(ModuleName, BaseErrorCode+8, "core bridge is not initialized")
	ErrPayloadTooLarge            = svmtypes.InvalidArgument(errorsmod.Register(ModuleName, BaseErrorCode+9, "payload too large"))
	ErrInvalidCommitment          = svmtypes.InvalidArgument(errorsmod.Register(ModuleName, BaseErrorCode+10, "invalid commitment"))
)
