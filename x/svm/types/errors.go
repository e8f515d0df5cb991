package types

import (
	"errors"
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// Error codes for the svm module
const (
	BaseErrorCode uint32 = 1
)

var (
	ErrMissingRequiredSignature     = errorsmod.Register(ModuleName, BaseErrorCode+1, "missing required signature")
	ErrAccountNotWritable           = errorsmod.Register(ModuleName, BaseErrorCode+2, "account not writable")
	ErrConstraintSeeds              = errorsmod.Register(ModuleName, BaseErrorCode+3, "a seeds constraint was violated")
	ErrConstraintOwner              = errorsmod.Register(ModuleName, BaseErrorCode+4, "an owner constraint was violated")
	ErrConstraintSpace              = errorsmod.Register(ModuleName, BaseErrorCode+5, "a space constraint was violated")
	ErrAccountDidNotDeserialize     = errorsmod.Register(ModuleName, BaseErrorCode+6, "failed to deserialize the account")
	ErrAccountNotInitialized        = errorsmod.Register(ModuleName, BaseErrorCode+7, "the program expected this account to be already initialized")
	ErrAccountAlreadyInUse          = errorsmod.Register(ModuleName, BaseErrorCode+8, "account already in use")
	ErrInsufficientFunds            = errorsmod.Register(ModuleName, BaseErrorCode+9, "insufficient funds")
	ErrAccountDataSizeChanged       = errorsmod.Register(ModuleName, BaseErrorCode+10, "account data size changed")
	ErrExternalAccountDataModified  = errorsmod.Register(ModuleName, BaseErrorCode+11, "instruction modified data of an account it does not own")
	ErrConstraintTokenProgram       = errorsmod.Register(ModuleName, BaseErrorCode+12, "a token program constraint was violated")
	ErrConstraintTokenMint          = errorsmod.Register(ModuleName, BaseErrorCode+13, "a token mint constraint was violated")
	ErrConstraintTokenOwner         = errorsmod.Register(ModuleName, BaseErrorCode+14, "a token owner constraint was violated")
	ErrAccountFrozen                = errorsmod.Register(ModuleName, BaseErrorCode+15, "account is frozen")
	ErrAccountDiscriminatorMismatch = errorsmod.Register(ModuleName, BaseErrorCode+16, "account discriminator did not match")
	ErrNotEnoughAccountKeys         = errorsmod.Register(ModuleName, BaseErrorCode+17, "not enough account keys given to the instruction")
	ErrArithmeticOverflow           = errorsmod.Register(ModuleName, BaseErrorCode+18, "arithmetic overflow")
	ErrInvalidAccountData           = errorsmod.Register(ModuleName, BaseErrorCode+19, "invalid account data for instruction")
)

// ErrorKind is the coarse failure category a client can react to.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInternal
	KindConstraintViolation
	KindInvalidArgument
	KindInsufficientFunds
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInternal:
		return "internal"
	case KindConstraintViolation:
		return "constraint_violation"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindInsufficientFunds:
		return "insufficient_funds"
	default:
		return "unknown"
	}
}

// invalidArguments holds the registered errors classified as KindInvalidArgument.
// Populated only from package-level var initialization.
var invalidArguments = map[string]struct{}{}

func errorKey(codespace string, code uint32) string {
	return fmt.Sprintf("%s/%d", codespace, code)
}

// InvalidArgument marks a registered error as an invalid-argument failure and returns it.
func InvalidArgument(err *errorsmod.Error) *errorsmod.Error {
	invalidArguments[errorKey(err.Codespace(), err.ABCICode())] = struct{}{}
	return err
}

// Classify maps an instruction error onto its ErrorKind. Registered errors are
// constraint violations unless marked otherwise; anything unregistered is internal.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrInsufficientFunds) {
		return KindInsufficientFunds
	}

	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	if codespace == errorsmod.UndefinedCodespace {
		return KindInternal
	}
	if _, ok := invalidArguments[errorKey(codespace, code)]; ok {
		return KindInvalidArgument
	}
	return KindConstraintViolation
}
