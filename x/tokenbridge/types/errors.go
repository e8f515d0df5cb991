package types

import (
	errorsmod "cosmossdk.io/errors"

	svmtypes "github.com/pushchain/svm-bridge/x/svm/types"
)

// Error codes for the tokenbridge module
const (
	BaseErrorCode uint32 = 1
)

var (
	ErrWrappedAsset         = errorsmod.Register(ModuleName, BaseErrorCode+1, "mint is a wrapped asset")
	ErrInvalidProgramSender = errorsmod.Register(ModuleName, BaseErrorCode+2, "sender authority is not the program sender")
	ErrZeroBridgeAmount     = svmtypes.InvalidArgument(errorsmod.Register(ModuleName, BaseErrorCode+3, "bridged amount is zero after normalization"))
	ErrInvalidRelayerFee    = svmtypes.InvalidArgument(errorsmod.Register(ModuleName, BaseErrorCode+4, "relayer fee exceeds amount"))
	ErrInvalidMint          = errorsmod.Register(ModuleName, BaseErrorCode+5, "invalid mint")
	ErrInvalidCustodyToken  = errorsmod.Register(ModuleName, BaseErrorCode+6, "invalid custody token account")
	ErrInvalidPayload       = svmtypes.InvalidArgument(errorsmod.Register(ModuleName, BaseErrorCode+7, "invalid transfer payload"))
	ErrNotInitialized       = errorsmod.Register(ModuleName, BaseErrorCode+8, "token bridge is not initialized")
)
