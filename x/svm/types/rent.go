package types

const (
	// AccountStorageOverhead is charged on top of the data length of every account.
	AccountStorageOverhead = 128

	LamportsPerByteYear = 3480

	ExemptionThresholdYears = 2
)

// MinimumBalance returns the lamports an account of the given size must hold to be rent exempt.
func MinimumBalance(space uint64) uint64 {
	return (AccountStorageOverhead + space) * LamportsPerByteYear * ExemptionThresholdYears
}
