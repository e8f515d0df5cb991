package testutils

import (
	"time"
)

type TestConfig struct {
	PayerLamports uint64
	FeeLamports   uint64
	BlockTime     time.Time
}

func GetDefaultTestConfig() TestConfig {
	return TestConfig{
		PayerLamports: 100_000_000_000,
		FeeLamports:   100,
		BlockTime:     time.Unix(1_700_000_000, 0),
	}
}
