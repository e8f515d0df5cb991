package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ConfigLen is the size of the token bridge Config account.
const ConfigLen = 32

// Config records the core bridge the token bridge publishes through.
type Config struct {
	CoreBridgeProgram solana.PublicKey
}

func (c Config) Bytes() ([]byte, error) {
	return c.CoreBridgeProgram.Bytes(), nil
}

func ParseConfig(data []byte) (Config, error) {
	if len(data) != ConfigLen {
		return Config{}, fmt.Errorf("token bridge config must be %d bytes, got %d", ConfigLen, len(data))
	}
	return Config{CoreBridgeProgram: solana.PublicKeyFromBytes(data)}, nil
}
