package types

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// ConfigLen is the size of the Config account.
const ConfigLen = 24

// Config is the core bridge singleton.
type Config struct {
	GuardianSetIndex uint32
	// LastLamports is the fee collector balance observed at the last fee collection.
	LastLamports   uint64
	GuardianSetTTL uint32
	FeeLamports    uint64
}

func (c Config) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint32(c.GuardianSetIndex, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint64(c.LastLamports, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint32(c.GuardianSetTTL, bin.LE); err != nil {
		return err
	}
	return enc.WriteUint64(c.FeeLamports, bin.LE)
}

func (c *Config) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if c.GuardianSetIndex, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	if c.LastLamports, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if c.GuardianSetTTL, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	c.FeeLamports, err = dec.ReadUint64(bin.LE)
	return err
}

func (c Config) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := c.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseConfig(data []byte) (Config, error) {
	if len(data) != ConfigLen {
		return Config{}, fmt.Errorf("config must be %d bytes, got %d", ConfigLen, len(data))
	}
	var c Config
	if err := c.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return Config{}, err
	}
	return c, nil
}

// EmitterSequenceLen is the size of an EmitterSequence account.
const EmitterSequenceLen = 8

// EmitterSequence is the next sequence an emitter will be assigned.
type EmitterSequence struct {
	Value uint64
}

func (s EmitterSequence) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).WriteUint64(s.Value, bin.LE); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseEmitterSequence(data []byte) (EmitterSequence, error) {
	if len(data) != EmitterSequenceLen {
		return EmitterSequence{}, fmt.Errorf("emitter sequence must be %d bytes, got %d", EmitterSequenceLen, len(data))
	}
	value, err := bin.NewBorshDecoder(data).ReadUint64(bin.LE)
	if err != nil {
		return EmitterSequence{}, err
	}
	return EmitterSequence{Value: value}, nil
}
