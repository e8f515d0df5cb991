package types

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// SPL token layout sizes.
const (
	TokenAccountLen = 165
	MintLen         = 82
)

// TokenAccountState mirrors the SPL token account state byte.
type TokenAccountState uint8

const (
	TokenAccountUninitialized TokenAccountState = iota
	TokenAccountInitialized
	TokenAccountFrozen
)

func (s TokenAccountState) String() string {
	switch s {
	case TokenAccountUninitialized:
		return "uninitialized"
	case TokenAccountInitialized:
		return "initialized"
	case TokenAccountFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// TokenAccountData is the token program's own decoding of a token account.
type TokenAccountData struct {
	Mint            solana.PublicKey
	Owner           solana.PublicKey
	Amount          uint64
	Delegate        *solana.PublicKey
	State           TokenAccountState
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  *solana.PublicKey
}

// MintData is the token program's own decoding of a mint.
type MintData struct {
	MintAuthority   *solana.PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *solana.PublicKey
}

func writeOptionKey(enc *bin.Encoder, key *solana.PublicKey) error {
	var tag uint32
	var value solana.PublicKey
	if key != nil {
		tag, value = 1, *key
	}
	if err := enc.WriteUint32(tag, bin.LE); err != nil {
		return err
	}
	return enc.WriteBytes(value[:], false)
}

func readOptionKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	tag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	raw, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil
	}
	key := solana.PublicKeyFromBytes(raw)
	return &key, nil
}

func (t TokenAccountData) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(t.Mint[:], false); err != nil {
		return err
	}
	if err := enc.WriteBytes(t.Owner[:], false); err != nil {
		return err
	}
	if err := enc.WriteUint64(t.Amount, bin.LE); err != nil {
		return err
	}
	if err := writeOptionKey(enc, t.Delegate); err != nil {
		return err
	}
	if err := enc.WriteUint8(uint8(t.State)); err != nil {
		return err
	}
	var nativeTag uint32
	var native uint64
	if t.IsNative != nil {
		nativeTag, native = 1, *t.IsNative
	}
	if err := enc.WriteUint32(nativeTag, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint64(native, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint64(t.DelegatedAmount, bin.LE); err != nil {
		return err
	}
	return writeOptionKey(enc, t.CloseAuthority)
}

func (t *TokenAccountData) UnmarshalWithDecoder(dec *bin.Decoder) error {
	mint, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	t.Mint = solana.PublicKeyFromBytes(mint)
	owner, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	t.Owner = solana.PublicKeyFromBytes(owner)
	if t.Amount, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if t.Delegate, err = readOptionKey(dec); err != nil {
		return err
	}
	state, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	if state > uint8(TokenAccountFrozen) {
		return fmt.Errorf("invalid token account state %d", state)
	}
	t.State = TokenAccountState(state)
	nativeTag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return err
	}
	native, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	t.IsNative = nil
	if nativeTag != 0 {
		t.IsNative = &native
	}
	if t.DelegatedAmount, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	t.CloseAuthority, err = readOptionKey(dec)
	return err
}

// Bytes encodes the token account into its 165 byte layout.
func (t TokenAccountData) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := t.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeTokenAccountData is only for the token program, which owns the layout.
func DecodeTokenAccountData(data []byte) (TokenAccountData, error) {
	if len(data) != TokenAccountLen {
		return TokenAccountData{}, ErrAccountDidNotDeserialize
	}
	var t TokenAccountData
	if err := t.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return TokenAccountData{}, fmt.Errorf("%w: %s", ErrAccountDidNotDeserialize, err)
	}
	return t, nil
}

func (m MintData) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := writeOptionKey(enc, m.MintAuthority); err != nil {
		return err
	}
	if err := enc.WriteUint64(m.Supply, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint8(m.Decimals); err != nil {
		return err
	}
	if err := enc.WriteBool(m.IsInitialized); err != nil {
		return err
	}
	return writeOptionKey(enc, m.FreezeAuthority)
}

func (m *MintData) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if m.MintAuthority, err = readOptionKey(dec); err != nil {
		return err
	}
	if m.Supply, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if m.Decimals, err = dec.ReadUint8(); err != nil {
		return err
	}
	if m.IsInitialized, err = dec.ReadBool(); err != nil {
		return err
	}
	m.FreezeAuthority, err = readOptionKey(dec)
	return err
}

// Bytes encodes the mint into its 82 byte layout.
func (m MintData) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := m.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeMintData(data []byte) (MintData, error) {
	if len(data) != MintLen {
		return MintData{}, ErrAccountDidNotDeserialize
	}
	var m MintData
	if err := m.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return MintData{}, fmt.Errorf("%w: %s", ErrAccountDidNotDeserialize, err)
	}
	return m, nil
}
