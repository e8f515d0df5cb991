package types

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Discriminators of the two posted message variants.
var (
	PostedMessageV1Discriminator           = [3]byte{'m', 's', 'g'}
	PostedMessageV1UnreliableDiscriminator = [3]byte{'m', 's', 'u'}
)

// PayloadStart is the offset of the payload bytes: every header field plus
// the discriminator and the payload length prefix.
const PayloadStart = 3 + 1 + 32 + 1 + 3 + 4 + 4 + 8 + 2 + 32 + 4

// ComputeMessageSpace is the account size needed for a payload of the given length.
func ComputeMessageSpace(payloadLen int) uint64 {
	return uint64(PayloadStart + payloadLen)
}

type MessageStatus uint8

const (
	MessageStatusUnset MessageStatus = iota
	MessageStatusWriting
	MessageStatusPublished
)

func (s MessageStatus) String() string {
	switch s {
	case MessageStatusUnset:
		return "unset"
	case MessageStatusWriting:
		return "writing"
	case MessageStatusPublished:
		return "published"
	default:
		return fmt.Sprintf("MessageStatus(%d)", uint8(s))
	}
}

// PostedMessageV1 is a message account observed by guardians. Unreliable marks
// the reusable mailbox variant.
type PostedMessageV1 struct {
	Unreliable       bool
	ConsistencyLevel uint8
	// EmitterAuthority may write a draft; it is cleared once published.
	EmitterAuthority solana.PublicKey
	Status           MessageStatus
	PostedTimestamp  uint32
	Nonce            uint32
	Sequence         uint64
	SolanaChainID    uint16
	Emitter          solana.PublicKey
	Payload          []byte
}

func (m PostedMessageV1) Discriminator() [3]byte {
	if m.Unreliable {
		return PostedMessageV1UnreliableDiscriminator
	}
	return PostedMessageV1Discriminator
}

// Space is the account size the message occupies.
func (m PostedMessageV1) Space() uint64 {
	return ComputeMessageSpace(len(m.Payload))
}

func (m PostedMessageV1) MarshalWithEncoder(enc *bin.Encoder) error {
	disc := m.Discriminator()
	if err := enc.WriteBytes(disc[:], false); err != nil {
		return err
	}
	if err := enc.WriteUint8(m.ConsistencyLevel); err != nil {
		return err
	}
	if err := enc.WriteBytes(m.EmitterAuthority[:], false); err != nil {
		return err
	}
	if err := enc.WriteUint8(uint8(m.Status)); err != nil {
		return err
	}
	if err := enc.WriteBytes(make([]byte, 3), false); err != nil {
		return err
	}
	if err := enc.WriteUint32(m.PostedTimestamp, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint32(m.Nonce, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint64(m.Sequence, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint16(m.SolanaChainID, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteBytes(m.Emitter[:], false); err != nil {
		return err
	}
	if err := enc.WriteUint32(uint32(len(m.Payload)), bin.LE); err != nil {
		return err
	}
	return enc.WriteBytes(m.Payload, false)
}

func (m *PostedMessageV1) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	disc, err := dec.ReadNBytes(3)
	if err != nil {
		return err
	}
	switch {
	case bytes.Equal(disc, PostedMessageV1Discriminator[:]):
		m.Unreliable = false
	case bytes.Equal(disc, PostedMessageV1UnreliableDiscriminator[:]):
		m.Unreliable = true
	default:
		return fmt.Errorf("unknown posted message discriminator %q", disc)
	}
	if m.ConsistencyLevel, err = dec.ReadUint8(); err != nil {
		return err
	}
	authority, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	m.EmitterAuthority = solana.PublicKeyFromBytes(authority)
	status, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	m.Status = MessageStatus(status)
	if err := dec.SkipBytes(3); err != nil {
		return err
	}
	if m.PostedTimestamp, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	if m.Nonce, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	if m.Sequence, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if m.SolanaChainID, err = dec.ReadUint16(bin.LE); err != nil {
		return err
	}
	emitter, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	m.Emitter = solana.PublicKeyFromBytes(emitter)
	payloadLen, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return err
	}
	payload, err := dec.ReadNBytes(int(payloadLen))
	if err != nil {
		return err
	}
	m.Payload = append([]byte{}, payload...)
	return nil
}

func (m PostedMessageV1) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := m.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParsePostedMessageV1 decodes either variant. The payload must fill the account exactly.
func ParsePostedMessageV1(data []byte) (PostedMessageV1, error) {
	if len(data) < PayloadStart {
		return PostedMessageV1{}, fmt.Errorf("posted message needs at least %d bytes, got %d", PayloadStart, len(data))
	}
	var m PostedMessageV1
	if err := m.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return PostedMessageV1{}, err
	}
	if uint64(len(data)) != m.Space() {
		return PostedMessageV1{}, fmt.Errorf("posted message payload length %d does not fill %d byte account", len(m.Payload), len(data))
	}
	return m, nil
}
