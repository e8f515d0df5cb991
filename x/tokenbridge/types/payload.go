package types

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/holiman/uint256"
)

// Payload IDs of token bridge messages.
const (
	PayloadIDTransfer            uint8 = 1
	PayloadIDTransferWithMessage uint8 = 3
)

// TransferLen is the encoded size of a Transfer.
const TransferLen = 1 + 32 + 32 + 2 + 32 + 2 + 32

// transferWithMessageHeaderLen precedes the opaque payload of a TransferWithMessage.
const transferWithMessageHeaderLen = 1 + 32 + 32 + 2 + 32 + 2 + 32

// Transfer moves a token to a recipient, paying a relayer fee out of the amount.
type Transfer struct {
	NormAmount     *uint256.Int
	TokenAddress   [32]byte
	TokenChain     uint16
	Recipient      [32]byte
	RecipientChain uint16
	NormRelayerFee *uint256.Int
}

// TransferWithMessage moves a token to a redeemer along with an opaque payload.
type TransferWithMessage struct {
	NormAmount    *uint256.Int
	TokenAddress  [32]byte
	TokenChain    uint16
	Redeemer      [32]byte
	RedeemerChain uint16
	Sender        [32]byte
	Payload       []byte
}

func writeU256(enc *bin.Encoder, v *uint256.Int) error {
	if v == nil {
		v = new(uint256.Int)
	}
	b := v.Bytes32()
	return enc.WriteBytes(b[:], false)
}

func readU256(dec *bin.Decoder) (*uint256.Int, error) {
	b, err := dec.ReadNBytes(32)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(b), nil
}

func readAddress(dec *bin.Decoder) (addr [32]byte, err error) {
	b, err := dec.ReadNBytes(32)
	if err != nil {
		return addr, err
	}
	copy(addr[:], b)
	return addr, nil
}

// Verify checks the transfer can be bridged.
func (t Transfer) Verify() error {
	if t.NormAmount == nil || t.NormAmount.IsZero() {
		return ErrZeroBridgeAmount
	}
	if t.NormRelayerFee != nil && t.NormRelayerFee.Gt(t.NormAmount) {
		return ErrInvalidRelayerFee
	}
	return nil
}

func (t Transfer) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	if err := enc.WriteUint8(PayloadIDTransfer); err != nil {
		return nil, err
	}
	if err := writeU256(enc, t.NormAmount); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(t.TokenAddress[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint16(t.TokenChain, bin.BE); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(t.Recipient[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint16(t.RecipientChain, bin.BE); err != nil {
		return nil, err
	}
	if err := writeU256(enc, t.NormRelayerFee); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseTransfer(data []byte) (Transfer, error) {
	if len(data) != TransferLen {
		return Transfer{}, ErrInvalidPayload.Wrapf("transfer must be %d bytes, got %d", TransferLen, len(data))
	}
	if data[0] != PayloadIDTransfer {
		return Transfer{}, ErrInvalidPayload.Wrapf("payload id %d", data[0])
	}
	dec := bin.NewBinDecoder(data[1:])
	var (
		t   Transfer
		err error
	)
	if t.NormAmount, err = readU256(dec); err != nil {
		return Transfer{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.TokenAddress, err = readAddress(dec); err != nil {
		return Transfer{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.TokenChain, err = dec.ReadUint16(bin.BE); err != nil {
		return Transfer{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.Recipient, err = readAddress(dec); err != nil {
		return Transfer{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.RecipientChain, err = dec.ReadUint16(bin.BE); err != nil {
		return Transfer{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.NormRelayerFee, err = readU256(dec); err != nil {
		return Transfer{}, ErrInvalidPayload.Wrap(err.Error())
	}
	return t, nil
}

// Verify checks the transfer can be bridged.
func (t TransferWithMessage) Verify() error {
	if t.NormAmount == nil || t.NormAmount.IsZero() {
		return ErrZeroBridgeAmount
	}
	return nil
}

func (t TransferWithMessage) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	if err := enc.WriteUint8(PayloadIDTransferWithMessage); err != nil {
		return nil, err
	}
	if err := writeU256(enc, t.NormAmount); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(t.TokenAddress[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint16(t.TokenChain, bin.BE); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(t.Redeemer[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint16(t.RedeemerChain, bin.BE); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(t.Sender[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(t.Payload, false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseTransferWithMessage(data []byte) (TransferWithMessage, error) {
	if len(data) < transferWithMessageHeaderLen {
		return TransferWithMessage{}, ErrInvalidPayload.Wrapf("transfer with message needs at least %d bytes, got %d", transferWithMessageHeaderLen, len(data))
	}
	if data[0] != PayloadIDTransferWithMessage {
		return TransferWithMessage{}, ErrInvalidPayload.Wrapf("payload id %d", data[0])
	}
	dec := bin.NewBinDecoder(data[1:transferWithMessageHeaderLen])
	var (
		t   TransferWithMessage
		err error
	)
	if t.NormAmount, err = readU256(dec); err != nil {
		return TransferWithMessage{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.TokenAddress, err = readAddress(dec); err != nil {
		return TransferWithMessage{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.TokenChain, err = dec.ReadUint16(bin.BE); err != nil {
		return TransferWithMessage{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.Redeemer, err = readAddress(dec); err != nil {
		return TransferWithMessage{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.RedeemerChain, err = dec.ReadUint16(bin.BE); err != nil {
		return TransferWithMessage{}, ErrInvalidPayload.Wrap(err.Error())
	}
	if t.Sender, err = readAddress(dec); err != nil {
		return TransferWithMessage{}, ErrInvalidPayload.Wrap(err.Error())
	}
	t.Payload = append([]byte{}, data[transferWithMessageHeaderLen:]...)
	return t, nil
}

func (t TransferWithMessage) String() string {
	amount := "0"
	if t.NormAmount != nil {
		amount = t.NormAmount.Dec()
	}
	return fmt.Sprintf("TransferWithMessage{amount: %s, token: %x@%d, redeemer: %x@%d, payload: %d bytes}",
		amount, t.TokenAddress, t.TokenChain, t.Redeemer, t.RedeemerChain, len(t.Payload))
}
