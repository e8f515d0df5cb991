package types

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// MaxPermittedDataLength bounds the data of a single account.
const MaxPermittedDataLength = 10 * 1024 * 1024

// Account is the ledger-level state of an SVM address.
type Account struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Executable bool
	Data       []byte
}

// EmptyAccount is what an address holds before anything was created there.
func EmptyAccount() Account {
	return Account{Owner: solana.SystemProgramID}
}

// Exists reports whether the address holds lamports or data.
func (a Account) Exists() bool {
	return a.Lamports > 0 || len(a.Data) > 0
}

// DataIsEmpty reports whether no space was allocated for the account.
func (a Account) DataIsEmpty() bool {
	return len(a.Data) == 0
}

// IsOwnedBy reports whether program owns the account.
func (a Account) IsOwnedBy(program solana.PublicKey) bool {
	return a.Owner.Equals(program)
}

func (a Account) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint64(a.Lamports, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteBytes(a.Owner[:], false); err != nil {
		return err
	}
	if err := enc.WriteBool(a.Executable); err != nil {
		return err
	}
	if err := enc.WriteUint32(uint32(len(a.Data)), bin.LE); err != nil {
		return err
	}
	return enc.WriteBytes(a.Data, false)
}

func (a *Account) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if a.Lamports, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	owner, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	a.Owner = solana.PublicKeyFromBytes(owner)
	if a.Executable, err = dec.ReadBool(); err != nil {
		return err
	}
	dataLen, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return err
	}
	if dataLen > MaxPermittedDataLength {
		return fmt.Errorf("account data length %d exceeds %d", dataLen, MaxPermittedDataLength)
	}
	data, err := dec.ReadNBytes(int(dataLen))
	if err != nil {
		return err
	}
	a.Data = append([]byte{}, data...)
	return nil
}

var _ collcodec.ValueCodec[Account] = AccountValueCodec{}

// AccountValueCodec stores accounts in collections with a Borsh layout.
type AccountValueCodec struct{}

func (AccountValueCodec) Encode(value Account) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := value.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (AccountValueCodec) Decode(b []byte) (Account, error) {
	var acct Account
	if err := acct.UnmarshalWithDecoder(bin.NewBorshDecoder(b)); err != nil {
		return Account{}, fmt.Errorf("failed to decode account: %w", err)
	}
	return acct, nil
}

type accountJSON struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	Executable bool   `json:"executable"`
	Data       string `json:"data"`
}

func (AccountValueCodec) EncodeJSON(value Account) ([]byte, error) {
	return json.Marshal(accountJSON{
		Lamports:   value.Lamports,
		Owner:      value.Owner.String(),
		Executable: value.Executable,
		Data:       base64.StdEncoding.EncodeToString(value.Data),
	})
}

func (AccountValueCodec) DecodeJSON(b []byte) (Account, error) {
	var raw accountJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return Account{}, err
	}
	owner, err := solana.PublicKeyFromBase58(raw.Owner)
	if err != nil {
		return Account{}, fmt.Errorf("invalid owner: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(raw.Data)
	if err != nil {
		return Account{}, fmt.Errorf("invalid data: %w", err)
	}
	return Account{
		Lamports:   raw.Lamports,
		Owner:      owner,
		Executable: raw.Executable,
		Data:       data,
	}, nil
}

func (AccountValueCodec) Stringify(value Account) string {
	return fmt.Sprintf("Account{lamports: %d, owner: %s, executable: %t, data_len: %d}",
		value.Lamports, value.Owner, value.Executable, len(value.Data))
}

func (AccountValueCodec) ValueType() string {
	return "svm/Account"
}
