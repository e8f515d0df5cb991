package types

import (
	"fmt"
	"strings"
)

// Commitment is how final a block must be before guardians observe a message.
type Commitment uint8

const (
	CommitmentConfirmed Commitment = iota
	CommitmentFinalized
)

// ConsistencyLevel is the byte stored in posted messages for the commitment.
func (c Commitment) ConsistencyLevel() uint8 {
	switch c {
	case CommitmentConfirmed:
		return 1
	default:
		return 32
	}
}

func (c Commitment) String() string {
	switch c {
	case CommitmentConfirmed:
		return "confirmed"
	case CommitmentFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("Commitment(%d)", uint8(c))
	}
}

func (c Commitment) Validate() error {
	if c > CommitmentFinalized {
		return ErrInvalidCommitment.Wrapf("%d", uint8(c))
	}
	return nil
}

// CommitmentFromConsistencyLevel inverts ConsistencyLevel.
func CommitmentFromConsistencyLevel(level uint8) (Commitment, error) {
	switch level {
	case 1:
		return CommitmentConfirmed, nil
	case 32:
		return CommitmentFinalized, nil
	default:
		return 0, ErrInvalidCommitment.Wrapf("consistency level %d", level)
	}
}

func ParseCommitment(s string) (Commitment, error) {
	switch strings.ToLower(s) {
	case "confirmed":
		return CommitmentConfirmed, nil
	case "finalized":
		return CommitmentFinalized, nil
	default:
		return 0, ErrInvalidCommitment.Wrapf("%q", s)
	}
}
