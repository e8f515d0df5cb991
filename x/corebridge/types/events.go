package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeMessagePublished = "message_published"

	AttributeKeyMessage          = "message"
	AttributeKeyEmitter          = "emitter"
	AttributeKeySequence         = "sequence"
	AttributeKeyNonce            = "nonce"
	AttributeKeyConsistencyLevel = "consistency_level"
	AttributeKeyUnreliable       = "unreliable"
	AttributeKeyData             = "data"
)

// MessagePublishedEvent is what observers learn about a published message.
type MessagePublishedEvent struct {
	Message          string `json:"message"`
	Emitter          string `json:"emitter"`
	Sequence         uint64 `json:"sequence"`
	Nonce            uint32 `json:"nonce"`
	ConsistencyLevel uint8  `json:"consistency_level"`
	PostedTimestamp  uint32 `json:"posted_timestamp"`
	Unreliable       bool   `json:"unreliable"`
	Payload          []byte `json:"payload"`
}

// NewMessagePublishedEvent creates a Cosmos SDK event for a published message.
func NewMessagePublishedEvent(e MessagePublishedEvent) (sdk.Event, error) {
	bz, err := json.Marshal(e)
	if err != nil {
		return sdk.Event{}, fmt.Errorf("failed to marshal message published event: %w", err)
	}

	event := sdk.NewEvent(
		EventTypeMessagePublished,
		sdk.NewAttribute(AttributeKeyMessage, e.Message),
		sdk.NewAttribute(AttributeKeyEmitter, e.Emitter),
		sdk.NewAttribute(AttributeKeySequence, strconv.FormatUint(e.Sequence, 10)),
		sdk.NewAttribute(AttributeKeyNonce, strconv.FormatUint(uint64(e.Nonce), 10)),
		sdk.NewAttribute(AttributeKeyConsistencyLevel, strconv.FormatUint(uint64(e.ConsistencyLevel), 10)),
		sdk.NewAttribute(AttributeKeyUnreliable, strconv.FormatBool(e.Unreliable)),
		sdk.NewAttribute(AttributeKeyData, string(bz)), // full JSON payload for indexers
	)

	return event, nil
}

// ParseMessagePublishedEvent reads the event back from its data attribute.
func ParseMessagePublishedEvent(event sdk.Event) (MessagePublishedEvent, error) {
	if event.Type != EventTypeMessagePublished {
		return MessagePublishedEvent{}, fmt.Errorf("unexpected event type %q", event.Type)
	}
	for _, attr := range event.Attributes {
		if attr.Key != AttributeKeyData {
			continue
		}
		var e MessagePublishedEvent
		if err := json.Unmarshal([]byte(attr.Value), &e); err != nil {
			return MessagePublishedEvent{}, fmt.Errorf("failed to unmarshal message published event: %w", err)
		}
		return e, nil
	}
	return MessagePublishedEvent{}, fmt.Errorf("event %q has no %s attribute", event.Type, AttributeKeyData)
}
