// Package store contains GORM-backed SQLite models used by the message observer.
//
// Database Structure (database file: observer.db):
//
//	observer.db
//	├── observer_states
//	└── published_messages
package store

import (
	"gorm.io/gorm"
)

// ObserverState tracks how far the observer has consumed the ledger.
// One record per database.
type ObserverState struct {
	gorm.Model
	LastHeight int64 // Last ledger height whose events were handled
}

// PublishedMessage is a core bridge message seen in a message_published event.
// An emitter never reuses a sequence, so (Emitter, Sequence) identifies it.
type PublishedMessage struct {
	gorm.Model
	Emitter          string `gorm:"uniqueIndex:idx_emitter_sequence;not null"` // Emitter address, base58
	Sequence         uint64 `gorm:"uniqueIndex:idx_emitter_sequence"`
	Message          string `gorm:"index"` // Message account address; reused by unreliable messages
	Nonce            uint32
	ConsistencyLevel uint8
	PostedTimestamp  uint32
	Unreliable       bool
	Payload          []byte
	BlockHeight      int64 `gorm:"index"` // Ledger height the event was observed at
}
