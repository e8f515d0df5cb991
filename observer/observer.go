// Package observer follows the core bridge from the outside: it reads
// message_published events off executed instructions and keeps a queryable
// record of every message per emitter.
package observer

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushchain/svm-bridge/observer/db"
	"github.com/pushchain/svm-bridge/observer/store"
	corebridgetypes "github.com/pushchain/svm-bridge/x/corebridge/types"
)

// Observer persists published messages and exports their metrics.
type Observer struct {
	db      *db.DB
	logger  zerolog.Logger
	metrics *metrics
}

func New(database *db.DB, registerer prometheus.Registerer, logger zerolog.Logger) *Observer {
	return &Observer{
		db:      database,
		logger:  logger.With().Str("component", "observer").Logger(),
		metrics: newMetrics(registerer),
	}
}

// HandleEvents records the message_published events among events, observed at
// height, and returns how many of them were new. Seeing the same emitter and
// sequence again changes nothing.
func (o *Observer) HandleEvents(ctx context.Context, height int64, events sdk.Events) (int, error) {
	var rows []store.PublishedMessage
	for _, event := range events {
		if event.Type != corebridgetypes.EventTypeMessagePublished {
			continue
		}
		published, err := corebridgetypes.ParseMessagePublishedEvent(event)
		if err != nil {
			return 0, errors.Wrap(err, "failed to parse message published event")
		}
		rows = append(rows, store.PublishedMessage{
			Emitter:          published.Emitter,
			Sequence:         published.Sequence,
			Message:          published.Message,
			Nonce:            published.Nonce,
			ConsistencyLevel: published.ConsistencyLevel,
			PostedTimestamp:  published.PostedTimestamp,
			Unreliable:       published.Unreliable,
			Payload:          published.Payload,
			BlockHeight:      height,
		})
	}

	var added []store.PublishedMessage
	err := o.db.Client().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows[i])
			if res.Error != nil {
				return errors.Wrapf(res.Error, "failed to store message %s/%d", rows[i].Emitter, rows[i].Sequence)
			}
			if res.RowsAffected > 0 {
				added = append(added, rows[i])
			}
		}
		return setLastHeight(tx, height)
	})
	if err != nil {
		return 0, err
	}

	o.metrics.lastHeight.Set(float64(height))
	for _, msg := range added {
		o.metrics.observedMessages.WithLabelValues(strconv.FormatBool(msg.Unreliable)).Inc()
		o.logger.Info().
			Str("emitter", msg.Emitter).
			Uint64("sequence", msg.Sequence).
			Str("message", msg.Message).
			Int64("height", height).
			Msg("message observed")
	}
	for emitter := range emittersOf(added) {
		latest, ok, err := o.LatestSequence(ctx, emitter)
		if err != nil {
			return len(added), err
		}
		if ok {
			o.metrics.latestSequence.WithLabelValues(emitter).Set(float64(latest))
		}
	}
	if len(rows) > len(added) {
		o.logger.Debug().Int("duplicates", len(rows)-len(added)).Int64("height", height).Msg("skipped messages already observed")
	}
	return len(added), nil
}

func emittersOf(msgs []store.PublishedMessage) map[string]struct{} {
	emitters := make(map[string]struct{}, len(msgs))
	for _, msg := range msgs {
		emitters[msg.Emitter] = struct{}{}
	}
	return emitters
}

func setLastHeight(tx *gorm.DB, height int64) error {
	var state store.ObserverState
	err := tx.First(&state).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		state.LastHeight = height
		return errors.Wrap(tx.Create(&state).Error, "failed to create observer state")
	case err != nil:
		return errors.Wrap(err, "failed to load observer state")
	case height > state.LastHeight:
		return errors.Wrap(tx.Model(&state).Update("last_height", height).Error, "failed to update observer state")
	default:
		return nil
	}
}

// LastHeight is the highest ledger height handled so far, 0 before any.
func (o *Observer) LastHeight(ctx context.Context) (int64, error) {
	var state store.ObserverState
	err := o.db.Client().WithContext(ctx).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to load observer state")
	}
	return state.LastHeight, nil
}

// ListMessages returns the observed messages of emitter in sequence order,
// or those of every emitter when emitter is empty.
func (o *Observer) ListMessages(ctx context.Context, emitter string) ([]store.PublishedMessage, error) {
	query := o.db.Client().WithContext(ctx).Order("emitter").Order("sequence")
	if emitter != "" {
		query = query.Where("emitter = ?", emitter)
	}
	var msgs []store.PublishedMessage
	if err := query.Find(&msgs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}
	return msgs, nil
}

// LatestSequence returns the highest sequence observed for emitter; ok is
// false when none was.
func (o *Observer) LatestSequence(ctx context.Context, emitter string) (seq uint64, ok bool, err error) {
	var msg store.PublishedMessage
	err = o.db.Client().WithContext(ctx).
		Where("emitter = ?", emitter).
		Order("sequence desc").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, "failed to load latest sequence of %s", emitter)
	}
	return msg.Sequence, true, nil
}
