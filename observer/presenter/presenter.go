// Package presenter serves what the observer recorded over HTTP.
package presenter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pushchain/svm-bridge/observer/store"
)

// MessageSource is the read side of the observer.
type MessageSource interface {
	ListMessages(ctx context.Context, emitter string) ([]store.PublishedMessage, error)
	LatestSequence(ctx context.Context, emitter string) (uint64, bool, error)
	LastHeight(ctx context.Context) (int64, error)
}

type MessageInfo struct {
	Emitter          string `json:"emitter"`
	Sequence         uint64 `json:"sequence"`
	Message          string `json:"message"`
	Nonce            uint32 `json:"nonce"`
	ConsistencyLevel uint8  `json:"consistency_level"`
	PostedTimestamp  uint32 `json:"posted_timestamp"`
	Unreliable       bool   `json:"unreliable"`
	Payload          string `json:"payload"`
	BlockHeight      int64  `json:"block_height"`
}

type LatestSequenceResult struct {
	Emitter  string `json:"emitter"`
	Sequence uint64 `json:"sequence"`
}

type StatusResult struct {
	LastHeight int64 `json:"last_height"`
}

type Presenter struct {
	logger zerolog.Logger
	source MessageSource
	root   chi.Router
}

func NewPresenter(logger zerolog.Logger, source MessageSource, gatherer prometheus.Gatherer) *Presenter {
	p := &Presenter{
		logger: logger.With().Str("component", "presenter").Logger(),
		source: source,
		root:   chi.NewMux(),
	}
	p.root.Use(middleware.RequestID)
	p.root.Use(p.requestLogger)
	p.root.Use(middleware.Recoverer)
	p.root.Get("/status", p.wrapJSONHandler(p.Status))
	p.root.Get("/messages", p.wrapJSONHandler(p.ListMessages))
	p.root.Get("/messages/{emitter:[1-9A-HJ-NP-Za-km-z]{32,44}}", p.wrapJSONHandler(p.ListMessages))
	p.root.Get("/messages/{emitter:[1-9A-HJ-NP-Za-km-z]{32,44}}/latest", p.wrapJSONHandler(p.LatestSequence))
	p.root.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return p
}

func (p *Presenter) Handler() http.Handler {
	return p.root
}

func (p *Presenter) Serve(addr string) error {
	p.logger.Info().Str("addr", addr).Msg("starting presenter service")
	server := &http.Server{
		Addr:              addr,
		Handler:           p.root,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

func (p *Presenter) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ts := time.Now()
		next.ServeHTTP(ww, r)
		p.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("http_method", r.Method).
			Str("http_path", r.RequestURI).
			Int("status", ww.Status()).
			Dur("duration", time.Since(ts)).
			Msg("http request completed")
	})
}

// errNotFound turns into a 404 instead of a 500.
type errNotFound struct{ msg string }

func (e errNotFound) Error() string { return e.msg }

func (p *Presenter) wrapJSONHandler(handler func(ctx context.Context) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r.Context())
		if err != nil {
			status := http.StatusInternalServerError
			if _, ok := err.(errNotFound); ok {
				status = http.StatusNotFound
			} else {
				p.logger.Error().Err(err).Str("http_path", r.RequestURI).Msg("failed to handle request")
			}
			http.Error(w, err.Error(), status)
			return
		}

		enc := json.NewEncoder(w)
		if pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty")); pretty {
			enc.SetIndent("", "  ")
		}
		w.Header().Set("Content-Type", "application/json")
		if err = enc.Encode(res); err != nil {
			p.logger.Error().Err(err).Msg("failed to marshal JSON result")
		}
	}
}

func (p *Presenter) Status(ctx context.Context) (any, error) {
	height, err := p.source.LastHeight(ctx)
	if err != nil {
		return nil, err
	}
	return StatusResult{LastHeight: height}, nil
}

func (p *Presenter) ListMessages(ctx context.Context) (any, error) {
	msgs, err := p.source.ListMessages(ctx, chi.URLParamFromCtx(ctx, "emitter"))
	if err != nil {
		return nil, err
	}
	res := make([]MessageInfo, 0, len(msgs))
	for _, msg := range msgs {
		res = append(res, MessageInfo{
			Emitter:          msg.Emitter,
			Sequence:         msg.Sequence,
			Message:          msg.Message,
			Nonce:            msg.Nonce,
			ConsistencyLevel: msg.ConsistencyLevel,
			PostedTimestamp:  msg.PostedTimestamp,
			Unreliable:       msg.Unreliable,
			Payload:          hex.EncodeToString(msg.Payload),
			BlockHeight:      msg.BlockHeight,
		})
	}
	return res, nil
}

func (p *Presenter) LatestSequence(ctx context.Context) (any, error) {
	emitter := chi.URLParamFromCtx(ctx, "emitter")
	seq, ok, err := p.source.LatestSequence(ctx, emitter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNotFound{msg: fmt.Sprintf("no messages observed for emitter %s", emitter)}
	}
	return LatestSequenceResult{Emitter: emitter, Sequence: seq}, nil
}
