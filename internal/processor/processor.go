// Package processor runs the full query flow: classification, parameter
// extraction and query logging.
package processor

import (
	"context"
	"io"
	"log"
	"time"

	"solana-blink-bot/internal/classify"
	"solana-blink-bot/internal/dispatch"
	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/observability"
	"solana-blink-bot/internal/storage"
)

// Outcome is the result of processing one query.
type Outcome struct {
	Query      string               `json:"query"`
	Intent     string               `json:"intent,omitempty"`
	Resolution domain.Resolution    `json:"-"`
	Result     *domain.ActionResult `json:"result,omitempty"`
}

// Undecided reports whether no intent could be determined.
func (o *Outcome) Undecided() bool {
	return o.Intent == ""
}

// Processor ties the classifier and dispatcher together and records each
// processed query.
type Processor struct {
	classifier *classify.Classifier
	dispatcher *dispatch.Dispatcher
	queryLog   storage.QueryLogStore
	logger     *log.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithQueryLog enables best-effort query logging.
func WithQueryLog(store storage.QueryLogStore) Option {
	return func(p *Processor) {
		p.queryLog = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// New creates a Processor.
func New(classifier *classify.Classifier, dispatcher *dispatch.Dispatcher, opts ...Option) *Processor {
	p := &Processor{
		classifier: classifier,
		dispatcher: dispatcher,
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process classifies the query and extracts its parameters. An undecided
// query yields an Outcome with an empty intent; a decided query with missing
// entities yields a nil Result.
func (p *Processor) Process(ctx context.Context, query string) *Outcome {
	start := time.Now()

	outcome := &Outcome{Query: query}
	intent, resolution, ok := p.classifier.Classify(ctx, query)
	outcome.Resolution = resolution
	if ok {
		outcome.Intent = intent.String()
		outcome.Result = p.dispatcher.Dispatch(ctx, intent, query)
	}

	elapsed := time.Since(start)
	observability.RecordQueryProcessed(outcome.Intent)
	observability.RecordQueryDuration(elapsed.Seconds())

	p.record(ctx, outcome, elapsed)
	return outcome
}

// record writes the query log entry. Failures are logged and swallowed; the
// log is an observer, not a participant.
func (p *Processor) record(ctx context.Context, outcome *Outcome, elapsed time.Duration) {
	if p.queryLog == nil {
		return
	}

	err := p.queryLog.Insert(ctx, &domain.QueryRecord{
		Query:       outcome.Query,
		Intent:      outcome.Intent,
		Resolution:  outcome.Resolution,
		Resolved:    outcome.Result != nil,
		DurationMs:  elapsed.Milliseconds(),
		TimestampMs: time.Now().UnixMilli(),
	})
	observability.RecordQueryLogWrite(err)
	if err != nil {
		p.logger.Printf("query log write failed: %v", err)
	}
}
