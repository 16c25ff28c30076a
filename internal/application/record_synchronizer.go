package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
)

// RecordSynchronizer owns the session's record list. The bulk read and the
// live subscription feed the same list. Bulk records are taken by position;
// Record.Key only matches live records against them, so the boundary between
// the two never produces a duplicate.
type RecordSynchronizer struct {
	loc     *time.Location
	metrics ports.Metrics
	logger  *slog.Logger

	mu         sync.Mutex
	ledger     ports.Ledger
	sub        ports.Subscription
	cancel     context.CancelFunc
	generation uint64
	records    []domain.Record
	seen       map[string]struct{}
	onChange   func()
}

func NewRecordSynchronizer(loc *time.Location, metrics ports.Metrics, logger *slog.Logger) *RecordSynchronizer {
	if loc == nil {
		loc = time.UTC
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &RecordSynchronizer{
		loc:     loc,
		metrics: metrics,
		logger:  loggerOrDiscard(logger),
		seen:    map[string]struct{}{},
	}
}

func (s *RecordSynchronizer) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onChange = fn
}

// Start releases any previous subscription, subscribes to new-record events
// on ledger and then performs the bulk load.
func (s *RecordSynchronizer) Start(ctx context.Context, ledger ports.Ledger) error {
	s.Stop()

	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.ledger = ledger
	s.mu.Unlock()

	var subscribeErr error
	sub, err := ledger.Subscribe(ctx, domain.EventNewRecord, func(record domain.Record) {
		s.appendLive(generation, record)
	})
	if err != nil {
		s.logger.Warn("subscribe to new records", "event", domain.EventNewRecord, "err", err)
		subscribeErr = fmt.Errorf("subscribe to %s: %w", domain.EventNewRecord, err)
	} else {
		watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.mu.Lock()
		if s.generation == generation {
			s.sub = sub
			s.cancel = cancel
			s.mu.Unlock()
			go s.watch(watchCtx, sub)
		} else {
			s.mu.Unlock()
			cancel()
			sub.Unsubscribe()
		}
	}

	return errors.Join(subscribeErr, s.Load(ctx))
}

// Load replaces the head of the list with the ledger's full history. Records
// already received live but missing from the read are kept after it, so the
// list never shrinks. On failure the list is left untouched.
func (s *RecordSynchronizer) Load(ctx context.Context) error {
	s.mu.Lock()
	ledger := s.ledger
	generation := s.generation
	s.mu.Unlock()

	if ledger == nil {
		return domain.ErrNotConnected
	}

	history, err := ledger.ReadAll(ctx)
	if err != nil {
		s.metrics.SyncFailed()
		s.logger.Warn("load records", "err", err)
		return fmt.Errorf("%w: read all records: %w", domain.ErrReadFailed, err)
	}

	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		s.logger.Debug("discard records read from a released ledger")
		return nil
	}
	merged, seen := mergeHistory(history, s.records)
	added := len(merged) - len(s.records)
	s.records = merged
	s.seen = seen
	total := len(merged)
	onChange := s.onChange
	s.mu.Unlock()

	s.metrics.RecordsAppended(ports.RecordSourceBulk, added)
	s.logger.Info("loaded records", "count", len(history), "total", total)
	if onChange != nil {
		onChange()
	}

	return nil
}

// mergeHistory keeps every history record, then each held record that no
// history record accounts for. Held records are matched by key, one history
// occurrence per held occurrence.
func mergeHistory(history, held []domain.Record) ([]domain.Record, map[string]struct{}) {
	merged := make([]domain.Record, 0, len(history)+len(held))
	seen := make(map[string]struct{}, len(history)+len(held))
	unmatched := make(map[string]int, len(history))
	for _, record := range history {
		key := record.Key()
		unmatched[key]++
		seen[key] = struct{}{}
		merged = append(merged, record)
	}
	for _, record := range held {
		key := record.Key()
		if unmatched[key] > 0 {
			unmatched[key]--
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, record)
	}

	return merged, seen
}

// Stop releases the live subscription. It is safe to call more than once.
func (s *RecordSynchronizer) Stop() {
	s.mu.Lock()
	sub := s.sub
	cancel := s.cancel
	s.sub = nil
	s.cancel = nil
	s.ledger = nil
	s.generation++
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if sub != nil {
		sub.Unsubscribe()
		s.logger.Debug("released record subscription")
	}
}

func (s *RecordSynchronizer) Records() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.Entry, 0, len(s.records))
	for _, record := range s.records {
		entries = append(entries, record.Entry(s.loc))
	}

	return entries
}

func (s *RecordSynchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

func (s *RecordSynchronizer) appendLive(generation uint64, record domain.Record) {
	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		return
	}

	key := record.Key()
	if _, dup := s.seen[key]; dup {
		s.mu.Unlock()
		s.logger.Debug("skip duplicate record", "sender", record.Sender, "submitted_at", record.SubmittedAt)
		return
	}
	s.seen[key] = struct{}{}
	s.records = append(s.records, record)
	onChange := s.onChange
	s.mu.Unlock()

	s.metrics.RecordsAppended(ports.RecordSourceLive, 1)
	s.logger.Info("new record", "sender", record.Sender, "submitted_at", record.SubmittedAt)
	if onChange != nil {
		onChange()
	}
}

// watch reloads the full history whenever the live stream recovers from a
// drop, since events emitted during the gap are never delivered.
func (s *RecordSynchronizer) watch(ctx context.Context, sub ports.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-sub.Err():
			if ok && err != nil {
				s.metrics.SyncFailed()
				s.logger.Warn("record subscription ended", "err", err)
			}
			return
		case cause := <-sub.Resumed():
			s.metrics.SyncFailed()
			s.logger.Warn("record subscription resumed after a drop, reloading", "err", cause)
			if err := s.Load(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("reload records after resubscribe", "err", err)
			}
		}
	}
}
