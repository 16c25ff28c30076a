package ethereum

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

const logBuffer = 64

type subscription struct {
	inner   event.Subscription
	resumed chan error
	done    chan struct{}
	once    sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		s.inner.Unsubscribe()
	})
}

func (s *subscription) Err() <-chan error {
	return s.inner.Err()
}

func (s *subscription) Resumed() <-chan error {
	return s.resumed
}

// resume reports a re-established stream. Pending reports coalesce.
func (s *subscription) resume(cause error) {
	select {
	case s.resumed <- cause:
	default:
	}
}

// Subscribe streams decoded contract events to handler. The first
// registration happens before returning so a dead node is reported to the
// caller. Later transport drops are re-established in the background and
// reported on Resumed.
func (l *Ledger) Subscribe(ctx context.Context, name string, handler func(domain.Record)) (ports.Subscription, error) {
	ev, ok := l.abi.Events[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownEvent, name)
	}

	query := geth.FilterQuery{
		Addresses: []common.Address{l.contract},
		Topics:    [][]common.Hash{{ev.ID}},
	}
	logs := make(chan types.Log, logBuffer)

	first, err := l.backend.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s logs: %w", name, err)
	}

	logger := l.opts.logger.With("event", name)
	sub := &subscription{resumed: make(chan error, 1), done: make(chan struct{})}
	sub.inner = event.ResubscribeErr(l.opts.resubscribeBackoff, func(ctx context.Context, lastErr error) (event.Subscription, error) {
		if first != nil {
			next := first
			first = nil
			return next, nil
		}
		logger.Warn("resubscribing to contract logs", "err", lastErr)
		next, err := l.backend.SubscribeFilterLogs(ctx, query, logs)
		if err != nil {
			return nil, err
		}
		logger.Info("resubscribed to contract logs")
		sub.resume(lastErr)
		return next, nil
	})

	go forward(ev, logs, sub.done, handler, logger)

	return sub, nil
}

func forward(ev abi.Event, logs <-chan types.Log, done <-chan struct{}, handler func(domain.Record), logger *slog.Logger) {
	for {
		select {
		case <-done:
			return
		case log := <-logs:
			if log.Removed {
				continue
			}
			record, err := decodeEvent(ev, log)
			if err != nil {
				logger.Warn("skip undecodable log", "tx_hash", log.TxHash.Hex(), "err", err)
				continue
			}
			handler(record)
		}
	}
}
