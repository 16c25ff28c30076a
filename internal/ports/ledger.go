package ports

import (
	"context"

	"github.com/bnema/waveportal-cli/internal/domain"
)

type Ledger interface {
	ReadAll(ctx context.Context) ([]domain.Record, error)
	ReadCount(ctx context.Context) (uint64, error)
	Submit(ctx context.Context, message string, opts domain.SubmitOptions) (domain.PendingTx, error)
	AwaitConfirmation(ctx context.Context, tx domain.PendingTx) (domain.Receipt, error)
	// Subscribe invokes handler once per matching event, from a goroutine
	// owned by the ledger, until the returned subscription is released.
	Subscribe(ctx context.Context, event string, handler func(domain.Record)) (Subscription, error)
	Close()
}

type Subscription interface {
	Unsubscribe()
	Err() <-chan error
	// Resumed delivers the error that interrupted the stream each time it is
	// re-established. Events emitted during the gap are not replayed.
	Resumed() <-chan error
}

// LedgerFactory builds a new Ledger bound to signer. An empty signer yields
// a read-only handle.
type LedgerFactory interface {
	Open(ctx context.Context, signer domain.Address) (Ledger, error)
}
