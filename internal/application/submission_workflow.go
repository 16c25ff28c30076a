package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
)

type SubmissionResult struct {
	Outcome domain.SubmissionState
	Tx      domain.PendingTx
	Receipt domain.Receipt
}

// SubmissionWorkflow drives Idle -> Submitting -> (Confirmed | Failed) -> Idle.
type SubmissionWorkflow struct {
	opts           domain.SubmitOptions
	confirmTimeout time.Duration
	clock          ports.Clock
	metrics        ports.Metrics
	logger         *slog.Logger

	mu       sync.Mutex
	state    domain.SubmissionState
	last     domain.SubmissionState
	tx       domain.PendingTx
	onChange func()
}

func NewSubmissionWorkflow(opts domain.SubmitOptions, confirmTimeout time.Duration, clock ports.Clock, metrics ports.Metrics, logger *slog.Logger) *SubmissionWorkflow {
	if opts.GasLimit == 0 {
		opts.GasLimit = domain.DefaultGasLimit
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &SubmissionWorkflow{
		opts:           opts,
		confirmTimeout: confirmTimeout,
		clock:          clock,
		metrics:        metrics,
		logger:         loggerOrDiscard(logger),
		state:          domain.SubmissionIdle,
	}
}

func (w *SubmissionWorkflow) OnChange(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.onChange = fn
}

func (w *SubmissionWorkflow) State() domain.SubmissionState {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.state
}

// PendingTx is the transaction of the attempt in flight, once the ledger has
// accepted it.
func (w *SubmissionWorkflow) PendingTx() (domain.PendingTx, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != domain.SubmissionSubmitting || w.tx.Hash == "" {
		return domain.PendingTx{}, false
	}
	return w.tx, true
}

// LastOutcome is the terminal state of the most recent attempt, or Idle.
func (w *SubmissionWorkflow) LastOutcome() domain.SubmissionState {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.last == "" {
		return domain.SubmissionIdle
	}
	return w.last
}

// Submit writes text to ledger and waits for confirmation. Empty text is a
// no-op that reports an Idle outcome and touches nothing.
func (w *SubmissionWorkflow) Submit(ctx context.Context, ledger ports.Ledger, text string) (SubmissionResult, error) {
	if strings.TrimSpace(text) == "" {
		w.logger.Info("message is empty, nothing to submit")
		return SubmissionResult{Outcome: domain.SubmissionIdle}, nil
	}
	if ledger == nil {
		w.logger.Warn("submit without a connected wallet")
		return SubmissionResult{Outcome: domain.SubmissionIdle}, domain.ErrNotConnected
	}

	if err := w.begin(); err != nil {
		return SubmissionResult{Outcome: domain.SubmissionIdle}, err
	}

	started := w.clock.Now()
	result, err := w.run(ctx, ledger, text)
	w.finish(result.Outcome, w.clock.Now().Sub(started))

	return result, err
}

func (w *SubmissionWorkflow) run(ctx context.Context, ledger ports.Ledger, text string) (SubmissionResult, error) {
	w.logCount(ctx, ledger, "retrieved total record count")

	tx, err := ledger.Submit(ctx, text, w.opts)
	if err != nil {
		w.logger.Warn("submit record", "err", err)
		return SubmissionResult{Outcome: domain.SubmissionFailed}, fmt.Errorf("submit record: %w", classifySubmitError(err))
	}
	w.logger.Info("mining", "tx_hash", tx.Hash, "gas_limit", w.opts.GasLimit)
	w.accepted(tx)

	confirmCtx := ctx
	if w.confirmTimeout > 0 {
		var cancel context.CancelFunc
		confirmCtx, cancel = context.WithTimeout(ctx, w.confirmTimeout)
		defer cancel()
	}

	receipt, err := ledger.AwaitConfirmation(confirmCtx, tx)
	if err != nil {
		w.logger.Warn("await confirmation", "tx_hash", tx.Hash, "err", err)
		return SubmissionResult{Outcome: domain.SubmissionFailed, Tx: tx}, fmt.Errorf("await confirmation of %s: %w", tx.Hash, classifySubmitError(err))
	}
	w.logger.Info("mined", "tx_hash", tx.Hash, "block", receipt.BlockNumber, "gas_used", receipt.GasUsed)

	w.logCount(ctx, ledger, "retrieved total record count")

	return SubmissionResult{Outcome: domain.SubmissionConfirmed, Tx: tx, Receipt: receipt}, nil
}

func (w *SubmissionWorkflow) begin() error {
	w.mu.Lock()
	if w.state == domain.SubmissionSubmitting {
		w.mu.Unlock()
		return domain.ErrSubmissionInProgress
	}
	w.state = domain.SubmissionSubmitting
	w.tx = domain.PendingTx{}
	onChange := w.onChange
	w.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return nil
}

func (w *SubmissionWorkflow) accepted(tx domain.PendingTx) {
	w.mu.Lock()
	w.tx = tx
	onChange := w.onChange
	w.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

func (w *SubmissionWorkflow) finish(outcome domain.SubmissionState, took time.Duration) {
	w.mu.Lock()
	w.last = outcome
	w.state = domain.SubmissionIdle
	w.tx = domain.PendingTx{}
	onChange := w.onChange
	w.mu.Unlock()

	w.metrics.SubmissionFinished(outcome, took)
	if onChange != nil {
		onChange()
	}
}

func (w *SubmissionWorkflow) logCount(ctx context.Context, ledger ports.Ledger, msg string) {
	count, err := ledger.ReadCount(ctx)
	if err != nil {
		w.logger.Warn("read record count", "err", fmt.Errorf("%w: %w", domain.ErrReadFailed, err))
		return
	}

	w.logger.Info(msg, "count", count)
}

// classifySubmitError keeps user rejections distinct and folds everything
// else into ErrTransactionFailed.
func classifySubmitError(err error) error {
	if errors.Is(err, domain.ErrUserRejected) || errors.Is(err, domain.ErrTransactionFailed) || errors.Is(err, domain.ErrNotConnected) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
}
