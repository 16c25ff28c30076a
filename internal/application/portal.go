package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
)

type PortalDeps struct {
	Wallet   ports.WalletAgent
	Ledgers  ports.LedgerFactory
	Notifier ports.Notifier
	Metrics  ports.Metrics
	Clock    ports.Clock
	Logger   *slog.Logger
}

type PortalConfig struct {
	Submit         domain.SubmitOptions
	ConfirmTimeout time.Duration
	Location       *time.Location
}

// Portal is the surface the presentation layer drives: session and record
// state to read, pending text to edit, and the connect and submit actions.
type Portal struct {
	sessions   *SessionManager
	records    *RecordSynchronizer
	submission *SubmissionWorkflow
	ledgers    ports.LedgerFactory
	logger     *slog.Logger
	updates    chan struct{}

	// lifecycle serializes attach with Close so a closing portal never
	// starts sync on a ledger it is about to release.
	lifecycle sync.Mutex

	mu      sync.Mutex
	ledger  ports.Ledger
	signer  domain.Address
	pending string
	closed  bool
}

func NewPortal(deps PortalDeps, cfg PortalConfig) *Portal {
	logger := loggerOrDiscard(deps.Logger)
	sessions := NewSessionManager(deps.Wallet, deps.Notifier, logger)
	logger = logger.With("session_id", sessions.Session().ID)

	p := &Portal{
		sessions:   sessions,
		records:    NewRecordSynchronizer(cfg.Location, deps.Metrics, logger),
		submission: NewSubmissionWorkflow(cfg.Submit, cfg.ConfirmTimeout, deps.Clock, deps.Metrics, logger),
		ledgers:    deps.Ledgers,
		logger:     logger,
		updates:    make(chan struct{}, 1),
	}

	sessions.OnConnect(p.attach)
	p.records.OnChange(p.notify)
	p.submission.OnChange(p.notify)

	return p
}

// Start adopts an already-authorized account without prompting.
func (p *Portal) Start(ctx context.Context) bool {
	return p.sessions.CheckExistingSession(ctx)
}

func (p *Portal) Connect(ctx context.Context) error {
	err := p.sessions.RequestConnection(ctx)
	p.notify()
	return err
}

// Submit sends the pending text. The text is cleared once the ledger
// confirms it, unless it was edited while the transaction was mining.
func (p *Portal) Submit(ctx context.Context) (SubmissionResult, error) {
	p.mu.Lock()
	text := p.pending
	ledger := p.ledger
	p.mu.Unlock()

	result, err := p.submission.Submit(ctx, ledger, text)
	if result.Outcome == domain.SubmissionConfirmed {
		p.mu.Lock()
		if p.pending == text {
			p.pending = ""
		}
		p.mu.Unlock()
		p.notify()
	}

	return result, err
}

func (p *Portal) Session() domain.Session {
	return p.sessions.Session()
}

func (p *Portal) Records() []domain.Entry {
	return p.records.Records()
}

func (p *Portal) PendingText() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pending
}

func (p *Portal) SetPendingText(text string) {
	p.mu.Lock()
	p.pending = text
	p.mu.Unlock()
}

func (p *Portal) Submission() domain.SubmissionState {
	return p.submission.State()
}

func (p *Portal) PendingTx() (domain.PendingTx, bool) {
	return p.submission.PendingTx()
}

func (p *Portal) LastOutcome() domain.SubmissionState {
	return p.submission.LastOutcome()
}

// Updates signals state changes. Signals coalesce; readers re-read state.
func (p *Portal) Updates() <-chan struct{} {
	return p.updates
}

// Close releases the record subscription and the ledger handle.
func (p *Portal) Close() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	ledger := p.ledger
	p.ledger = nil
	p.mu.Unlock()

	p.records.Stop()
	if ledger != nil {
		ledger.Close()
	}
	p.logger.Debug("portal closed")
}

// attach rebuilds the ledger handle for account and restarts record sync.
func (p *Portal) attach(ctx context.Context, account domain.Address) {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	if p.closed || (p.ledger != nil && p.signer.Key() == account.Key()) {
		p.mu.Unlock()
		return
	}
	previous := p.ledger
	p.ledger = nil
	p.mu.Unlock()

	p.records.Stop()
	if previous != nil {
		previous.Close()
	}

	if p.ledgers == nil {
		p.logger.Warn("no ledger configured")
		return
	}

	ledger, err := p.ledgers.Open(ctx, account)
	if err != nil {
		p.logger.Warn("open ledger", "account", account, "err", err)
		p.notify()
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		ledger.Close()
		return
	}
	p.ledger = ledger
	p.signer = account
	p.mu.Unlock()

	if err := p.records.Start(ctx, ledger); err != nil {
		p.logger.Warn("start record sync", "err", err)
	}
	p.notify()
}

func (p *Portal) notify() {
	select {
	case p.updates <- struct{}{}:
	default:
	}
}
