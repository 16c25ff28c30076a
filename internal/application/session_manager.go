package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	"github.com/google/uuid"
)

const NoticeWalletUnavailable = "No wallet agent found. Configure wallet.rpc_url to connect a wallet."

// ConnectHook runs after the session gains an account.
type ConnectHook func(ctx context.Context, account domain.Address)

type SessionManager struct {
	wallet   ports.WalletAgent
	notifier ports.Notifier
	logger   *slog.Logger

	mu        sync.RWMutex
	session   domain.Session
	onConnect ConnectHook
}

func NewSessionManager(wallet ports.WalletAgent, notifier ports.Notifier, logger *slog.Logger) *SessionManager {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &SessionManager{
		wallet:   wallet,
		notifier: notifier,
		logger:   loggerOrDiscard(logger),
		session:  domain.Session{ID: uuid.NewString()},
	}
}

func (m *SessionManager) OnConnect(hook ConnectHook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onConnect = hook
}

func (m *SessionManager) Session() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session
}

// CheckExistingSession adopts the first already-authorized account, if any.
// Failures are logged and never surfaced.
func (m *SessionManager) CheckExistingSession(ctx context.Context) bool {
	logger := m.logger.With("session_id", m.Session().ID)

	if m.wallet == nil {
		logger.Info("no wallet agent configured")
		return false
	}

	accounts, err := m.wallet.Accounts(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrWalletUnavailable) {
			logger.Info("wallet agent unavailable", "err", err)
		} else {
			logger.Warn("list authorized accounts", "err", err)
		}
		return false
	}

	account, ok := firstAccount(accounts)
	if !ok {
		logger.Info("no authorized account found")
		return false
	}

	logger.Info("found authorized account", "account", account)
	m.connect(ctx, account)

	return true
}

// RequestConnection runs the wallet's interactive authorization flow. A
// missing wallet agent produces a notice rather than an error.
func (m *SessionManager) RequestConnection(ctx context.Context) error {
	logger := m.logger.With("session_id", m.Session().ID)

	if m.wallet == nil {
		m.notifier.Notify(NoticeWalletUnavailable)
		return nil
	}

	accounts, err := m.wallet.RequestAccounts(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrWalletUnavailable) {
			logger.Info("wallet agent unavailable", "err", err)
			m.notifier.Notify(NoticeWalletUnavailable)
			return nil
		}

		logger.Warn("request wallet connection", "err", err)
		return fmt.Errorf("request wallet connection: %w", err)
	}

	account, ok := firstAccount(accounts)
	if !ok {
		logger.Warn("wallet returned no accounts")
		return fmt.Errorf("request wallet connection: %w", domain.ErrUserRejected)
	}

	logger.Info("connected", "account", account)
	m.connect(ctx, account)

	return nil
}

func (m *SessionManager) connect(ctx context.Context, account domain.Address) {
	m.mu.Lock()
	m.session.Account = account
	hook := m.onConnect
	m.mu.Unlock()

	if hook != nil {
		hook(ctx, account)
	}
}

func firstAccount(accounts []domain.Address) (domain.Address, bool) {
	for _, account := range accounts {
		if normalized := account.Normalize(); !normalized.IsZero() {
			return normalized, true
		}
	}

	return "", false
}
