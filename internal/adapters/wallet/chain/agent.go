package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
)

// Agent asks the primary wallet agent first and falls back to the second
// one only when the primary cannot be reached.
type Agent struct {
	primary  ports.WalletAgent
	fallback ports.WalletAgent
}

var _ ports.WalletAgent = (*Agent)(nil)

var (
	errNilPrimaryAgent  = errors.New("primary wallet agent is nil")
	errNilFallbackAgent = errors.New("fallback wallet agent is nil")
)

func NewAgent(primary ports.WalletAgent, fallback ports.WalletAgent) (*Agent, error) {
	if primary == nil {
		return nil, errNilPrimaryAgent
	}
	if fallback == nil {
		return nil, errNilFallbackAgent
	}

	return &Agent{primary: primary, fallback: fallback}, nil
}

func (a *Agent) Accounts(ctx context.Context) ([]domain.Address, error) {
	accounts, err := a.primary.Accounts(ctx)
	if !shouldFallback(err) {
		return accounts, err
	}

	fallbackAccounts, fallbackErr := a.fallback.Accounts(ctx)
	if fallbackErr == nil {
		return fallbackAccounts, nil
	}

	return nil, fmt.Errorf("primary agent accounts failed: %w; fallback agent accounts failed: %w", err, fallbackErr)
}

func (a *Agent) RequestAccounts(ctx context.Context) ([]domain.Address, error) {
	accounts, err := a.primary.RequestAccounts(ctx)
	if !shouldFallback(err) {
		return accounts, err
	}

	fallbackAccounts, fallbackErr := a.fallback.RequestAccounts(ctx)
	if fallbackErr == nil {
		return fallbackAccounts, nil
	}

	return nil, fmt.Errorf("primary agent request failed: %w; fallback agent request failed: %w", err, fallbackErr)
}

// A rejection is the user's answer and never retried elsewhere.
func shouldFallback(err error) bool {
	return err != nil && errors.Is(err, domain.ErrWalletUnavailable)
}

// Absent is the agent used when nothing is configured.
type Absent struct{}

var _ ports.WalletAgent = Absent{}

func (Absent) Accounts(context.Context) ([]domain.Address, error) {
	return nil, domain.ErrWalletUnavailable
}

func (Absent) RequestAccounts(context.Context) ([]domain.Address, error) {
	return nil, domain.ErrWalletUnavailable
}
