package ports

import (
	"context"

	"github.com/bnema/waveportal-cli/internal/domain"
)

// WalletAgent is the external component that authorizes accounts and signs
// on the user's behalf. Implementations return domain.ErrWalletUnavailable
// when no agent can be reached and domain.ErrUserRejected when the user
// declines a prompt.
type WalletAgent interface {
	// Accounts lists already-authorized accounts without prompting.
	Accounts(ctx context.Context) ([]domain.Address, error)
	// RequestAccounts runs the interactive authorization flow.
	RequestAccounts(ctx context.Context) ([]domain.Address, error)
}
