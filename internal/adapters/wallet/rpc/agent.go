package rpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

const codeUserRejected = 4001

type caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
	Close()
}

type dialFunc func(ctx context.Context, rawURL string) (*gethrpc.Client, error)

// Agent is a wallet agent reached over JSON-RPC. The connection is dialed
// lazily and reused.
type Agent struct {
	url           string
	dial          dialFunc
	requestMethod string

	mu     sync.Mutex
	client caller
}

var _ ports.WalletAgent = (*Agent)(nil)

func NewAgent(url string) *Agent {
	return &Agent{url: strings.TrimSpace(url), dial: gethrpc.DialContext, requestMethod: "eth_requestAccounts"}
}

// NewNodeAgent treats a ledger node as the wallet. Nodes do not prompt, so
// requesting accounts lists the node's unlocked accounts.
func NewNodeAgent(url string) *Agent {
	agent := NewAgent(url)
	agent.requestMethod = "eth_accounts"
	return agent
}

func newAgentWithClient(client caller) *Agent {
	return &Agent{url: "inproc", client: client, requestMethod: "eth_requestAccounts"}
}

func (a *Agent) Accounts(ctx context.Context) ([]domain.Address, error) {
	return a.accounts(ctx, "eth_accounts")
}

func (a *Agent) RequestAccounts(ctx context.Context) ([]domain.Address, error) {
	return a.accounts(ctx, a.requestMethod)
}

func (a *Agent) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		a.client.Close()
		a.client = nil
	}
}

func (a *Agent) accounts(ctx context.Context, method string) ([]domain.Address, error) {
	client, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}

	var raw []string
	if err := client.CallContext(ctx, &raw, method); err != nil {
		return nil, classify(method, err)
	}

	accounts := make([]domain.Address, 0, len(raw))
	for _, entry := range raw {
		address := domain.Address(entry).Normalize()
		if address.IsZero() {
			continue
		}
		accounts = append(accounts, address)
	}

	return accounts, nil
}

func (a *Agent) connect(ctx context.Context) (caller, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}
	if a.url == "" {
		return nil, fmt.Errorf("%w: no wallet rpc url configured", domain.ErrWalletUnavailable)
	}

	client, err := a.dial(ctx, a.url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", domain.ErrWalletUnavailable, a.url, err)
	}
	a.client = client

	return client, nil
}

func classify(method string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		if rpcErr.ErrorCode() == codeUserRejected {
			return fmt.Errorf("%w: %s", domain.ErrUserRejected, rpcErr.Error())
		}
		return fmt.Errorf("%s: %w", method, err)
	}

	// Anything below the JSON-RPC layer means the agent itself is gone.
	return fmt.Errorf("%w: %s: %w", domain.ErrWalletUnavailable, method, err)
}
