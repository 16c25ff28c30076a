package ethereum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

type Config struct {
	NodeURL         string
	WalletURL       string
	FallbackToNode  bool
	ContractAddress string
	PollInterval    time.Duration
	Logger          *slog.Logger
}

type dialFunc func(ctx context.Context, rawURL string) (*rpc.Client, error)

// Factory opens a fresh Ledger per signer.
type Factory struct {
	cfg      Config
	contract common.Address
	dial     dialFunc
}

var _ ports.LedgerFactory = (*Factory)(nil)

var errEmptyNodeURL = errors.New("ledger rpc url is empty")

func NewFactory(cfg Config) (*Factory, error) {
	return newFactory(cfg, rpc.DialContext)
}

func newFactory(cfg Config, dial dialFunc) (*Factory, error) {
	if strings.TrimSpace(cfg.NodeURL) == "" {
		return nil, errEmptyNodeURL
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}
	if _, err := contractABI(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Factory{cfg: cfg, contract: common.HexToAddress(cfg.ContractAddress), dial: dial}, nil
}

// Open dials the ledger node and, for a non-empty signer, the wallet
// transport used to sign submissions.
func (f *Factory) Open(ctx context.Context, signer domain.Address) (ports.Ledger, error) {
	node, err := f.dial(ctx, f.cfg.NodeURL)
	if err != nil {
		return nil, fmt.Errorf("dial ledger node %s: %w", f.cfg.NodeURL, err)
	}

	var signing transactor
	signer = signer.Normalize()
	if !signer.IsZero() {
		signing, err = f.openTransactor(ctx, node)
		if err != nil {
			node.Close()
			return nil, err
		}
	}

	ledger, err := newLedger(ethclient.NewClient(node), signing, f.contract, signer, ledgerOptions{
		pollInterval: f.cfg.PollInterval,
		logger:       f.cfg.Logger.With("account", string(signer)),
	})
	if err != nil {
		node.Close()
		if signing != nil {
			signing.Close()
		}
		return nil, err
	}

	return ledger, nil
}

func (f *Factory) openTransactor(ctx context.Context, node *rpc.Client) (transactor, error) {
	if strings.TrimSpace(f.cfg.WalletURL) != "" {
		wallet, err := f.dial(ctx, f.cfg.WalletURL)
		if err != nil {
			return nil, fmt.Errorf("%w: dial wallet %s: %w", domain.ErrWalletUnavailable, f.cfg.WalletURL, err)
		}
		return wallet, nil
	}
	if f.cfg.FallbackToNode {
		return sharedTransactor{node}, nil
	}

	return nil, nil
}

// sharedTransactor signs through the node connection, which the backend
// already owns and closes.
type sharedTransactor struct {
	client *rpc.Client
}

func (t sharedTransactor) CallContext(ctx context.Context, result any, method string, args ...any) error {
	return t.client.CallContext(ctx, result, method, args...)
}

func (sharedTransactor) Close() {}
