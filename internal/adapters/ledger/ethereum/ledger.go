package ethereum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"
)

const (
	codeUserRejected = 4001

	defaultPollInterval       = 2 * time.Second
	defaultResubscribeBackoff = 30 * time.Second
)

// backend is the slice of ethclient.Client the ledger reads through.
type backend interface {
	CallContract(ctx context.Context, msg geth.CallMsg, blockNumber *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	SubscribeFilterLogs(ctx context.Context, query geth.FilterQuery, ch chan<- types.Log) (geth.Subscription, error)
	Close()
}

// transactor reaches the wallet agent that signs eth_sendTransaction.
type transactor interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
	Close()
}

type ledgerOptions struct {
	pollInterval       time.Duration
	resubscribeBackoff time.Duration
	logger             *slog.Logger
}

// Ledger is a contract handle bound to one signer. A handle without a
// transactor is read-only.
type Ledger struct {
	backend    backend
	transactor transactor
	contract   common.Address
	signer     domain.Address
	abi        abi.ABI
	opts       ledgerOptions
	closeOnce  sync.Once
}

var _ ports.Ledger = (*Ledger)(nil)

func newLedger(b backend, t transactor, contract common.Address, signer domain.Address, opts ledgerOptions) (*Ledger, error) {
	parsed, err := contractABI()
	if err != nil {
		return nil, err
	}
	if opts.pollInterval <= 0 {
		opts.pollInterval = defaultPollInterval
	}
	if opts.resubscribeBackoff <= 0 {
		opts.resubscribeBackoff = defaultResubscribeBackoff
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}

	return &Ledger{
		backend:    b,
		transactor: t,
		contract:   contract,
		signer:     signer.Normalize(),
		abi:        parsed,
		opts:       opts,
	}, nil
}

func (l *Ledger) ReadAll(ctx context.Context) ([]domain.Record, error) {
	data, err := l.call(ctx, methodReadAll)
	if err != nil {
		return nil, err
	}

	return decodeWaves(l.abi, data)
}

func (l *Ledger) ReadCount(ctx context.Context) (uint64, error) {
	data, err := l.call(ctx, methodReadCount)
	if err != nil {
		return 0, err
	}

	return decodeCount(l.abi, data)
}

func (l *Ledger) call(ctx context.Context, method string) ([]byte, error) {
	input, err := l.abi.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	msg := geth.CallMsg{To: &l.contract, Data: input}
	if !l.signer.IsZero() {
		msg.From = common.HexToAddress(string(l.signer))
	}

	data, err := l.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	return data, nil
}

type sendTxArgs struct {
	From common.Address `json:"from"`
	To   common.Address `json:"to"`
	Gas  hexutil.Uint64 `json:"gas"`
	Data hexutil.Bytes  `json:"data"`
}

// Submit asks the wallet agent to sign and broadcast a wave transaction.
func (l *Ledger) Submit(ctx context.Context, message string, opts domain.SubmitOptions) (domain.PendingTx, error) {
	if l.transactor == nil || l.signer.IsZero() {
		return domain.PendingTx{}, domain.ErrNotConnected
	}

	input, err := l.abi.Pack(methodSubmit, message)
	if err != nil {
		return domain.PendingTx{}, fmt.Errorf("pack %s: %w", methodSubmit, err)
	}

	gas := opts.GasLimit
	if gas == 0 {
		gas = domain.DefaultGasLimit
	}

	args := sendTxArgs{
		From: common.HexToAddress(string(l.signer)),
		To:   l.contract,
		Gas:  hexutil.Uint64(gas),
		Data: input,
	}

	var hash common.Hash
	if err := l.transactor.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return domain.PendingTx{}, classifySendError(err)
	}

	return domain.PendingTx{Hash: hash.Hex()}, nil
}

func classifySendError(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeUserRejected {
		return fmt.Errorf("%w: %s", domain.ErrUserRejected, rpcErr.Error())
	}

	return fmt.Errorf("%w: send transaction: %w", domain.ErrTransactionFailed, err)
}

// AwaitConfirmation polls for the receipt until it is mined or ctx ends.
func (l *Ledger) AwaitConfirmation(ctx context.Context, tx domain.PendingTx) (domain.Receipt, error) {
	hash := common.HexToHash(tx.Hash)
	limiter := rate.NewLimiter(rate.Every(l.opts.pollInterval), 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return domain.Receipt{}, fmt.Errorf("%w: await %s: %w", domain.ErrTransactionFailed, tx.Hash, err)
		}

		receipt, err := l.backend.TransactionReceipt(ctx, hash)
		if errors.Is(err, geth.NotFound) {
			l.opts.logger.Debug("receipt not found yet", "tx_hash", tx.Hash)
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return domain.Receipt{}, fmt.Errorf("%w: fetch receipt %s: %w", domain.ErrTransactionFailed, tx.Hash, err)
		}

		result := domain.Receipt{
			Hash:      tx.Hash,
			GasUsed:   receipt.GasUsed,
			Succeeded: receipt.Status == types.ReceiptStatusSuccessful,
		}
		if receipt.BlockNumber != nil && receipt.BlockNumber.IsUint64() {
			result.BlockNumber = receipt.BlockNumber.Uint64()
		}
		if !result.Succeeded {
			return result, fmt.Errorf("%w: %s reverted in block %d", domain.ErrTransactionFailed, tx.Hash, result.BlockNumber)
		}

		return result, nil
	}
}

func (l *Ledger) Close() {
	l.closeOnce.Do(func() {
		if l.transactor != nil {
			l.transactor.Close()
		}
		l.backend.Close()
	})
}
