package ethereum

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testContract = common.HexToAddress("0x3a038C3142Ae572273dfC245DAb0E1881D4D3d08")
	testSender   = common.HexToAddress("0x00000000000000000000000000000000000000aB")
)

type fakeBackend struct {
	mu         sync.Mutex
	calls      map[string][]byte
	callErr    error
	receipts   []*types.Receipt
	receiptErr error
	logs       []types.Log
	batches    [][]types.Log
	drops      []error
	subErrs    []error
	subscribes int
	lastQuery  geth.FilterQuery
	closed     int
}

func (b *fakeBackend) CallContract(_ context.Context, msg geth.CallMsg, _ *big.Int) ([]byte, error) {
	if b.callErr != nil {
		return nil, b.callErr
	}
	parsed, _ := contractABI()
	for name, method := range parsed.Methods {
		if len(msg.Data) >= 4 && string(msg.Data[:4]) == string(method.ID) {
			return b.calls[name], nil
		}
	}
	return nil, errors.New("unknown selector")
}

// TransactionReceipt replays receipts in order, reporting NotFound for nil
// entries.
func (b *fakeBackend) TransactionReceipt(_ context.Context, _ common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.receiptErr != nil {
		return nil, b.receiptErr
	}
	if len(b.receipts) == 0 {
		return nil, geth.NotFound
	}
	next := b.receipts[0]
	b.receipts = b.receipts[1:]
	if next == nil {
		return nil, geth.NotFound
	}
	return next, nil
}

func (b *fakeBackend) SubscribeFilterLogs(_ context.Context, query geth.FilterQuery, ch chan<- types.Log) (geth.Subscription, error) {
	b.mu.Lock()
	b.subscribes++
	b.lastQuery = query
	var subErr error
	if len(b.subErrs) > 0 {
		subErr = b.subErrs[0]
		b.subErrs = b.subErrs[1:]
	}
	logs := b.logs
	if len(b.batches) > 0 {
		logs = b.batches[0]
		b.batches = b.batches[1:]
	}
	var drop error
	if subErr == nil && len(b.drops) > 0 {
		drop = b.drops[0]
		b.drops = b.drops[1:]
	}
	b.mu.Unlock()

	if subErr != nil {
		return nil, subErr
	}

	// A non-nil drop ends the stream after its logs, like a closed socket.
	return event.NewSubscription(func(quit <-chan struct{}) error {
		for _, log := range logs {
			select {
			case ch <- log:
			case <-quit:
				return nil
			}
		}
		if drop != nil {
			return drop
		}
		<-quit
		return nil
	}), nil
}

func (b *fakeBackend) Subscribes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subscribes
}

func (b *fakeBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
}

type fakeTransactor struct {
	method string
	args   []any
	hash   common.Hash
	err    error
	closed int
}

func (t *fakeTransactor) CallContext(_ context.Context, result any, method string, args ...any) error {
	t.method = method
	t.args = args
	if t.err != nil {
		return t.err
	}
	*result.(*common.Hash) = t.hash
	return nil
}

func (t *fakeTransactor) Close() {
	t.closed++
}

type rpcError struct {
	code int
	msg  string
}

func (e rpcError) Error() string  { return e.msg }
func (e rpcError) ErrorCode() int { return e.code }

func packOutputs(t *testing.T, method string, values ...any) []byte {
	t.Helper()

	parsed, err := contractABI()
	require.NoError(t, err)
	data, err := parsed.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return data
}

func newWaveLog(t *testing.T, sender common.Address, timestamp int64, message string) types.Log {
	t.Helper()

	parsed, err := contractABI()
	require.NoError(t, err)
	ev := parsed.Events[domain.EventNewRecord]
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(timestamp), message)
	require.NoError(t, err)

	return types.Log{
		Address: testContract,
		Topics:  []common.Hash{ev.ID, common.BytesToHash(sender.Bytes())},
		Data:    data,
	}
}

func newTestLedger(t *testing.T, b backend, tr transactor, signer domain.Address) *Ledger {
	t.Helper()

	ledger, err := newLedger(b, tr, testContract, signer, ledgerOptions{pollInterval: time.Millisecond, resubscribeBackoff: time.Millisecond})
	require.NoError(t, err)
	return ledger
}

func TestLedgerReadAllDecodesWaves(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{calls: map[string][]byte{
		methodReadAll: packOutputs(t, methodReadAll, []wave{
			{Waver: testSender, Message: "hi", Timestamp: big.NewInt(1_700_000_000)},
			{Waver: testSender, Message: "again", Timestamp: big.NewInt(1_700_000_500)},
		}),
	}}
	ledger := newTestLedger(t, b, nil, "")

	records, err := ledger.ReadAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Record{
		{Sender: domain.Address(testSender.Hex()), SubmittedAt: 1_700_000_000, Message: "hi"},
		{Sender: domain.Address(testSender.Hex()), SubmittedAt: 1_700_000_500, Message: "again"},
	}, records)
}

func TestLedgerReadAllEmptyHistory(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{calls: map[string][]byte{methodReadAll: packOutputs(t, methodReadAll, []wave{})}}
	ledger := newTestLedger(t, b, nil, "")

	records, err := ledger.ReadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedgerReadCount(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{calls: map[string][]byte{methodReadCount: packOutputs(t, methodReadCount, big.NewInt(42))}}
	ledger := newTestLedger(t, b, nil, "")

	count, err := ledger.ReadCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, uint64(42), count)
}

func TestLedgerReadFailureIsWrapped(t *testing.T) {
	t.Parallel()

	nodeErr := errors.New("connection refused")
	ledger := newTestLedger(t, &fakeBackend{callErr: nodeErr}, nil, "")

	_, err := ledger.ReadAll(context.Background())
	require.ErrorIs(t, err, nodeErr)
	assert.Contains(t, err.Error(), methodReadAll)

	_, err = ledger.ReadCount(context.Background())
	require.ErrorIs(t, err, nodeErr)
}

func TestLedgerSubmitSendsTransaction(t *testing.T) {
	t.Parallel()

	tr := &fakeTransactor{hash: common.HexToHash("0xaa")}
	ledger := newTestLedger(t, &fakeBackend{}, tr, domain.Address(testSender.Hex()))

	tx, err := ledger.Submit(context.Background(), "hello", domain.SubmitOptions{GasLimit: 300_000})

	require.NoError(t, err)
	assert.Equal(t, common.HexToHash("0xaa").Hex(), tx.Hash)
	assert.Equal(t, "eth_sendTransaction", tr.method)
	require.Len(t, tr.args, 1)

	args, ok := tr.args[0].(sendTxArgs)
	require.True(t, ok)
	assert.Equal(t, testSender, args.From)
	assert.Equal(t, testContract, args.To)
	assert.Equal(t, hexutil.Uint64(300_000), args.Gas)

	parsed, err := contractABI()
	require.NoError(t, err)
	method, err := parsed.MethodById(args.Data[:4])
	require.NoError(t, err)
	assert.Equal(t, methodSubmit, method.Name)
	values, err := method.Inputs.Unpack(args.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, []any{"hello"}, values)
}

func TestLedgerSubmitDefaultsGasLimit(t *testing.T) {
	t.Parallel()

	tr := &fakeTransactor{}
	ledger := newTestLedger(t, &fakeBackend{}, tr, domain.Address(testSender.Hex()))

	_, err := ledger.Submit(context.Background(), "hello", domain.SubmitOptions{})

	require.NoError(t, err)
	assert.Equal(t, hexutil.Uint64(domain.DefaultGasLimit), tr.args[0].(sendTxArgs).Gas)
}

func TestLedgerSubmitErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tr       *fakeTransactor
		signer   domain.Address
		expected error
	}{
		{name: "read only handle", tr: nil, signer: domain.Address(testSender.Hex()), expected: domain.ErrNotConnected},
		{name: "empty signer", tr: &fakeTransactor{}, signer: "", expected: domain.ErrNotConnected},
		{name: "user rejects", tr: &fakeTransactor{err: rpcError{code: 4001, msg: "User rejected the request."}}, signer: domain.Address(testSender.Hex()), expected: domain.ErrUserRejected},
		{name: "wallet fails", tr: &fakeTransactor{err: rpcError{code: -32000, msg: "insufficient funds"}}, signer: domain.Address(testSender.Hex()), expected: domain.ErrTransactionFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var tr transactor
			if tc.tr != nil {
				tr = tc.tr
			}
			ledger := newTestLedger(t, &fakeBackend{}, tr, tc.signer)

			_, err := ledger.Submit(context.Background(), "hello", domain.SubmitOptions{GasLimit: 1})
			require.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestLedgerAwaitConfirmationPollsUntilMined(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{receipts: []*types.Receipt{
		nil,
		nil,
		{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(12), GasUsed: 21_000},
	}}
	ledger := newTestLedger(t, b, nil, "")

	receipt, err := ledger.AwaitConfirmation(context.Background(), domain.PendingTx{Hash: "0xaa"})

	require.NoError(t, err)
	assert.Equal(t, domain.Receipt{Hash: "0xaa", BlockNumber: 12, GasUsed: 21_000, Succeeded: true}, receipt)
}

func TestLedgerAwaitConfirmationReverted(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{receipts: []*types.Receipt{{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(3)}}}
	ledger := newTestLedger(t, b, nil, "")

	receipt, err := ledger.AwaitConfirmation(context.Background(), domain.PendingTx{Hash: "0xaa"})

	require.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.False(t, receipt.Succeeded)
	assert.Equal(t, uint64(3), receipt.BlockNumber)
}

func TestLedgerAwaitConfirmationRPCFailure(t *testing.T) {
	t.Parallel()

	nodeErr := errors.New("node went away")
	ledger := newTestLedger(t, &fakeBackend{receiptErr: nodeErr}, nil, "")

	_, err := ledger.AwaitConfirmation(context.Background(), domain.PendingTx{Hash: "0xaa"})

	require.ErrorIs(t, err, domain.ErrTransactionFailed)
	require.ErrorIs(t, err, nodeErr)
}

func TestLedgerAwaitConfirmationContextExpiry(t *testing.T) {
	t.Parallel()

	ledger := newTestLedger(t, &fakeBackend{}, nil, "")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ledger.AwaitConfirmation(ctx, domain.PendingTx{Hash: "0xaa"})

	require.ErrorIs(t, err, domain.ErrTransactionFailed)
}

func TestLedgerSubscribeDeliversDecodedEvents(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{logs: []types.Log{
		newWaveLog(t, testSender, 1_700_000_100, "hello"),
		{Topics: []common.Hash{{}}},
		func() types.Log {
			removed := newWaveLog(t, testSender, 1_700_000_200, "reorged")
			removed.Removed = true
			return removed
		}(),
		newWaveLog(t, testSender, 1_700_000_300, "again"),
	}}
	ledger := newTestLedger(t, b, nil, "")

	received := make(chan domain.Record, 4)
	sub, err := ledger.Subscribe(context.Background(), domain.EventNewRecord, func(record domain.Record) {
		received <- record
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	parsed, err := contractABI()
	require.NoError(t, err)
	assert.Equal(t, []common.Address{testContract}, b.lastQuery.Addresses)
	assert.Equal(t, [][]common.Hash{{parsed.Events[domain.EventNewRecord].ID}}, b.lastQuery.Topics)

	for _, expected := range []domain.Record{
		{Sender: domain.Address(testSender.Hex()), SubmittedAt: 1_700_000_100, Message: "hello"},
		{Sender: domain.Address(testSender.Hex()), SubmittedAt: 1_700_000_300, Message: "again"},
	} {
		select {
		case record := <-received:
			assert.Equal(t, expected, record)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", expected.Message)
		}
	}
}

func TestLedgerSubscribeReportsResumeAfterDrop(t *testing.T) {
	t.Parallel()

	dropErr := errors.New("websocket dropped")
	b := &fakeBackend{
		batches: [][]types.Log{
			{newWaveLog(t, testSender, 1_700_000_100, "before drop")},
			{newWaveLog(t, testSender, 1_700_000_300, "after drop")},
		},
		drops: []error{dropErr, nil},
	}
	ledger := newTestLedger(t, b, nil, "")

	received := make(chan domain.Record, 4)
	sub, err := ledger.Subscribe(context.Background(), domain.EventNewRecord, func(record domain.Record) {
		received <- record
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	select {
	case cause := <-sub.Resumed():
		require.ErrorIs(t, cause, dropErr)
	case <-time.After(time.Second):
		t.Fatal("resubscribe was not reported")
	}

	var messages []string
	for len(messages) < 2 {
		select {
		case record := <-received:
			messages = append(messages, record.Message)
		case <-time.After(time.Second):
			t.Fatalf("timed out after %v", messages)
		}
	}
	assert.Equal(t, []string{"before drop", "after drop"}, messages)
	assert.Equal(t, 2, b.Subscribes())

	select {
	case err := <-sub.Err():
		t.Fatalf("healed drop surfaced on Err: %v", err)
	default:
	}
}

func TestLedgerSubscribeUnknownEvent(t *testing.T) {
	t.Parallel()

	ledger := newTestLedger(t, &fakeBackend{}, nil, "")

	_, err := ledger.Subscribe(context.Background(), "Transfer", func(domain.Record) {})

	require.ErrorIs(t, err, domain.ErrUnknownEvent)
}

func TestLedgerSubscribeReportsInitialFailure(t *testing.T) {
	t.Parallel()

	nodeErr := errors.New("notifications not supported")
	ledger := newTestLedger(t, &fakeBackend{subErrs: []error{nodeErr}}, nil, "")

	_, err := ledger.Subscribe(context.Background(), domain.EventNewRecord, func(domain.Record) {})

	require.ErrorIs(t, err, nodeErr)
}

func TestLedgerUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	ledger := newTestLedger(t, &fakeBackend{}, nil, "")
	sub, err := ledger.Subscribe(context.Background(), domain.EventNewRecord, func(domain.Record) {})
	require.NoError(t, err)

	sub.Unsubscribe()
	sub.Unsubscribe()

	select {
	case _, open := <-sub.Err():
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("error channel not closed after unsubscribe")
	}
}

func TestLedgerCloseReleasesTransportsOnce(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{}
	tr := &fakeTransactor{}
	ledger := newTestLedger(t, b, tr, domain.Address(testSender.Hex()))

	ledger.Close()
	ledger.Close()

	assert.Equal(t, 1, b.closed)
	assert.Equal(t, 1, tr.closed)
}
