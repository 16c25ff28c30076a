package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWorkflow(metrics *recordingMetrics) *SubmissionWorkflow {
	return NewSubmissionWorkflow(
		domain.SubmitOptions{GasLimit: 300_000},
		time.Minute,
		fixedClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)},
		metrics,
		nil,
	)
}

func TestSubmissionWorkflowConfirmed(t *testing.T) {
	t.Parallel()

	ledger := mocks.NewMockLedger(t)
	ledger.EXPECT().ReadCount(mockAnyContext()).Return(uint64(1), nil).Once()
	ledger.EXPECT().Submit(mockAnyContext(), "hello", domain.SubmitOptions{GasLimit: 300_000}).Return(domain.PendingTx{Hash: "0x01"}, nil).Once()
	ledger.EXPECT().AwaitConfirmation(mockAnyContext(), domain.PendingTx{Hash: "0x01"}).Return(domain.Receipt{Hash: "0x01", BlockNumber: 7, Succeeded: true}, nil).Once()
	ledger.EXPECT().ReadCount(mockAnyContext()).Return(uint64(2), nil).Once()
	metrics := newRecordingMetrics()

	workflow := newTestWorkflow(metrics)
	result, err := workflow.Submit(context.Background(), ledger, "hello")

	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionConfirmed, result.Outcome)
	assert.Equal(t, uint64(7), result.Receipt.BlockNumber)
	assert.Equal(t, domain.SubmissionIdle, workflow.State())
	assert.Equal(t, domain.SubmissionConfirmed, workflow.LastOutcome())
	assert.Equal(t, []domain.SubmissionState{domain.SubmissionConfirmed}, metrics.outcomes)
}

func TestSubmissionWorkflowExposesPendingTxWhileMining(t *testing.T) {
	t.Parallel()

	workflow := newTestWorkflow(nil)
	changes := 0
	workflow.OnChange(func() { changes++ })

	var mining domain.PendingTx
	var minedOK bool
	ledger := mocks.NewMockLedger(t)
	ledger.EXPECT().ReadCount(mockAnyContext()).Return(uint64(1), nil)
	ledger.EXPECT().Submit(mockAnyContext(), "hello", mock.Anything).Return(domain.PendingTx{Hash: "0x02"}, nil).Once()
	ledger.EXPECT().AwaitConfirmation(mockAnyContext(), domain.PendingTx{Hash: "0x02"}).
		RunAndReturn(func(context.Context, domain.PendingTx) (domain.Receipt, error) {
			mining, minedOK = workflow.PendingTx()
			return domain.Receipt{Hash: "0x02", BlockNumber: 9, Succeeded: true}, nil
		}).Once()

	_, ok := workflow.PendingTx()
	assert.False(t, ok)

	_, err := workflow.Submit(context.Background(), ledger, "hello")
	require.NoError(t, err)

	assert.True(t, minedOK)
	assert.Equal(t, domain.PendingTx{Hash: "0x02"}, mining)
	assert.Equal(t, 3, changes, "begin, accepted and finish each signal")
	_, ok = workflow.PendingTx()
	assert.False(t, ok, "cleared once the attempt ends")
}

func TestSubmissionWorkflowEmptyTextIsNoop(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\n\t"} {
		ledger := mocks.NewMockLedger(t)
		metrics := newRecordingMetrics()
		workflow := newTestWorkflow(metrics)

		result, err := workflow.Submit(context.Background(), ledger, text)

		require.NoError(t, err)
		assert.Equal(t, domain.SubmissionIdle, result.Outcome)
		assert.Equal(t, domain.SubmissionIdle, workflow.LastOutcome())
		assert.Empty(t, metrics.outcomes)
		ledger.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestSubmissionWorkflowWithoutLedger(t *testing.T) {
	t.Parallel()

	workflow := newTestWorkflow(newRecordingMetrics())

	_, err := workflow.Submit(context.Background(), nil, "hello")

	require.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Equal(t, domain.SubmissionIdle, workflow.LastOutcome())
}

func TestSubmissionWorkflowFailures(t *testing.T) {
	t.Parallel()

	reverted := errors.New("execution reverted")

	tests := []struct {
		name      string
		setup     func(ledger *mocks.MockLedger)
		wantErrIs error
	}{
		{
			name: "user rejects the transaction prompt",
			setup: func(ledger *mocks.MockLedger) {
				ledger.EXPECT().Submit(mockAnyContext(), "hello", mock.Anything).Return(domain.PendingTx{}, domain.ErrUserRejected)
			},
			wantErrIs: domain.ErrUserRejected,
		},
		{
			name: "send fails",
			setup: func(ledger *mocks.MockLedger) {
				ledger.EXPECT().Submit(mockAnyContext(), "hello", mock.Anything).Return(domain.PendingTx{}, reverted)
			},
			wantErrIs: domain.ErrTransactionFailed,
		},
		{
			name: "confirmation reports failure",
			setup: func(ledger *mocks.MockLedger) {
				ledger.EXPECT().Submit(mockAnyContext(), "hello", mock.Anything).Return(domain.PendingTx{Hash: "0x02"}, nil)
				ledger.EXPECT().AwaitConfirmation(mockAnyContext(), domain.PendingTx{Hash: "0x02"}).Return(domain.Receipt{}, domain.ErrTransactionFailed)
			},
			wantErrIs: domain.ErrTransactionFailed,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ledger := mocks.NewMockLedger(t)
			ledger.EXPECT().ReadCount(mockAnyContext()).Return(uint64(1), nil).Maybe()
			tc.setup(ledger)
			metrics := newRecordingMetrics()
			workflow := newTestWorkflow(metrics)

			result, err := workflow.Submit(context.Background(), ledger, "hello")

			require.ErrorIs(t, err, tc.wantErrIs)
			assert.Equal(t, domain.SubmissionFailed, result.Outcome)
			assert.Equal(t, domain.SubmissionIdle, workflow.State())
			assert.Equal(t, domain.SubmissionFailed, workflow.LastOutcome())
			assert.Equal(t, []domain.SubmissionState{domain.SubmissionFailed}, metrics.outcomes)
		})
	}
}

func TestSubmissionWorkflowCountFailureDoesNotBlockWrite(t *testing.T) {
	t.Parallel()

	ledger := mocks.NewMockLedger(t)
	ledger.EXPECT().ReadCount(mockAnyContext()).Return(uint64(0), errors.New("count unavailable"))
	ledger.EXPECT().Submit(mockAnyContext(), "hello", mock.Anything).Return(domain.PendingTx{Hash: "0x03"}, nil)
	ledger.EXPECT().AwaitConfirmation(mockAnyContext(), mock.Anything).Return(domain.Receipt{Hash: "0x03", Succeeded: true}, nil)

	result, err := newTestWorkflow(newRecordingMetrics()).Submit(context.Background(), ledger, "hello")

	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionConfirmed, result.Outcome)
}

func TestSubmissionWorkflowAppliesConfirmTimeout(t *testing.T) {
	t.Parallel()

	ledger := mocks.NewMockLedger(t)
	ledger.EXPECT().ReadCount(mockAnyContext()).Return(uint64(0), nil).Maybe()
	ledger.EXPECT().Submit(mockAnyContext(), "hello", mock.Anything).Return(domain.PendingTx{Hash: "0x04"}, nil)
	ledger.EXPECT().AwaitConfirmation(mockAnyContext(), mock.Anything).RunAndReturn(func(ctx context.Context, _ domain.PendingTx) (domain.Receipt, error) {
		<-ctx.Done()
		return domain.Receipt{}, ctx.Err()
	})

	workflow := NewSubmissionWorkflow(domain.SubmitOptions{}, 10*time.Millisecond, nil, nil, nil)
	_, err := workflow.Submit(context.Background(), ledger, "hello")

	require.ErrorIs(t, err, domain.ErrTransactionFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmissionWorkflowRejectsConcurrentSubmit(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	entered := make(chan struct{})
	ledger := mocks.NewMockLedger(t)
	ledger.EXPECT().ReadCount(mockAnyContext()).Return(uint64(0), nil).Maybe()
	ledger.EXPECT().Submit(mockAnyContext(), "first", mock.Anything).RunAndReturn(func(context.Context, string, domain.SubmitOptions) (domain.PendingTx, error) {
		close(entered)
		<-release
		return domain.PendingTx{Hash: "0x05"}, nil
	}).Once()
	ledger.EXPECT().AwaitConfirmation(mockAnyContext(), mock.Anything).Return(domain.Receipt{Succeeded: true}, nil)

	workflow := newTestWorkflow(newRecordingMetrics())
	done := make(chan error, 1)
	go func() {
		_, err := workflow.Submit(context.Background(), ledger, "first")
		done <- err
	}()

	<-entered
	assert.Equal(t, domain.SubmissionSubmitting, workflow.State())
	_, err := workflow.Submit(context.Background(), ledger, "second")
	require.ErrorIs(t, err, domain.ErrSubmissionInProgress)

	close(release)
	require.NoError(t, <-done)
}

func TestNewSubmissionWorkflowDefaultsGasLimit(t *testing.T) {
	t.Parallel()

	workflow := NewSubmissionWorkflow(domain.SubmitOptions{}, 0, nil, nil, nil)

	assert.Equal(t, domain.DefaultGasLimit, workflow.opts.GasLimit)
}
