package application

import (
	"sync"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fakeSubscription struct {
	mu           sync.Mutex
	errs         chan error
	resumed      chan error
	unsubscribed int
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{errs: make(chan error, 1), resumed: make(chan error, 1)}
}

func (s *fakeSubscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsubscribed == 0 {
		close(s.errs)
	}
	s.unsubscribed++
}

func (s *fakeSubscription) Err() <-chan error {
	return s.errs
}

func (s *fakeSubscription) Resumed() <-chan error {
	return s.resumed
}

// Resume simulates the stream coming back after a transport drop.
func (s *fakeSubscription) Resume(cause error) {
	s.resumed <- cause
}

func (s *fakeSubscription) Unsubscribed() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unsubscribed
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type recordingMetrics struct {
	mu       sync.Mutex
	appended map[string]int
	failures int
	outcomes []domain.SubmissionState
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{appended: map[string]int{}}
}

func (m *recordingMetrics) RecordsAppended(source ports.RecordSource, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended[string(source)] += n
}

func (m *recordingMetrics) Failures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures
}

func (m *recordingMetrics) SyncFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *recordingMetrics) SubmissionFinished(outcome domain.SubmissionState, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

var sampleRecord = domain.Record{Sender: "0xabc", SubmittedAt: 1_700_000_000, Message: "hi"}
