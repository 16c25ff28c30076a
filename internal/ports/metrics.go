package ports

import (
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
)

type RecordSource string

const (
	RecordSourceBulk RecordSource = "bulk"
	RecordSourceLive RecordSource = "live"
)

type Metrics interface {
	RecordsAppended(source RecordSource, n int)
	SyncFailed()
	SubmissionFinished(outcome domain.SubmissionState, took time.Duration)
}

type NopMetrics struct{}

func (NopMetrics) RecordsAppended(RecordSource, int) {}

func (NopMetrics) SyncFailed() {}

func (NopMetrics) SubmissionFinished(domain.SubmissionState, time.Duration) {}
