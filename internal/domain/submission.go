package domain

type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionConfirmed  SubmissionState = "confirmed"
	SubmissionFailed     SubmissionState = "failed"
)

func (s SubmissionState) Label() string {
	switch s {
	case SubmissionSubmitting:
		return "mining…"
	case SubmissionConfirmed:
		return "confirmed"
	case SubmissionFailed:
		return "failed"
	case SubmissionIdle, "":
		return "idle"
	default:
		return string(s)
	}
}

// DefaultGasLimit matches the ceiling the portal contract was deployed against.
const DefaultGasLimit uint64 = 300_000

type SubmitOptions struct {
	GasLimit uint64
}

type PendingTx struct {
	Hash string
}

type Receipt struct {
	Hash        string
	BlockNumber uint64
	GasUsed     uint64
	Succeeded   bool
}
