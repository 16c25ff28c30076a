package domain

import (
	"fmt"
	"time"
)

// EventNewRecord is the ledger event emitted for every confirmed record.
const EventNewRecord = "NewWave"

const dateLayout = "01/02/2006"

type Record struct {
	Sender      Address
	SubmittedAt int64
	Message     string
}

// Entry is the display form of a Record.
type Entry struct {
	Address   Address `json:"address"`
	Timestamp string  `json:"timestamp"`
	Message   string  `json:"message"`
}

func (r Record) Entry(loc *time.Location) Entry {
	return Entry{
		Address:   r.Sender,
		Timestamp: FormatDate(r.SubmittedAt, loc),
		Message:   r.Message,
	}
}

// Key identifies a record across the bulk read and the live event stream.
func (r Record) Key() string {
	return fmt.Sprintf("%s|%d|%s", r.Sender.Key(), r.SubmittedAt, r.Message)
}

// FormatDate renders unix seconds as MM/DD/YYYY in loc (UTC when nil).
func FormatDate(unixSeconds int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	return time.Unix(unixSeconds, 0).In(loc).Format(dateLayout)
}
