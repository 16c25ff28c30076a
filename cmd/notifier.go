package cmd

import (
	"fmt"
	"io"

	"github.com/bnema/waveportal-cli/internal/ports"
)

// writerNotifier prints notices as plain lines.
type writerNotifier struct {
	w io.Writer
}

var _ ports.Notifier = writerNotifier{}

func (n writerNotifier) Notify(message string) {
	_, _ = fmt.Fprintln(n.w, message)
}
