package tui

import (
	"github.com/MKhiriev/mylife-client/internal/gate"
	tea "github.com/charmbracelet/bubbletea"
)

// ProbeFeed carries readiness attempts from the probe goroutine into the
// Bubble Tea loop. It holds only the latest attempt, so Publish never blocks
// and the final (ready) attempt is never lost.
type ProbeFeed struct {
	ch chan gate.ProbeAttempt
}

func NewProbeFeed() *ProbeFeed {
	return &ProbeFeed{ch: make(chan gate.ProbeAttempt, 1)}
}

// Publish replaces any attempt that was not read yet. It is meant to be
// passed to [gate.NewReadinessProbe] and has a single producer.
func (f *ProbeFeed) Publish(attempt gate.ProbeAttempt) {
	for {
		select {
		case f.ch <- attempt:
			return
		default:
		}

		select {
		case <-f.ch:
		default:
		}
	}
}

// listen waits for the next attempt.
func (f *ProbeFeed) listen() tea.Cmd {
	return func() tea.Msg {
		return probeAttemptMsg(<-f.ch)
	}
}
