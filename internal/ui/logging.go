package ui

import (
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
)

const logBufferSize = 1000

// logMsg is a single line of log output, shown in the logs pane of the
// browser.
type logMsg string

type teaProgramProvider interface {
	Send(msg tea.Msg)
}

// TeaLogWriter is an [io.Writer] that forwards log output line by line into
// the logs pane of a running browser. It is usually not written to directly,
// but through the [slog.Handler] returned by [TeaLogWriter.Handler].
type TeaLogWriter struct {
	program  teaProgramProvider
	doneChan chan struct{}
	logChan  chan logMsg
}

// NewTeaLogWriter returns a pointer to a new [TeaLogWriter] and starts
// forwarding to the program. [TeaLogWriter.Stop] ends the forwarding.
func NewTeaLogWriter(program teaProgramProvider) *TeaLogWriter {
	wr := &TeaLogWriter{
		program:  program,
		doneChan: make(chan struct{}),
		logChan:  make(chan logMsg, logBufferSize),
	}

	go wr.forward()

	return wr
}

// Handler returns a [tint] based [slog.Handler] writing into the browser,
// formatted as on the command line.
//
//nolint:ireturn
func (wr *TeaLogWriter) Handler(level slog.Leveler) slog.Handler {
	return tint.NewHandler(wr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
}

// Stop ends the forwarding, logs written afterwards are discarded.
func (wr *TeaLogWriter) Stop() {
	close(wr.doneChan)
}

func (wr *TeaLogWriter) forward() {
	for {
		select {
		case <-wr.doneChan:
			return
		case msg := <-wr.logChan:
			wr.program.Send(msg)
		}
	}
}

// Write queues every line of p as its own [logMsg], so that the logs pane can
// limit its scrollback by lines. It never fails.
func (wr *TeaLogWriter) Write(p []byte) (int, error) {
	for _, line := range strings.SplitAfter(string(p), "\n") {
		if line == "" {
			continue
		}

		select {
		case <-wr.doneChan:
			return len(p), nil
		case wr.logChan <- logMsg(line):
		}
	}

	return len(p), nil
}
