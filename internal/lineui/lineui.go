// Package lineui runs the line-oriented tapping protocol over plain streams.
package lineui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/verte-zerg/taptempo/internal/tempo"
)

// Protocol strings.
const (
	Banner     = "Hit enter key for each beat (q to quit)."
	MorePrompt = "[Hit enter key one more time to start bpm computation...]"
	Goodbye    = "Bye Bye!"
	QuitInput  = "q"
)

// Run reads one event per line from in until "q" or end of input.
// Every other line, empty included, is a tap. Read and write failures are
// returned unwrapped so the caller prints the I/O message alone.
func Run(in io.Reader, out io.Writer, est *tempo.Estimator, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	precision := est.Config().Precision

	if _, err := fmt.Fprintln(writer, Banner); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	for {
		line, more, err := readLine(reader)
		if err != nil {
			return err
		}
		if !more || line == QuitInput {
			break
		}

		res := est.Tap()
		logger.Debug("tap", "samples", res.Samples, "reset", res.Reset, "estimate", res.HasEstimate(), "bpm", res.BPM)
		if res.HasEstimate() {
			_, err = fmt.Fprintf(writer, "Tempo: %s bpm ", tempo.FormatBPM(res.BPM, precision))
		} else {
			_, err = fmt.Fprintln(writer, MorePrompt)
		}
		if err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer, Goodbye); err != nil {
		return err
	}
	return writer.Flush()
}

// readLine returns the next line without its terminator. more is false once
// the input is exhausted; a final unterminated line is still returned.
func readLine(r *bufio.Reader) (line string, more bool, err error) {
	raw, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if raw == "" {
			return "", false, nil
		}
	}
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")
	return raw, true, nil
}
