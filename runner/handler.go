package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrMaxFailures stops a run once too many queries failed to translate.
var ErrMaxFailures = errors.New("runner: max failures reached")

// Handler receives the events of a run. Handlers are called one event at a
// time. Returning an error stops the run.
type Handler interface {
	Event(ctx context.Context, event Event, result *Result) error
	Err(text string) error
}

// Formatter writes events as text.
type Formatter interface {
	Format(event Event, result *Result) error
}

// Summarizer is a Formatter that also writes a closing summary.
type Summarizer interface {
	Formatter
	Summary(result *Result) error
}

// MultiHandler dispatches to several handlers in order.
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a handler dispatching to each of handlers.
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Event dispatches to each handler, stopping at the first error.
func (m *MultiHandler) Event(ctx context.Context, event Event, result *Result) error {
	for _, h := range m.handlers {
		if err := h.Event(ctx, event, result); err != nil {
			return err
		}
	}

	return nil
}

// Err forwards text to every handler.
func (m *MultiHandler) Err(text string) error {
	var errs []error

	for _, h := range m.handlers {
		if err := h.Err(text); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ResultHandler adds every event to the result.
type ResultHandler struct{}

// NewResultHandler creates a ResultHandler.
func NewResultHandler() *ResultHandler {
	return &ResultHandler{}
}

// Event adds event to result.
func (h *ResultHandler) Event(_ context.Context, event Event, result *Result) error {
	result.Add(event)

	return nil
}

// Err is a no-op.
func (h *ResultHandler) Err(string) error {
	return nil
}

// StopOnFailHandler stops the run after maxFailures untranslated queries.
// Zero disables it.
type StopOnFailHandler struct {
	maxFailures int
}

// NewStopOnFailHandler creates a StopOnFailHandler.
func NewStopOnFailHandler(maxFailures int) *StopOnFailHandler {
	return &StopOnFailHandler{maxFailures: maxFailures}
}

// Event returns ErrMaxFailures once the result holds enough failures.
func (h *StopOnFailHandler) Event(_ context.Context, event Event, result *Result) error {
	if h.maxFailures <= 0 {
		return nil
	}

	if event.Action != ActionFail && event.Action != ActionError {
		return nil
	}

	if result.Untranslated+result.Errors >= h.maxFailures {
		return ErrMaxFailures
	}

	return nil
}

// Err is a no-op.
func (h *StopOnFailHandler) Err(string) error {
	return nil
}

// FormatHandler writes events through a Formatter and errors to stderr.
type FormatHandler struct {
	formatter Formatter
	stderr    io.Writer
}

// NewFormatHandler creates a FormatHandler.
func NewFormatHandler(formatter Formatter, stderr io.Writer) *FormatHandler {
	return &FormatHandler{formatter: formatter, stderr: stderr}
}

// Event formats event.
func (h *FormatHandler) Event(_ context.Context, event Event, result *Result) error {
	return h.formatter.Format(event, result)
}

// Err writes text to stderr.
func (h *FormatHandler) Err(text string) error {
	_, err := fmt.Fprintln(h.stderr, text)

	return err
}

// Summary writes the formatter's summary, if it has one.
func (h *FormatHandler) Summary(result *Result) error {
	if s, ok := h.formatter.(Summarizer); ok {
		return s.Summary(result)
	}

	return nil
}
