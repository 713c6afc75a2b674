package runner //nolint:testpackage

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rlch/graphil"
)

var _ Handler = (*mockHandler)(nil)

var errTestStop = errors.New("stop")

type mockHandler struct {
	events []Event
	errs   []string
	err    error
}

func (m *mockHandler) Event(_ context.Context, event Event, _ *Result) error {
	m.events = append(m.events, event)

	return m.err
}

func (m *mockHandler) Err(text string) error {
	m.errs = append(m.errs, text)

	return nil
}

func TestMultiHandler_Event(t *testing.T) {
	t.Parallel()

	h1, h2 := &mockHandler{}, &mockHandler{}
	multi := NewMultiHandler(h1, h2)

	_ = multi.Event(context.Background(), Event{Action: ActionPass}, NewResult())

	if len(h1.events) != 1 || len(h2.events) != 1 {
		t.Error("event not dispatched to all handlers")
	}
}

func TestMultiHandler_StopsOnError(t *testing.T) {
	t.Parallel()

	h1 := &mockHandler{err: errTestStop}
	h2 := &mockHandler{}
	multi := NewMultiHandler(h1, h2)

	err := multi.Event(context.Background(), Event{}, NewResult())

	if !errors.Is(err, errTestStop) {
		t.Errorf("got %v, want errTestStop", err)
	}

	if len(h2.events) != 0 {
		t.Error("second handler should not receive event")
	}
}

func TestMultiHandler_Err(t *testing.T) {
	t.Parallel()

	h1, h2 := &mockHandler{}, &mockHandler{}

	if err := NewMultiHandler(h1, h2).Err("boom"); err != nil {
		t.Fatal(err)
	}

	if len(h1.errs) != 1 || len(h2.errs) != 1 {
		t.Error("text not forwarded to all handlers")
	}
}

func TestResultHandler(t *testing.T) {
	t.Parallel()

	h := NewResultHandler()
	result := NewResult()

	_ = h.Event(context.Background(), Event{Action: ActionPass, Category: graphil.CategoryCompliant}, result)

	if result.Total != 1 {
		t.Error("terminal event not added")
	}

	_ = h.Event(context.Background(), Event{Action: ActionOutput, Output: "log"}, result)

	if len(result.Queries[0].Output) != 1 {
		t.Error("output not added")
	}
}

func TestStopOnFailHandler(t *testing.T) {
	t.Parallel()

	h := NewStopOnFailHandler(2)
	result := NewResult()

	result.Add(Event{Action: ActionFail, Index: 0})

	err := h.Event(context.Background(), Event{Action: ActionFail}, result)
	if err != nil {
		t.Error("should not stop on first failure")
	}

	result.Add(Event{Action: ActionError, Index: 1})

	err = h.Event(context.Background(), Event{Action: ActionError}, result)

	if !errors.Is(err, ErrMaxFailures) {
		t.Errorf("got %v, want ErrMaxFailures", err)
	}
}

func TestStopOnFailHandler_IgnoresPasses(t *testing.T) {
	t.Parallel()

	h := NewStopOnFailHandler(1)
	result := NewResult()
	result.Add(Event{Action: ActionFail, Index: 0})

	if err := h.Event(context.Background(), Event{Action: ActionPass}, result); err != nil {
		t.Errorf("pass event should not stop the run: %v", err)
	}
}

func TestStopOnFailHandler_Disabled(t *testing.T) {
	t.Parallel()

	h := NewStopOnFailHandler(0)
	result := NewResult()

	for i := range 10 {
		result.Add(Event{Action: ActionFail, Index: i})

		err := h.Event(context.Background(), Event{Action: ActionFail}, result)
		if err != nil {
			t.Error("should never stop when disabled")
		}
	}
}

func TestFormatHandler(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	h := NewFormatHandler(NewVerboseFormatter(&out), &errOut)

	_ = h.Event(context.Background(), Event{Action: ActionRun, Index: 0}, NewResult())
	_ = h.Err("oops")

	if got, want := out.String(), "=== RUN   #1\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	if got, want := errOut.String(), "oops\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}

	result := NewResult()
	result.Finish()

	out.Reset()

	if err := h.Summary(result); err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(out.Bytes(), []byte("PASS\t0 queries")) {
		t.Errorf("summary = %q", out.String())
	}
}
