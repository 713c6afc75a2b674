package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rlch/graphil"
)

// VerboseFormatter writes events in the style of go test -v.
type VerboseFormatter struct {
	w io.Writer
}

// NewVerboseFormatter creates a VerboseFormatter.
func NewVerboseFormatter(w io.Writer) *VerboseFormatter {
	return &VerboseFormatter{w: w}
}

// Format writes one event.
func (f *VerboseFormatter) Format(event Event, _ *Result) error {
	name := event.Location()

	var err error

	switch event.Action {
	case ActionRun:
		_, err = fmt.Fprintf(f.w, "=== RUN   %s\n", name)
	case ActionPass:
		_, err = fmt.Fprintf(f.w, "--- PASS: %s [%s] (%s)\n    %s\n",
			name, event.Category, formatDuration(event.Elapsed), event.GQL)
	case ActionFail:
		_, err = fmt.Fprintf(f.w, "--- FAIL: %s [%s] (%s)\n", name, event.Category, formatDuration(event.Elapsed))
		if err == nil && event.Error != nil {
			_, err = fmt.Fprintf(f.w, "    %v\n", event.Error)
		}
	case ActionSkip:
		_, err = fmt.Fprintf(f.w, "--- SKIP: %s\n", name)
	case ActionError:
		_, err = fmt.Fprintf(f.w, "--- ERROR: %s: %v\n", name, event.Error)
	case ActionOutput:
		_, err = fmt.Fprintf(f.w, "    %s\n", event.Output)
	}

	return err
}

// Summary writes the closing PASS/FAIL line with category counts.
func (f *VerboseFormatter) Summary(result *Result) error {
	status := "PASS"
	if !result.Ok() {
		status = "FAIL"
	}

	counts := make([]string, 0, len(graphil.Categories()))

	for _, c := range result.CategoryCounts() {
		counts = append(counts, fmt.Sprintf("%s=%d", c.Category.Short(), c.Count))
	}

	_, err := fmt.Fprintf(f.w, "%s\t%d queries, %d translated (%s)\t%s\n",
		status, result.Total, result.Translated, strings.Join(counts, " "), formatDuration(result.Elapsed()))

	return err
}

// JSONFormatter writes one JSON object per line.
type JSONFormatter struct {
	enc *json.Encoder
}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return &JSONFormatter{enc: enc}
}

type jsonEvent struct {
	Time     time.Time `json:"time"`
	Action   Action    `json:"action"`
	Source   string    `json:"source,omitempty"`
	Index    int       `json:"index"`
	Cypher   string    `json:"cypher,omitempty"`
	Category string    `json:"category,omitempty"`
	GQL      string    `json:"gql,omitempty"`
	Elapsed  float64   `json:"elapsed,omitempty"`
	Error    string    `json:"error,omitempty"`
	Output   string    `json:"output,omitempty"`
}

// Format writes one event. Run events are not written.
func (f *JSONFormatter) Format(event Event, _ *Result) error {
	if event.Action == ActionRun {
		return nil
	}

	je := jsonEvent{
		Time:     event.Time,
		Action:   event.Action,
		Source:   event.Source,
		Index:    event.Index,
		Cypher:   event.Cypher,
		Category: string(event.Category),
		GQL:      event.GQL,
		Elapsed:  event.Elapsed.Seconds(),
		Output:   event.Output,
	}

	if event.Error != nil {
		je.Error = event.Error.Error()
	}

	return f.enc.Encode(je)
}

type jsonSummary struct {
	Action       string          `json:"action"`
	Total        int             `json:"total"`
	Translated   int             `json:"translated"`
	Untranslated int             `json:"untranslated"`
	Skipped      int             `json:"skipped"`
	Errors       int             `json:"errors"`
	Categories   []CategoryCount `json:"categories"`
	Elapsed      float64         `json:"elapsed"`
	Ok           bool            `json:"ok"`
}

// Summary writes the totals.
func (f *JSONFormatter) Summary(result *Result) error {
	return f.enc.Encode(jsonSummary{
		Action:       "summary",
		Total:        result.Total,
		Translated:   result.Translated,
		Untranslated: result.Untranslated,
		Skipped:      result.Skipped,
		Errors:       result.Errors,
		Categories:   result.CategoryCounts(),
		Elapsed:      result.Elapsed().Seconds(),
		Ok:           result.Ok(),
	})
}

// formatDuration rounds d for display.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
