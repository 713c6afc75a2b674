package runner

import (
	"strconv"
	"time"

	"github.com/rlch/graphil"
)

// Action is what happened to a query.
type Action string

// Actions.
const (
	ActionRun    Action = "run"     // translation started
	ActionPass   Action = "passed"  // GQL text produced
	ActionFail   Action = "failed"  // no GQL text produced
	ActionSkip   Action = "skipped" // filtered out
	ActionError  Action = "error"   // the runner could not translate the query
	ActionOutput Action = "output"  // diagnostic output
)

// IsTerminal reports whether the action ends a query.
func (a Action) IsTerminal() bool {
	switch a {
	case ActionPass, ActionFail, ActionSkip, ActionError:
		return true
	case ActionRun, ActionOutput:
		return false
	default:
		return false
	}
}

// Event reports progress on one query of a batch.
type Event struct {
	Time    time.Time
	Action  Action
	Source  string // file the query came from
	Index   int    // position of the query in its source
	Elapsed time.Duration

	Cypher   string
	GQL      string
	Category graphil.Category
	Error    error
	Output   string
}

// Name identifies the query as "#n", 1-based.
func (e Event) Name() string {
	return "#" + strconv.Itoa(e.Index+1)
}

// Location is "source#n", or Name when the source is unknown.
func (e Event) Location() string {
	if e.Source == "" {
		return e.Name()
	}

	return e.Source + e.Name()
}
