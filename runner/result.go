package runner

import (
	"cmp"
	"slices"
	"time"

	"github.com/rlch/graphil"
)

// Record is one entry of the batch output file.
type Record struct {
	Cypher   string `json:"cypher"`
	Category string `json:"category"`
	GQL      string `json:"gql"`
}

// QueryResult is the outcome of one query.
type QueryResult struct {
	Index    int
	Action   Action
	Cypher   string
	GQL      string
	Category graphil.Category
	Elapsed  time.Duration
	Error    error
	Output   []string
}

// Result aggregates the outcome of a batch.
type Result struct {
	Total        int
	Translated   int
	Untranslated int
	Skipped      int
	Errors       int

	// Categories counts queries per translation category.
	Categories map[graphil.Category]int

	// Queries by index.
	Queries map[int]*QueryResult

	start time.Time
	end   time.Time
}

// NewResult creates an empty result and starts its clock.
func NewResult() *Result {
	return &Result{
		Categories: make(map[graphil.Category]int),
		Queries:    make(map[int]*QueryResult),
		start:      time.Now(),
	}
}

func (r *Result) query(index int) *QueryResult {
	q, ok := r.Queries[index]
	if !ok {
		q = &QueryResult{Index: index}
		r.Queries[index] = q
	}

	return q
}

// Add records an event. Only terminal events are counted.
func (r *Result) Add(event Event) {
	q := r.query(event.Index)

	if event.Action == ActionOutput {
		q.Output = append(q.Output, event.Output)

		return
	}

	if !event.Action.IsTerminal() {
		return
	}

	q.Action = event.Action
	q.Cypher = event.Cypher
	q.GQL = event.GQL
	q.Category = event.Category
	q.Elapsed = event.Elapsed
	q.Error = event.Error

	r.Total++

	switch event.Action {
	case ActionPass:
		r.Translated++
	case ActionFail:
		r.Untranslated++
	case ActionSkip:
		r.Skipped++
	case ActionError:
		r.Errors++
	case ActionRun, ActionOutput:
	}

	if event.Category != "" {
		r.Categories[event.Category]++
	}
}

// Ok reports whether every query that was not skipped was translated.
func (r *Result) Ok() bool {
	return r.Untranslated == 0 && r.Errors == 0
}

// Finish stops the clock.
func (r *Result) Finish() {
	r.end = time.Now()
}

// Elapsed returns the run time, fixed once Finish is called.
func (r *Result) Elapsed() time.Duration {
	if r.end.IsZero() {
		return time.Since(r.start)
	}

	return r.end.Sub(r.start)
}

// ordered returns the queries matching keep, by index.
func (r *Result) ordered(keep func(*QueryResult) bool) []*QueryResult {
	var out []*QueryResult

	for _, q := range r.Queries {
		if keep(q) {
			out = append(out, q)
		}
	}

	slices.SortFunc(out, func(a, b *QueryResult) int { return cmp.Compare(a.Index, b.Index) })

	return out
}

// FailedQueries returns the untranslated and errored queries, by index.
func (r *Result) FailedQueries() []*QueryResult {
	return r.ordered(func(q *QueryResult) bool {
		return q.Action == ActionFail || q.Action == ActionError
	})
}

// Records returns the output records of every translated or untranslated
// query, by index. Queries without GQL text get sentinel as their text.
func (r *Result) Records(sentinel string) []Record {
	done := r.ordered(func(q *QueryResult) bool {
		return q.Action == ActionPass || q.Action == ActionFail
	})

	records := make([]Record, len(done))

	for i, q := range done {
		gql := q.GQL
		if !q.Category.Translated() {
			gql = sentinel
		}

		records[i] = Record{Cypher: q.Cypher, Category: string(q.Category), GQL: gql}
	}

	return records
}

// CategoryCounts returns the count of every category in tier order,
// zero counts included.
func (r *Result) CategoryCounts() []CategoryCount {
	cats := graphil.Categories()
	counts := make([]CategoryCount, len(cats))

	for i, c := range cats {
		counts[i] = CategoryCount{Category: c, Count: r.Categories[c]}
	}

	return counts
}

// CategoryCount pairs a category with its count.
type CategoryCount struct {
	Category graphil.Category `json:"category"`
	Count    int              `json:"count"`
}
