// Package translate runs the tiered Cypher to GQL translation.
//
// A query is tried against four tiers in order and the first that succeeds
// decides its category:
//
//  1. the source oracle rejects it: not Cypher;
//  2. the target oracle accepts it unchanged;
//  3. the target oracle accepts it once reserved relationship types are
//     back-quoted;
//  4. it is lifted into IR and lowered into GQL.
package translate

import (
	"errors"
	"fmt"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/dialects/cypher"
	"github.com/rlch/graphil/dialects/gql"
	"go.uber.org/zap"
)

// Translation is the outcome of translating one query.
type Translation struct {
	Cypher   string           `json:"cypher"`
	GQL      string           `json:"gql,omitempty"`
	Category graphil.Category `json:"category"`

	// IR is set when the query went through the lift tier and lifted.
	IR []graphil.Clause `json:"-"`

	// Err explains why no earlier tier succeeded. Diagnostic only.
	Err error `json:"-"`
}

// Translated reports whether t carries GQL text.
func (t Translation) Translated() bool {
	return t.Category.Translated()
}

// Text returns the GQL text, or sentinel when there is none.
func (t Translation) Text(sentinel string) string {
	if t.Translated() {
		return t.GQL
	}

	return sentinel
}

// Translator translates Cypher queries into GQL.
type Translator struct {
	source   graphil.Oracle
	target   graphil.Oracle
	lifter   graphil.Lifter
	lowerer  graphil.Lowerer
	logger   *zap.Logger
	mode     EscapeMode
	reserved []string
	cache    *Cache
}

// Option configures a Translator.
type Option func(*Translator)

// WithSourceOracle sets the oracle that decides whether input is Cypher.
func WithSourceOracle(o graphil.Oracle) Option {
	return func(t *Translator) {
		t.source = o
	}
}

// WithTargetOracle sets the oracle that decides whether text is GQL.
func WithTargetOracle(o graphil.Oracle) Option {
	return func(t *Translator) {
		t.target = o
	}
}

// WithLifter sets the lifter used by the last tier.
func WithLifter(l graphil.Lifter) Option {
	return func(t *Translator) {
		t.lifter = l
	}
}

// WithLowerer sets the lowerer used by the last tier.
func WithLowerer(l graphil.Lowerer) Option {
	return func(t *Translator) {
		t.lowerer = l
	}
}

// WithLogger sets the logger. Tier decisions are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithEscapeMode selects how reserved words are back-quoted.
func WithEscapeMode(mode EscapeMode) Option {
	return func(t *Translator) {
		t.mode = mode
	}
}

// WithReservedWords replaces the target oracle's reserved word list.
func WithReservedWords(words []string) Option {
	return func(t *Translator) {
		t.reserved = words
	}
}

// WithCache memoises translations. A nil cache disables memoisation.
func WithCache(c *Cache) Option {
	return func(t *Translator) {
		t.cache = c
	}
}

// New creates a Translator. Unset components default to the grammar oracles,
// the Cypher lifter and the GQL lowerer.
func New(opts ...Option) *Translator {
	t := &Translator{
		source:  &cypher.Oracle{},
		target:  &gql.Oracle{},
		lifter:  cypher.NewLifter(),
		lowerer: gql.NewLowerer(),
		logger:  zap.NewNop(),
		mode:    EscapeTokens,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.reserved == nil {
		if rw, ok := t.target.(graphil.ReservedWorder); ok {
			t.reserved = rw.ReservedWords()
		}
	}

	return t
}

// ReservedWords returns the words the escape tier back-quotes.
func (t *Translator) ReservedWords() []string {
	return t.reserved
}

// Translate runs query through the tiers. It never fails: the category and
// Err of the result describe what happened.
func (t *Translator) Translate(query string) Translation {
	if t.cache != nil {
		if tr, ok := t.cache.Get(query); ok {
			return tr
		}
	}

	tr := t.translate(query)

	log := t.logger.With(zap.String("fingerprint", Fingerprint(query)))
	if tr.Err != nil {
		log.Debug("Translated", zap.String("category", string(tr.Category)), zap.Error(tr.Err))
	} else {
		log.Debug("Translated", zap.String("category", string(tr.Category)))
	}

	if t.cache != nil {
		t.cache.Set(tr)
	}

	return tr
}

func (t *Translator) translate(query string) Translation {
	tr := Translation{Cypher: query}

	if !t.source.Conforms(query) {
		tr.Category = graphil.CategoryNotCypher
		tr.Err = fmt.Errorf("%w: rejected by the %s oracle", graphil.ErrSyntax, t.source.Dialect())

		return tr
	}

	if t.target.Conforms(query) {
		tr.Category = graphil.CategoryCompliant
		tr.GQL = query

		return tr
	}

	if escaped := Escape(query, t.reserved, t.mode); escaped != query && t.target.Conforms(escaped) {
		tr.Category = graphil.CategoryMusked
		tr.GQL = escaped

		return tr
	}

	clauses, err := t.lifter.Lift(query)
	if err != nil {
		tr.Category = graphil.CategoryNotSupported
		tr.Err = err

		return tr
	}

	tr.IR = clauses

	text, err := t.lowerer.Lower(clauses)
	if err != nil {
		tr.Category = graphil.CategoryNoStandard
		tr.Err = err

		return tr
	}

	if !t.target.Conforms(text) {
		tr.Category = graphil.CategoryNoStandard
		tr.Err = fmt.Errorf("%w: %s", graphil.ErrDialectGap, text)

		return tr
	}

	tr.Category = graphil.CategoryTranslatable
	tr.GQL = text

	return tr
}

// Reason classifies the error of a translation by the sentinel it wraps.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, graphil.ErrSyntax):
		return "syntax error"
	case errors.Is(err, graphil.ErrUnsupported):
		return "unsupported construct"
	case errors.Is(err, graphil.ErrLowering):
		return "lowering failure"
	case errors.Is(err, graphil.ErrDialectGap):
		return "dialect gap"
	default:
		return "error"
	}
}
