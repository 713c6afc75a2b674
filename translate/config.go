package translate

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rlch/graphil"
)

// FromConfig builds a Translator from a loaded configuration. Oracles,
// lifter and lowerer are looked up in the graphil registries, so the dialect
// packages must be linked in.
func FromConfig(cfg *graphil.Config, logger *zap.Logger) (*Translator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mode, err := ParseEscapeMode(cfg.Escape)
	if err != nil {
		return nil, err
	}

	source, err := graphil.NewOracle(cfg.Source.Oracle, cfg.Source.Connection)
	if err != nil {
		return nil, fmt.Errorf("source oracle: %w", err)
	}

	target, err := graphil.NewOracle(cfg.Target.Oracle, cfg.Target.Connection)
	if err != nil {
		closeOracle(source)

		return nil, fmt.Errorf("target oracle: %w", err)
	}

	// The neo4j oracle checks Cypher too; both lift with the Cypher lifter.
	lifter, err := graphil.NewLifter("cypher")
	if err != nil {
		return nil, errors.Join(err, closeOracle(source), closeOracle(target))
	}

	lowerer, err := graphil.NewLowerer(target.Dialect())
	if err != nil {
		return nil, errors.Join(err, closeOracle(source), closeOracle(target))
	}

	opts := []Option{
		WithSourceOracle(source),
		WithTargetOracle(target),
		WithLifter(lifter),
		WithLowerer(lowerer),
		WithLogger(logger),
		WithEscapeMode(mode),
	}

	if rw, ok := target.(graphil.ReservedWorder); ok {
		extra, exclude := cfg.ReservedWords.Extra, cfg.ReservedWords.Exclude
		opts = append(opts, WithReservedWords(AdjustReserved(rw.ReservedWords(), extra, exclude)))
	}

	if cfg.Cache.TTL > 0 {
		opts = append(opts, WithCache(NewCache(cfg.Cache.TTL)))
	}

	logger.Debug("Translator",
		zap.String("source", cfg.Source.Oracle),
		zap.String("target", cfg.Target.Oracle),
		zap.String("escape", string(mode)),
		zap.Duration("cacheTTL", cfg.Cache.TTL),
	)

	return New(opts...), nil
}

// Close releases oracles holding connections.
func (t *Translator) Close() error {
	return errors.Join(closeOracle(t.source), closeOracle(t.target))
}

func closeOracle(o graphil.Oracle) error {
	if c, ok := o.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
