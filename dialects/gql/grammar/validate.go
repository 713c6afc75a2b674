package gqlgrammar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInvalid is returned when a query parses but violates a GQL constraint.
var ErrInvalid = errors.New("invalid GQL")

// Error locates a validation failure.
type Error struct {
	Pos lexer.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *Error) Unwrap() error {
	return ErrInvalid
}

// edgeArrows lists the legal (left, right) pairs of a full edge pattern.
var edgeArrows = map[[2]string]bool{
	{"<-", "-"}:  true, // pointing left
	{"<-", "->"}: true, // left or right
	{"-", "->"}:  true, // pointing right
	{"-", "-"}:   true, // any direction
	{"~", "~"}:   true, // undirected
	{"~", "~>"}:  true, // undirected or right
	{"<~", "~"}:  true, // left or undirected
}

// Validate checks the edge and quantifier rules of every graph pattern in p.
func Validate(p *Program) error {
	for _, stmt := range p.Statements {
		for _, part := range stmt.Parts {
			if part.Match == nil {
				continue
			}

			for _, path := range part.Match.Patterns {
				if err := validatePath(path); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func validatePath(path *PathPattern) error {
	for _, term := range path.Alternatives {
		for _, factor := range term.Factors {
			if err := validateFactor(factor); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateFactor(f *PathFactor) error {
	primary := f.Primary

	switch {
	case primary.Edge != nil:
		pair := [2]string{primary.Edge.Left, primary.Edge.Right}
		if !edgeArrows[pair] {
			return &Error{Pos: primary.Edge.Pos, Msg: fmt.Sprintf("invalid edge %s[...]%s", pair[0], pair[1])}
		}
	case primary.Paren != nil:
		if err := validatePath(primary.Paren.Pattern); err != nil {
			return err
		}
	case primary.Node != nil && f.Quantifier != nil:
		return &Error{Pos: f.Quantifier.Pos, Msg: "a node pattern cannot be quantified"}
	}

	if f.Quantifier != nil {
		return validateQuantifier(f.Quantifier)
	}

	return nil
}

func validateQuantifier(q *Quantifier) error {
	if q.Star || q.Plus || q.Question {
		return nil
	}

	// {n} needs a bound and {,} or {} is meaningless.
	if !q.Comma {
		if q.Low == nil || q.High != nil {
			return &Error{Pos: q.Pos, Msg: "fixed quantifier needs exactly one bound"}
		}

		return nil
	}

	if q.Low == nil || q.High == nil {
		return nil
	}

	low, err := strconv.Atoi(*q.Low)
	if err != nil {
		return &Error{Pos: q.Pos, Msg: "invalid lower bound " + *q.Low}
	}

	high, err := strconv.Atoi(*q.High)
	if err != nil {
		return &Error{Pos: q.Pos, Msg: "invalid upper bound " + *q.High}
	}

	if low > high {
		return &Error{Pos: q.Pos, Msg: fmt.Sprintf("lower bound %d exceeds upper bound %d", low, high)}
	}

	return nil
}
