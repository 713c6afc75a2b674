//nolint:testpackage
package gql

import (
	"slices"
	"strings"
	"testing"

	"github.com/rlch/graphil"
)

func TestOracle_Dialect(t *testing.T) {
	t.Parallel()

	if got := (&Oracle{}).Dialect(); got != "gql" {
		t.Errorf("Dialect() = %q, want %q", got, "gql")
	}
}

func TestOracle_Registration(t *testing.T) {
	t.Parallel()

	if !slices.Contains(graphil.RegisteredOracles(), "gql") {
		t.Error("gql oracle not registered")
	}

	lowerer, err := graphil.NewLowerer("gql")
	if err != nil {
		t.Fatalf("NewLowerer() error: %v", err)
	}

	if _, ok := lowerer.(*Lowerer); !ok {
		t.Errorf("NewLowerer() = %T, want *Lowerer", lowerer)
	}
}

func TestOracle_ReservedWords(t *testing.T) {
	t.Parallel()

	words := (&Oracle{}).ReservedWords()

	if !slices.IsSorted(words) {
		t.Error("ReservedWords() is not sorted")
	}

	for _, w := range []string{"ORDER", "MATCH", "PATH", "VALUE", "PROJECT"} {
		if _, found := slices.BinarySearch(words, w); !found {
			t.Errorf("ReservedWords() missing %s", w)
		}
	}

	for _, w := range words {
		if w != strings.ToUpper(w) {
			t.Errorf("ReservedWords() contains non upper-case %q", w)
		}
	}

	if len(slices.Compact(slices.Clone(words))) != len(words) {
		t.Error("ReservedWords() contains duplicates")
	}
}

func TestOracle_Conforms(t *testing.T) {
	t.Parallel()

	o := &Oracle{}

	if !o.Conforms("MATCH (n) RETURN n") {
		t.Error("Conforms(MATCH (n) RETURN n) = false")
	}

	if o.Conforms("MATCH (a)-[:ORDER]->(b) RETURN b") {
		t.Error("Conforms with reserved relationship type = true")
	}

	if o.Check("MATCH (a)-[:`ORDER`]->(b) RETURN b") != nil {
		t.Error("escaped reserved relationship type should conform")
	}
}
