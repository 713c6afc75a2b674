package lsp //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"
)

func TestOffsetToPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		offset  int
		want    protocol.Position
	}{
		{"start", "abc", 0, protocol.Position{Line: 0, Character: 0}},
		{"same line", "abc", 2, protocol.Position{Line: 0, Character: 2}},
		{"second line", "a\nbc", 3, protocol.Position{Line: 1, Character: 1}},
		{"after newline", "a\n", 2, protocol.Position{Line: 1, Character: 0}},
		{"utf16 surrogate pair", "é😀x", len("é😀"), protocol.Position{Line: 0, Character: 3}},
		{"past end", "ab", 10, protocol.Position{Line: 0, Character: 2}},
		{"negative", "ab", -1, protocol.Position{Line: 0, Character: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, offsetToPosition(tt.content, tt.offset))
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	t.Parallel()

	r := func(sl, sc, el, ec uint32) protocol.Range {
		return protocol.Range{
			Start: protocol.Position{Line: sl, Character: sc},
			End:   protocol.Position{Line: el, Character: ec},
		}
	}

	tests := []struct {
		name string
		a, b protocol.Range
		want bool
	}{
		{"same", r(0, 0, 0, 5), r(0, 0, 0, 5), true},
		{"cursor inside", r(0, 0, 0, 5), r(0, 3, 0, 3), true},
		{"touching end", r(0, 0, 0, 5), r(0, 5, 0, 5), true},
		{"later line", r(0, 0, 0, 5), r(1, 0, 1, 2), false},
		{"earlier line", r(2, 0, 3, 1), r(1, 0, 1, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rangesOverlap(tt.a, tt.b))
		})
	}
}

func TestCategorySeverity_Diagnostic(t *testing.T) {
	t.Parallel()

	st := &Statement{Text: "RETURN 1"}
	st.Translation.Category = "Comply with ISO-GQL"
	st.Translation.GQL = "RETURN 1"

	d := statementDiagnostic(st)
	assert.Equal(t, protocol.DiagnosticSeverityHint, d.Severity)
	assert.Equal(t, "already valid ISO GQL", d.Message)
}
