package lsp

import (
	"strings"
	"unicode/utf16"

	"go.lsp.dev/protocol"
)

// offsetToPosition converts a byte offset into content to an LSP position.
// Characters are counted in UTF-16 code units.
func offsetToPosition(content string, offset int) protocol.Position {
	offset = min(max(offset, 0), len(content))
	head := content[:offset]

	line := strings.Count(head, "\n")
	lineStart := strings.LastIndexByte(head, '\n') + 1

	var char int

	for _, r := range head[lineStart:] {
		char += utf16.RuneLen(r)
	}

	return protocol.Position{
		Line:      uint32(line), //nolint:gosec // G115: line counts are small
		Character: uint32(char), //nolint:gosec // G115: column counts are small
	}
}

// before reports whether a is strictly before b.
func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// containsPosition reports whether pos lies within r, ends included.
func containsPosition(r protocol.Range, pos protocol.Position) bool {
	return !before(pos, r.Start) && !before(r.End, pos)
}

// rangesOverlap checks if two ranges overlap.
func rangesOverlap(a, b protocol.Range) bool {
	return !before(a.End, b.Start) && !before(b.End, a.Start)
}

func rangePtr(r protocol.Range) *protocol.Range {
	return &r
}
