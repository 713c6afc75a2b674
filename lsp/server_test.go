package lsp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/lsp"
)

// mockClient implements protocol.Client for testing.
type mockClient struct {
	diagnostics []protocol.PublishDiagnosticsParams
}

func (m *mockClient) PublishDiagnostics(_ context.Context, params *protocol.PublishDiagnosticsParams) error {
	m.diagnostics = append(m.diagnostics, *params)

	return nil
}

// Stub out remaining Client interface methods.
func (m *mockClient) Progress(context.Context, *protocol.ProgressParams) error { return nil }
func (m *mockClient) WorkDoneProgressCreate(context.Context, *protocol.WorkDoneProgressCreateParams) error {
	return nil
}
func (m *mockClient) ShowMessage(context.Context, *protocol.ShowMessageParams) error { return nil }
func (m *mockClient) ShowMessageRequest(
	context.Context, *protocol.ShowMessageRequestParams,
) (*protocol.MessageActionItem, error) {
	return nil, nil //nolint:nilnil // Mock stub returns nil for tests
}
func (m *mockClient) LogMessage(context.Context, *protocol.LogMessageParams) error { return nil }
func (m *mockClient) Telemetry(context.Context, any) error                         { return nil }
func (m *mockClient) RegisterCapability(context.Context, *protocol.RegistrationParams) error {
	return nil
}
func (m *mockClient) UnregisterCapability(context.Context, *protocol.UnregistrationParams) error {
	return nil
}
func (m *mockClient) ApplyEdit(context.Context, *protocol.ApplyWorkspaceEditParams) (bool, error) {
	return false, nil
}
func (m *mockClient) Configuration(context.Context, *protocol.ConfigurationParams) ([]any, error) {
	return nil, nil
}
func (m *mockClient) WorkspaceFolders(context.Context) ([]protocol.WorkspaceFolder, error) {
	return nil, nil
}

func newTestServer(t *testing.T) (*lsp.Server, *mockClient) {
	t.Helper()

	logger := zap.NewNop()
	client := &mockClient{}
	server := lsp.NewServer(client, logger, nil)

	return server, client
}

const testURI = protocol.DocumentURI("file:///queries.cypher")

// testDocument holds a translatable, a compliant and an unsupported statement.
const testDocument = "MATCH (a)-->(b) RETURN b;\n" +
	"MATCH (n:Person)\nRETURN n;\n" +
	"CREATE (n:Person {name: 'Ada'});\n"

func openTestDocument(t *testing.T) (*lsp.Server, *mockClient) {
	t.Helper()

	server, client := newTestServer(t)
	ctx := context.Background()

	_, err := server.Initialize(ctx, &protocol.InitializeParams{})
	require.NoError(t, err)
	require.NoError(t, server.Initialized(ctx, &protocol.InitializedParams{}))

	err = server.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     testURI,
			Version: 1,
			Text:    testDocument,
		},
	})
	require.NoError(t, err)

	return server, client
}

func pos(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestServer_Initialize(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	result, err := server.Initialize(context.Background(), &protocol.InitializeParams{})
	require.NoError(t, err)

	require.NotNil(t, result.Capabilities.TextDocumentSync)

	hoverEnabled, ok := result.Capabilities.HoverProvider.(bool)
	assert.True(t, ok && hoverEnabled, "HoverProvider not enabled")

	require.NotNil(t, result.ServerInfo)
	assert.Equal(t, "graphil-lsp", result.ServerInfo.Name)
}

func TestServer_DidOpen(t *testing.T) {
	t.Parallel()

	_, client := openTestDocument(t)

	require.Len(t, client.diagnostics, 1)

	published := client.diagnostics[0]
	assert.Equal(t, testURI, published.URI)
	require.Len(t, published.Diagnostics, 3)

	tests := []struct {
		code     graphil.Category
		severity protocol.DiagnosticSeverity
		start    protocol.Position
		end      protocol.Position
	}{
		{graphil.CategoryTranslatable, protocol.DiagnosticSeverityInformation, pos(0, 0), pos(0, 24)},
		{graphil.CategoryCompliant, protocol.DiagnosticSeverityHint, pos(1, 0), pos(2, 8)},
		{graphil.CategoryNotSupported, protocol.DiagnosticSeverityWarning, pos(3, 0), pos(3, 31)},
	}

	for i, tt := range tests {
		d := published.Diagnostics[i]
		assert.Equal(t, string(tt.code), d.Code, "diagnostic %d", i)
		assert.Equal(t, tt.severity, d.Severity, "diagnostic %d", i)
		assert.Equal(t, tt.start, d.Range.Start, "diagnostic %d", i)
		assert.Equal(t, tt.end, d.Range.End, "diagnostic %d", i)
		assert.Equal(t, "graphil", d.Source)
	}

	assert.Equal(t, string(graphil.CategoryTranslatable)+": MATCH (a)->(b) RETURN b", published.Diagnostics[0].Message)
	assert.Equal(t, "already valid ISO GQL", published.Diagnostics[1].Message)
}

func TestServer_DidChange(t *testing.T) {
	t.Parallel()

	server, client := openTestDocument(t)

	err := server.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "MATCH (n RETURN n"},
		},
	})
	require.NoError(t, err)

	require.Len(t, client.diagnostics, 2)

	latest := client.diagnostics[1]
	assert.Equal(t, uint32(2), latest.Version)
	require.Len(t, latest.Diagnostics, 1)
	assert.Equal(t, string(graphil.CategoryNotCypher), latest.Diagnostics[0].Code)
	assert.Equal(t, protocol.DiagnosticSeverityError, latest.Diagnostics[0].Severity)
}

func TestServer_DidClose(t *testing.T) {
	t.Parallel()

	server, client := openTestDocument(t)
	ctx := context.Background()

	err := server.DidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	require.Len(t, client.diagnostics, 2)
	assert.Empty(t, client.diagnostics[1].Diagnostics)

	hover, err := server.Hover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     pos(0, 3),
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestServer_Hover(t *testing.T) {
	t.Parallel()

	server, _ := openTestDocument(t)

	tests := []struct {
		name     string
		position protocol.Position
		contains []string
	}{
		{
			name:     "translatable",
			position: pos(0, 3),
			contains: []string{"**" + string(graphil.CategoryTranslatable) + "**", "```gql\nMATCH (a)->(b) RETURN b\n```"},
		},
		{
			name:     "compliant on second line",
			position: pos(2, 2),
			contains: []string{string(graphil.CategoryCompliant), "RETURN n"},
		},
		{
			name:     "not supported",
			position: pos(3, 2),
			contains: []string{string(graphil.CategoryNotSupported)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hover, err := server.Hover(context.Background(), &protocol.HoverParams{
				TextDocumentPositionParams: protocol.TextDocumentPositionParams{
					TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
					Position:     tt.position,
				},
			})
			require.NoError(t, err)
			require.NotNil(t, hover)
			assert.Equal(t, protocol.Markdown, hover.Contents.Kind)

			for _, want := range tt.contains {
				assert.Contains(t, hover.Contents.Value, want)
			}
		})
	}
}

func TestServer_Hover_OutsideStatement(t *testing.T) {
	t.Parallel()

	server, _ := openTestDocument(t)

	hover, err := server.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     pos(10, 0),
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestServer_CodeAction(t *testing.T) {
	t.Parallel()

	server, _ := openTestDocument(t)
	whole := protocol.Range{Start: pos(0, 0), End: pos(4, 0)}

	tests := []struct {
		name  string
		rng   protocol.Range
		only  []protocol.CodeActionKind
		kinds []protocol.CodeActionKind
	}{
		{"whole document", whole, nil, []protocol.CodeActionKind{protocol.QuickFix, protocol.Source}},
		{"quick fixes only", whole, []protocol.CodeActionKind{protocol.QuickFix}, []protocol.CodeActionKind{protocol.QuickFix}},
		{"source only", whole, []protocol.CodeActionKind{protocol.Source}, []protocol.CodeActionKind{protocol.Source}},
		{"compliant statement", protocol.Range{Start: pos(1, 0), End: pos(1, 5)}, []protocol.CodeActionKind{protocol.QuickFix}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			actions, err := server.CodeAction(context.Background(), &protocol.CodeActionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
				Range:        tt.rng,
				Context:      protocol.CodeActionContext{Only: tt.only},
			})
			require.NoError(t, err)

			var kinds []protocol.CodeActionKind
			for _, a := range actions {
				kinds = append(kinds, a.Kind)
			}

			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestServer_CodeAction_Edit(t *testing.T) {
	t.Parallel()

	server, _ := openTestDocument(t)

	actions, err := server.CodeAction(context.Background(), &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Range:        protocol.Range{Start: pos(0, 2), End: pos(0, 2)},
		Context:      protocol.CodeActionContext{Only: []protocol.CodeActionKind{protocol.QuickFix}},
	})
	require.NoError(t, err)
	require.Len(t, actions, 1)

	fix := actions[0]
	assert.Equal(t, "Replace with ISO GQL", fix.Title)
	require.Len(t, fix.Diagnostics, 1)
	assert.Equal(t, string(graphil.CategoryTranslatable), fix.Diagnostics[0].Code)

	require.NotNil(t, fix.Edit)

	edits := fix.Edit.Changes[testURI]
	require.Len(t, edits, 1)
	assert.Equal(t, "MATCH (a)->(b) RETURN b", edits[0].NewText)
	assert.Equal(t, protocol.Range{Start: pos(0, 0), End: pos(0, 24)}, edits[0].Range)
}

func TestServer_DocumentSymbol(t *testing.T) {
	t.Parallel()

	server, _ := openTestDocument(t)

	symbols, err := server.DocumentSymbol(context.Background(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, symbols, 3)

	first, ok := symbols[0].(protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Equal(t, "#1 MATCH (a)-->(b) RETURN …", first.Name)
	assert.Equal(t, graphil.CategoryTranslatable.Short(), first.Detail)

	second, ok := symbols[1].(protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Equal(t, "#2 MATCH (n:Person) RETURN …", second.Name)
	assert.Equal(t, uint32(2), second.Range.End.Line)
}

func TestServer_FoldingRanges(t *testing.T) {
	t.Parallel()

	server, _ := openTestDocument(t)

	ranges, err := server.FoldingRanges(context.Background(), &protocol.FoldingRangeParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(1), ranges[0].StartLine)
	assert.Equal(t, uint32(2), ranges[0].EndLine)
	assert.Equal(t, protocol.RegionFoldingRange, ranges[0].Kind)
}

func TestServer_CodeLens(t *testing.T) {
	t.Parallel()

	server, _ := openTestDocument(t)

	lenses, err := server.CodeLens(context.Background(), &protocol.CodeLensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, lenses, 3)

	titles := make([]string, len(lenses))
	for i, l := range lenses {
		require.NotNil(t, l.Command)
		titles[i] = l.Command.Title
	}

	assert.Equal(t, []string{
		string(graphil.CategoryTranslatable),
		string(graphil.CategoryCompliant),
		string(graphil.CategoryNotSupported),
	}, titles)
	assert.Equal(t, pos(1, 0), lenses[1].Range.Start)
}

func TestServer_UnsplittableDocument(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	err := server.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  testURI,
			Text: "\n  MATCH (n) RETURN 'unterminated\n",
		},
	})
	require.NoError(t, err)

	require.Len(t, client.diagnostics, 1)
	require.Len(t, client.diagnostics[0].Diagnostics, 1)

	d := client.diagnostics[0].Diagnostics[0]
	assert.Equal(t, string(graphil.CategoryNotCypher), d.Code)
	assert.Equal(t, pos(1, 2), d.Range.Start)
	assert.True(t, strings.HasPrefix(d.Message, string(graphil.CategoryNotCypher)))
}

func TestServer_LintDiagnostics(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	err := server.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  testURI,
			Text: "MATCH (a)-[:ORDER]->(b) RETURN b;\nMATCH (a)-[:ORDER]->(b) RETURN b;",
		},
	})
	require.NoError(t, err)

	require.Len(t, client.diagnostics, 1)

	codes := make(map[any]int)
	for _, d := range client.diagnostics[0].Diagnostics {
		codes[d.Code]++
	}

	assert.Equal(t, 2, codes[string(graphil.CategoryMusked)])
	assert.Equal(t, 2, codes["reserved-word"])
	assert.Equal(t, 1, codes["duplicate-statement"])

	for _, d := range client.diagnostics[0].Diagnostics {
		if d.Code == "duplicate-statement" {
			assert.Equal(t, protocol.DiagnosticSeverityWarning, d.Severity)
			assert.Equal(t, pos(1, 0), d.Range.Start)
		}
	}
}
