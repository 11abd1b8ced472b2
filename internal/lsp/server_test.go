package lsp_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/Sumatoshi-tech/casefang/internal/lsp"
	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
)

const testURI = "file:///work/src/app.js"

type notifications struct {
	mu     sync.Mutex
	params []*protocol.PublishDiagnosticsParams
}

func (n *notifications) context() *glsp.Context {
	return &glsp.Context{Notify: func(method string, params any) {
		if method != protocol.ServerTextDocumentPublishDiagnostics {
			return
		}

		n.mu.Lock()
		defer n.mu.Unlock()

		if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
			n.params = append(n.params, p)
		}
	}}
}

func (n *notifications) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	t.Helper()

	n.mu.Lock()
	defer n.mu.Unlock()

	require.NotEmpty(t, n.params)

	return n.params[len(n.params)-1]
}

func newServer(t *testing.T) *lsp.Server {
	t.Helper()

	checker, err := constnaming.NewChecker(constnaming.DefaultOptions())
	require.NoError(t, err)

	srv, err := lsp.NewServer(lsp.Deps{Checker: checker})
	require.NoError(t, err)

	return srv
}

func open(t *testing.T, srv *lsp.Server, ctx *glsp.Context, uri, languageID, text string) {
	t.Helper()

	require.NoError(t, srv.Handler().TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: languageID, Version: 1, Text: text},
	}))
}

func TestNewServer_RequiresChecker(t *testing.T) {
	t.Parallel()

	_, err := lsp.NewServer(lsp.Deps{})
	require.ErrorIs(t, err, lsp.ErrNoChecker)
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	result, err := srv.Handler().Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	initResult, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, initResult.Capabilities.TextDocumentSync)
	require.NotNil(t, initResult.ServerInfo)
	assert.Equal(t, "casefang", initResult.ServerInfo.Name)

	require.NoError(t, srv.Handler().Initialized(&glsp.Context{}, &protocol.InitializedParams{}))
	require.NoError(t, srv.Handler().SetTrace(&glsp.Context{}, &protocol.SetTraceParams{Value: protocol.TraceValueMessage}))
	require.NoError(t, srv.Handler().Shutdown(&glsp.Context{}))
}

func TestDidOpen_PublishesDiagnostics(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	notes := &notifications{}

	open(t, srv, notes.context(), testURI, "javascript", "/* 😀 */ const fooBar = 1;\nconst OK = 2;\n")

	published := notes.last(t)
	assert.Equal(t, testURI, published.URI)
	require.NotNil(t, published.Version)
	assert.Equal(t, protocol.UInteger(1), *published.Version)
	require.Len(t, published.Diagnostics, 1)

	diag := published.Diagnostics[0]
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 15},
		End:   protocol.Position{Line: 0, Character: 21},
	}, diag.Range)
	require.NotNil(t, diag.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diag.Severity)
	require.NotNil(t, diag.Source)
	assert.Equal(t, "casefang", *diag.Source)
	require.NotNil(t, diag.Code)
	assert.Equal(t, constnaming.RuleName, diag.Code.Value)
	assert.Equal(t, "Constant fooBar should be styled as FOO_BAR", diag.Message)
}

func TestDidChange_FullSync(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	notes := &notifications{}
	ctx := notes.context()

	open(t, srv, ctx, testURI, "javascript", "const fooBar = 1;\n")
	require.Len(t, notes.last(t).Diagnostics, 1)

	require.NoError(t, srv.Handler().TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "const FOO_BAR = 1;\n"}},
	}))

	published := notes.last(t)
	assert.Empty(t, published.Diagnostics)
	require.NotNil(t, published.Version)
	assert.Equal(t, protocol.UInteger(2), *published.Version)

	require.NoError(t, srv.Handler().TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                3,
		},
		ContentChanges: []any{map[string]any{"text": "const a = 1;\nconst b = 2;\n"}},
	}))
	assert.Len(t, notes.last(t).Diagnostics, 2)
}

func TestDidSave_UsesIncludedText(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	notes := &notifications{}
	ctx := notes.context()

	open(t, srv, ctx, testURI, "javascript", "const FINE = 1;\n")
	assert.Empty(t, notes.last(t).Diagnostics)

	text := "const notFine = 1;\n"
	require.NoError(t, srv.Handler().TextDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Text:         &text,
	}))
	assert.Len(t, notes.last(t).Diagnostics, 1)
}

func TestDidClose_ClearsDiagnostics(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	notes := &notifications{}
	ctx := notes.context()

	open(t, srv, ctx, testURI, "javascript", "const fooBar = 1;\n")

	diags, err := srv.Diagnose(context.Background(), testURI)
	require.NoError(t, err)
	assert.Len(t, diags, 1)

	require.NoError(t, srv.Handler().TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))

	assert.Empty(t, notes.last(t).Diagnostics)

	diags, err = srv.Diagnose(context.Background(), testURI)
	require.NoError(t, err)
	assert.Empty(t, diags, "closed documents are forgotten")
}

func TestCodeAction_QuickFix(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	notes := &notifications{}

	open(t, srv, notes.context(), testURI, "javascript", "const a = 1;\nconst fooBar = 2;\n")

	result, err := srv.Handler().TextDocumentCodeAction(&glsp.Context{}, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 8},
			End:   protocol.Position{Line: 1, Character: 8},
		},
	})
	require.NoError(t, err)

	actions, ok := result.([]protocol.CodeAction)
	require.True(t, ok)
	require.Len(t, actions, 1)

	action := actions[0]
	assert.Equal(t, "Rename fooBar to FOO_BAR", action.Title)
	require.NotNil(t, action.Kind)
	assert.Equal(t, protocol.CodeActionKindQuickFix, *action.Kind)
	require.NotNil(t, action.IsPreferred)
	assert.True(t, *action.IsPreferred)
	require.NotNil(t, action.Edit)

	edits := action.Edit.Changes[testURI]
	require.Len(t, edits, 1)
	assert.Equal(t, "FOO_BAR", edits[0].NewText)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 6},
		End:   protocol.Position{Line: 1, Character: 12},
	}, edits[0].Range)
}

func TestCodeAction_OutsideRange(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	notes := &notifications{}

	open(t, srv, notes.context(), testURI, "javascript", "const fooBar = 2;\n\n\n")

	result, err := srv.Handler().TextDocumentCodeAction(&glsp.Context{}, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Range:        protocol.Range{Start: protocol.Position{Line: 2}, End: protocol.Position{Line: 2}},
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestCodeAction_UnknownDocument(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	result, err := srv.Handler().TextDocumentCodeAction(&glsp.Context{}, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nope.js"},
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDiagnose_LanguageSelection(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	notes := &notifications{}
	ctx := notes.context()

	open(t, srv, ctx, "file:///work/app.py", "python", "maxItems = 3\n")
	assert.Empty(t, notes.last(t).Diagnostics)

	open(t, srv, ctx, "file:///work/view.tsx", "typescriptreact", "const viewName = <div/>;\n")
	assert.Len(t, notes.last(t).Diagnostics, 1)

	open(t, srv, ctx, "file:///work/main.go", "", "package main\n\nconst maxItems = 3\n")
	assert.Len(t, notes.last(t).Diagnostics, 1)

	diags, err := srv.Diagnose(context.Background(), "file:///work/closed.js")
	require.NoError(t, err)
	assert.Empty(t, diags)
}
