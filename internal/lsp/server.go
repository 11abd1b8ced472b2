// Package lsp provides a Language Server Protocol server that reports
// top-level constants violating the configured naming style.
package lsp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
	"github.com/Sumatoshi-tech/casefang/pkg/observability"
	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
	"github.com/Sumatoshi-tech/casefang/pkg/version"
)

const (
	serverName       = "casefang"
	diagnosticSource = "casefang"
	opDiagnose       = "lsp.diagnostics"
	opCodeAction     = "lsp.code_action"
)

// ErrNoChecker is returned by NewServer when Deps.Checker is nil.
var ErrNoChecker = errors.New("lsp: checker is required")

// Deps are the collaborators of a Server.
type Deps struct {
	Checker *constnaming.Checker
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.REDMetrics
}

// Server implements the casefang language server.
type Server struct {
	deps    Deps
	store   *documentStore
	handler protocol.Handler
}

// NewServer creates a server with the default handlers.
func NewServer(deps Deps) (*Server, error) {
	if deps.Checker == nil {
		return nil, ErrNoChecker
	}

	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	if deps.Tracer == nil {
		deps.Tracer = noop.NewTracerProvider().Tracer("casefang/lsp")
	}

	srv := &Server{deps: deps, store: newDocumentStore()}

	srv.handler = protocol.Handler{
		Initialize:             srv.initialize,
		Initialized:            srv.initialized,
		Shutdown:               srv.shutdown,
		SetTrace:               srv.setTrace,
		TextDocumentDidOpen:    srv.didOpen,
		TextDocumentDidChange:  srv.didChange,
		TextDocumentDidSave:    srv.didSave,
		TextDocumentDidClose:   srv.didClose,
		TextDocumentCodeAction: srv.codeAction,
	}

	return srv, nil
}

// Handler exposes the protocol handler table.
func (srv *Server) Handler() *protocol.Handler {
	return &srv.handler
}

// Run serves LSP over stdio until the client disconnects.
func (srv *Server) Run() error {
	err := server.NewServer(&srv.handler, serverName, false).RunStdio()
	if err != nil {
		return fmt.Errorf("lsp server: %w", err)
	}

	return nil
}

func (srv *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := srv.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull
	capabilities.CodeActionProvider = protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
	}

	client := "unknown"
	if params != nil && params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}

	srv.deps.Logger.Info("lsp initialize", "client", client)

	serverVersion := version.Version

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &serverVersion,
		},
	}, nil
}

func (srv *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument

	srv.store.set(item.URI, document{
		text:     item.Text,
		language: languageFor(item.LanguageID, uriPath(item.URI), item.Text),
		version:  item.Version,
	})
	srv.deps.Logger.Debug("lsp document opened", "uri", item.URI, "open_documents", srv.store.size())
	srv.publishDiagnostics(ctx, item.URI)

	return nil
}

func (srv *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	text, ok := lastFullText(params.ContentChanges)
	if !ok {
		return nil
	}

	if srv.store.update(uri, text, params.TextDocument.Version) {
		srv.publishDiagnostics(ctx, uri)
	}

	return nil
}

func (srv *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	doc, ok := srv.store.get(uri)
	if !ok {
		return nil
	}

	if params.Text != nil {
		srv.store.update(uri, *params.Text, doc.version)
	}

	srv.publishDiagnostics(ctx, uri)

	return nil
}

func (srv *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	srv.store.delete(uri)
	srv.deps.Logger.Debug("lsp document closed", "uri", uri, "open_documents", srv.store.size())

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})

	return nil
}

func (srv *Server) codeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	ctx := context.Background()
	started := time.Now()
	status := observability.StatusOK

	defer srv.deps.Metrics.TrackInflight(ctx, opCodeAction)()
	defer func() { srv.deps.Metrics.RecordRequest(ctx, opCodeAction, status, time.Since(started)) }()

	uri := params.TextDocument.URI

	doc, ok := srv.store.get(uri)
	if !ok {
		return []protocol.CodeAction{}, nil
	}

	diags, err := srv.check(ctx, uri, doc)
	if err != nil {
		status = observability.StatusError

		return nil, err
	}

	index := newLineIndex(doc.text)
	kind := protocol.CodeActionKindQuickFix
	preferred := true

	actions := []protocol.CodeAction{}

	for _, diag := range diags {
		if diag.Fix == nil {
			continue
		}

		converted := toProtocol(index, diag)
		if !overlaps(converted.Range, params.Range) {
			continue
		}

		actions = append(actions, protocol.CodeAction{
			Title:       fmt.Sprintf("Rename %s to %s", diag.Name, diag.Expected),
			Kind:        &kind,
			Diagnostics: []protocol.Diagnostic{converted},
			IsPreferred: &preferred,
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{
					uri: {{
						Range: protocol.Range{
							Start: index.position(diag.Fix.Start),
							End:   index.position(diag.Fix.End),
						},
						NewText: diag.Fix.Replacement,
					}},
				},
			},
		})
	}

	return actions, nil
}

// Diagnose checks the open document at uri and returns protocol diagnostics.
func (srv *Server) Diagnose(ctx context.Context, uri string) ([]protocol.Diagnostic, error) {
	started := time.Now()
	status := observability.StatusOK

	defer srv.deps.Metrics.TrackInflight(ctx, opDiagnose)()
	defer func() { srv.deps.Metrics.RecordRequest(ctx, opDiagnose, status, time.Since(started)) }()

	doc, ok := srv.store.get(uri)
	if !ok {
		return []protocol.Diagnostic{}, nil
	}

	diags, err := srv.check(ctx, uri, doc)
	if err != nil {
		status = observability.StatusError

		return nil, err
	}

	index := newLineIndex(doc.text)
	out := make([]protocol.Diagnostic, 0, len(diags))

	for _, diag := range diags {
		out = append(out, toProtocol(index, diag))
	}

	return out, nil
}

func (srv *Server) check(ctx context.Context, uri string, doc document) ([]constnaming.Diagnostic, error) {
	ctx, span := srv.deps.Tracer.Start(ctx, "casefang.lsp.diagnose", trace.WithAttributes(
		attribute.String("casefang.uri", uri),
		attribute.String("casefang.language", string(doc.language)),
	))
	defer span.End()

	if !doc.language.Supported() {
		return nil, nil
	}

	res, err := srv.deps.Checker.CheckLanguage(ctx, doc.language, uriPath(uri), []byte(doc.text))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("check %s: %w", uri, err)
	}

	span.SetAttributes(attribute.Int("casefang.violations", len(res.Diagnostics)))

	return res.Diagnostics, nil
}

func (srv *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	diags, err := srv.Diagnose(context.Background(), uri)
	if err != nil {
		srv.deps.Logger.Warn("diagnostics failed", "uri", uri, "error", err)

		diags = []protocol.Diagnostic{}
	}

	params := &protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: diags}

	if doc, ok := srv.store.get(uri); ok && doc.version >= 0 {
		docVersion := protocol.UInteger(doc.version)
		params.Version = &docVersion
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

func toProtocol(index lineIndex, diag constnaming.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	source := diagnosticSource

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: index.position(diag.StartByte),
			End:   index.position(diag.EndByte),
		},
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: diag.Rule},
		Source:   &source,
		Message:  diag.Message,
	}
}

// lastFullText returns the text of the last full-document change.
func lastFullText(changes []any) (string, bool) {
	for idx := len(changes) - 1; idx >= 0; idx-- {
		switch change := changes[idx].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return change.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				return change.Text, true
			}
		case map[string]any:
			if _, ranged := change["range"]; ranged {
				continue
			}

			if text, ok := change["text"].(string); ok {
				return text, true
			}
		}
	}

	return "", false
}

// languageFor maps an LSP language identifier, falling back to detection by
// file name and content.
func languageFor(languageID, path, text string) sourcelang.Language {
	switch languageID {
	case "javascript", "javascriptreact":
		return sourcelang.JavaScript
	case "typescript":
		return sourcelang.TypeScript
	case "typescriptreact":
		return sourcelang.TSX
	case "go":
		return sourcelang.Go
	}

	return sourcelang.Detect(path, []byte(text))
}

// uriPath returns the file system path of a file:// URI, or the URI itself.
func uriPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return uri
	}

	return parsed.Path
}
