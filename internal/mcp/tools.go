package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
)

// Tool names.
const (
	ToolNameConvert = "casefang_convert"
	ToolNameDetect  = "casefang_detect"
	ToolNameCheck   = "casefang_check"
)

// MaxCodeInputBytes bounds inline code input.
const MaxCodeInputBytes = 1 << 20

// Input validation errors.
var (
	ErrEmptyIdentifier = errors.New("identifier parameter is required and must not be empty")
	ErrEmptyTarget     = errors.New("target parameter is required and must not be empty")
	ErrEmptyCode       = errors.New("code parameter is required and must not be empty")
	ErrCodeTooLarge    = errors.New("code input exceeds maximum size")
	ErrUnknownLanguage = errors.New("language could not be determined; pass filename or language")
)

// ConvertInput is the input of casefang_convert.
type ConvertInput struct {
	Identifier string `json:"identifier,omitempty" jsonschema:"identifier to convert"`
	Target     string `json:"target,omitempty"     jsonschema:"target style: camelCase, PascalCase, snake_case or SCREAMING_SNAKE_CASE"`
}

// DetectInput is the input of casefang_detect.
type DetectInput struct {
	Identifier string `json:"identifier,omitempty" jsonschema:"identifier to classify"`
}

// CheckInput is the input of casefang_check.
type CheckInput struct {
	Code                 string   `json:"code,omitempty"                   jsonschema:"source code to check"`
	Filename             string   `json:"filename,omitempty"               jsonschema:"file name used for language detection and the file pattern"`
	Language             string   `json:"language,omitempty"               jsonschema:"language: javascript, typescript, tsx or go"`
	Casing               string   `json:"casing,omitempty"                 jsonschema:"required style for constants (default: configured casing)"`
	SkipDeclarationTypes []string `json:"skip_declaration_types,omitempty" jsonschema:"skip constants initialized with string, number, boolean, array, object or function values"`
	IncludeExported      bool     `json:"include_exported,omitempty"       jsonschema:"also check exported declarations"`
	Fix                  bool     `json:"fix,omitempty"                    jsonschema:"return the source with fixes applied"`
}

// ToolOutput is the structured output of every tool.
type ToolOutput struct {
	Data any `json:"data"`
}

// ConvertOutput is the data of casefang_convert.
type ConvertOutput struct {
	Identifier  string       `json:"identifier"`
	SourceStyle casing.Style `json:"source_style"`
	Target      casing.Style `json:"target"`
	Result      string       `json:"result"`
}

// DetectOutput is the data of casefang_detect.
type DetectOutput struct {
	Identifier string       `json:"identifier"`
	Style      casing.Style `json:"style"`
	Words      []string     `json:"words"`
}

// CheckOutput is the data of casefang_check.
type CheckOutput struct {
	constnaming.Result

	FixedCode    string `json:"fixed_code,omitempty"`
	FixesApplied int    `json:"fixes_applied"`
}

func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
		IsError: true,
	}, ToolOutput{}, nil
}

func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, ToolOutput{Data: value}, nil
}

func handleConvert(_ context.Context, _ *mcpsdk.CallToolRequest, input ConvertInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.Identifier == "" {
		return errorResult(ErrEmptyIdentifier)
	}

	if strings.TrimSpace(input.Target) == "" {
		return errorResult(ErrEmptyTarget)
	}

	target, err := casing.ParseStyle(input.Target)
	if err != nil {
		return errorResult(err)
	}

	converted, err := casing.Convert(input.Identifier, target)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(ConvertOutput{
		Identifier:  input.Identifier,
		SourceStyle: casing.Detect(input.Identifier),
		Target:      target,
		Result:      converted,
	})
}

func handleDetect(_ context.Context, _ *mcpsdk.CallToolRequest, input DetectInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.Identifier == "" {
		return errorResult(ErrEmptyIdentifier)
	}

	style := casing.Detect(input.Identifier)

	return jsonResult(DetectOutput{
		Identifier: input.Identifier,
		Style:      style,
		Words:      casing.Segment(input.Identifier, style),
	})
}

func (s *Server) handleCheck(ctx context.Context, _ *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.Code == "" {
		return errorResult(ErrEmptyCode)
	}

	if len(input.Code) > MaxCodeInputBytes {
		return errorResult(fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(input.Code), MaxCodeInputBytes))
	}

	lang := sourcelang.Parse(input.Language)
	if lang == sourcelang.Unknown && input.Filename != "" {
		lang = sourcelang.Detect(input.Filename, []byte(input.Code))
	}

	if !lang.Supported() {
		return errorResult(ErrUnknownLanguage)
	}

	opts, err := s.checkOptions(input)
	if err != nil {
		return errorResult(err)
	}

	checker, err := constnaming.NewChecker(opts)
	if err != nil {
		return errorResult(err)
	}

	src := []byte(input.Code)

	res, err := checker.CheckLanguage(ctx, lang, input.Filename, src)
	if err != nil {
		return errorResult(err)
	}

	out := CheckOutput{Result: res}

	if input.Fix {
		fixed, applied := constnaming.ApplyFixes(src, res.Diagnostics)
		out.FixedCode = string(fixed)
		out.FixesApplied = applied
	}

	s.logger.DebugContext(ctx, "mcp check", "language", lang, "violations", len(res.Diagnostics))

	return jsonResult(out)
}

func (s *Server) checkOptions(input CheckInput) (constnaming.Options, error) {
	opts := s.defaults
	opts.SkipDeclarationTypes = append([]constnaming.DeclarationType(nil), opts.SkipDeclarationTypes...)

	if input.Casing != "" {
		style, err := casing.ParseStyle(input.Casing)
		if err != nil {
			return constnaming.Options{}, err
		}

		opts.Casing = style
	}

	if input.SkipDeclarationTypes != nil {
		opts.SkipDeclarationTypes = opts.SkipDeclarationTypes[:0]

		for _, name := range input.SkipDeclarationTypes {
			dt, err := constnaming.ParseDeclarationType(name)
			if err != nil {
				return constnaming.Options{}, err
			}

			opts.SkipDeclarationTypes = append(opts.SkipDeclarationTypes, dt)
		}
	}

	if input.IncludeExported {
		opts.IncludeExported = true
	}

	if input.Filename == "" {
		opts.Pattern = ""
	}

	return opts, nil
}
