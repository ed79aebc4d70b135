package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/leofalp/braveagent/internal/jsonschema"
	"github.com/leofalp/braveagent/internal/utils"
	"github.com/leofalp/braveagent/providers/ai"
)

// Tool binds a name and description to a strongly-typed Go function. The
// parameter schema is derived from I by reflection.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
}

// GenericTool is the type-erased view of a [Tool] used by catalogs and the
// agent runtime.
type GenericTool interface {
	ToolInfo() ai.ToolDescription
	// Call runs the tool on JSON-encoded arguments and returns the encoded
	// result. String results are returned as is.
	Call(ctx context.Context, inputJson string) (string, error)
}

type funcToolOptions struct {
	Description string
}

// WithDescription sets the description the model reads when deciding whether
// to call the tool.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Description = description
	}
}

// NewTool constructs a new [Tool] with the given name and handler function.
//
// Example:
//
//	search := tool.NewTool("search_web", searchFunc,
//	    tool.WithDescription("Search the web with Brave Search."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{}
	for _, option := range options {
		option(toolOptions)
	}

	parameters, err := jsonschema.GenerateJSONSchema[I]()
	if err != nil {
		slog.Error("invalid tool parameter schema, falling back to a plain object", "tool", name, "error", err)
		parameters = &jsonschema.Schema{Type: "object"}
	}

	return &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Parameters:  parameters,
		Function:    function,
	}
}

// ToolInfo returns the description used to advertise this tool to a provider.
func (t *Tool[I, O]) ToolInfo() ai.ToolDescription {
	return ai.ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call parses inputJson into I, runs the function and serialises its output.
func (t *Tool[I, O]) Call(ctx context.Context, inputJson string) (string, error) {
	parsedInput, err := utils.ParseStringAs[I](inputJson)
	if err != nil {
		return "", fmt.Errorf("invalid arguments for tool %s: %w", t.Name, err)
	}

	output, err := t.Function(ctx, parsedInput)
	if err != nil {
		return "", err
	}

	if s, ok := any(output).(string); ok {
		return s, nil
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("encoding output of tool %s: %w", t.Name, err)
	}
	return string(outputBytes), nil
}
