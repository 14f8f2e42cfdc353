package llm

import (
	"github.com/invopop/jsonschema"
)

// Tool is a declared operation the completion provider may request instead of
// answering with free text.
type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// ReflectSchema builds a tool parameter schema from a Go struct, inlined
// rather than referenced so the provider sees a self-contained object.
func ReflectSchema(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(v)
}

// ToolCall is the provider's structured request to invoke one declared
// operation. Arguments is the raw JSON blob as the provider produced it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Completion is the provider's answer to one turn: either free text or one or
// more tool calls.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	roleSystem = "system"
	roleUser   = "user"
)

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

type requestBody struct {
	Model    string     `json:"model"`
	Messages []message  `json:"messages"`
	Tools    []wireTool `json:"tools,omitempty"`
}

type responseBody struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				ID       string `json:"id"`
				Type     string `json:"type"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}
