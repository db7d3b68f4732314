// Package tools defines the agent's slash-command tool surface.
//
// Includes:
//   - Definition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Tools: calc, remember, recall over the shared memory document.
//
// Handlers take the raw argument text after the command word; the
// schemas describe the same inputs structurally for the tool catalog
// endpoint. Only remember can fail with a Go error (a refused durable
// write); every other failure is reported inline as result text.
package tools

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"

	"github.com/petasbytes/nanda-agents/internal/memstore"
)

// Definition describes one tool: its name as typed after the slash,
// a human description, the JSON schema of its input, and the handler.
type Definition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Run         func(ctx context.Context, arg string) (string, error)
}

// Store is the slice of agent state the tools need: the live memory
// document plus a way to persist it. The agent serializes access, so
// handlers may mutate the document without further locking.
type Store interface {
	Doc() *memstore.Document
	Persist() error
	Now() time.Time
}

// GenerateSchema derives a JSON Schema for T's fields.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{Properties: schema.Properties}
}

// Registry returns all tool definitions wired for the agent.
func Registry(st Store) []Definition {
	return []Definition{Calc(), Remember(st), Recall(st)}
}
