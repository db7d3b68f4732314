package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/petasbytes/nanda-agents/internal/memstore"
)

type RememberInput struct {
	Text string `json:"text" jsonschema_description:"Text to save as a note."`
}

var RememberInputSchema = GenerateSchema[RememberInput]()

// Remember returns the note-saving tool. The note is appended and the
// document persisted before the confirmation is returned; a failed
// write is the one tool error that propagates, so a remembered note is
// never silently lost.
func Remember(st Store) Definition {
	return Definition{
		Name:        "remember",
		Description: "Save a short text note to durable memory with a UTC timestamp.",
		InputSchema: RememberInputSchema,
		Run: func(_ context.Context, arg string) (string, error) {
			text := strings.TrimSpace(arg)
			doc := st.Doc()
			doc.Notes = append(doc.Notes, memstore.Note{
				Text: text,
				TS:   st.Now().UTC().Format(time.RFC3339),
			})
			if err := st.Persist(); err != nil {
				return "", fmt.Errorf("persist note: %w", err)
			}
			return fmt.Sprintf("Saved: %q", text), nil
		},
	}
}
