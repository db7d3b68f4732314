package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/petasbytes/nanda-agents/internal/memstore"
)

type RecallInput struct {
	Query string `json:"query,omitempty" jsonschema_description:"Optional case-insensitive substring filter; empty returns the most recent notes."`
}

var RecallInputSchema = GenerateSchema[RecallInput]()

// recallMax caps how many notes a recall reply lists.
const recallMax = 5

// Recall returns the note-search tool. A non-empty query filters notes
// by case-insensitive substring in original order; an empty query
// selects the newest notes. Either way at most the last recallMax hits
// are listed, oldest first, newest last.
func Recall(st Store) Definition {
	return Definition{
		Name:        "recall",
		Description: "Search saved notes by substring, or list the most recent notes when no query is given.",
		InputSchema: RecallInputSchema,
		Run: func(_ context.Context, arg string) (string, error) {
			q := strings.ToLower(strings.TrimSpace(arg))
			notes := st.Doc().Notes

			var hits []memstore.Note
			if q != "" {
				for _, n := range notes {
					if strings.Contains(strings.ToLower(n.Text), q) {
						hits = append(hits, n)
					}
				}
			} else {
				hits = notes
			}
			if len(hits) == 0 {
				return "No memory found.", nil
			}
			if len(hits) > recallMax {
				hits = hits[len(hits)-recallMax:]
			}

			lines := make([]string, 0, len(hits)+1)
			lines = append(lines, "Recent memory:")
			for _, h := range hits {
				lines = append(lines, fmt.Sprintf("- %s (@%s)", h.Text, h.TS))
			}
			return strings.Join(lines, "\n"), nil
		},
	}
}
