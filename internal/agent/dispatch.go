package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// commandRe matches a leading slash, an alphabetic command word, and
// the rest of the line as the argument. A slash followed by anything
// non-alphabetic is not a command at all and falls through to
// composition; an alphabetic word that is not a known tool yields an
// "Unknown command" reply.
var commandRe = regexp.MustCompile(`^/([a-zA-Z]+)\s*(.*)$`)

// dispatch routes a slash command to its tool. The bool reports
// whether the message was a command; when false the caller composes a
// fallback reply instead.
func (a *Agent) dispatch(ctx context.Context, message string) (string, bool, error) {
	m := commandRe.FindStringSubmatch(strings.TrimSpace(message))
	if m == nil {
		return "", false, nil
	}
	name, arg := strings.ToLower(m[1]), m[2]
	for _, def := range a.tools {
		if def.Name == name {
			out, err := def.Run(ctx, arg)
			if err != nil {
				return "", true, err
			}
			return out, true, nil
		}
	}
	return fmt.Sprintf("Unknown command: /%s", name), true, nil
}
