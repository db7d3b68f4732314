package agent

import (
	"fmt"
	"strings"
)

// responseTag marks composed output as agent-generated.
const responseTag = "[nanda] "

// refusal is the fixed reply to prompt-injection attempts.
const refusal = "I can't ignore my instructions, but happy to help."

// replacements is the fixed substitution table applied to messages
// that matched no command. Literal substrings only; everything else in
// the message passes through verbatim.
var replacements = strings.NewReplacer(
	"hello", "greetings",
	"Hello", "Greetings",
	"goodbye", "farewell",
)

// memoryHintMax is how many recent notes the composed reply mentions.
const memoryHintMax = 2

// compose produces the fallback reply for a message that matched no
// command: the substitution pass (or the refusal) plus a hint naming
// the most recently saved notes.
func (a *Agent) compose(message string) string {
	var resp string
	if strings.Contains(strings.ToLower(message), "ignore previous") {
		resp = refusal
	} else {
		resp = replacements.Replace(message)
	}

	hint := ""
	if notes := a.doc.Notes; len(notes) > 0 {
		recent := notes
		if len(recent) > memoryHintMax {
			recent = recent[len(recent)-memoryHintMax:]
		}
		texts := make([]string, len(recent))
		for i, n := range recent {
			texts[i] = n.Text
		}
		hint = fmt.Sprintf(" (FYI I remember: %s)", strings.Join(texts, ", "))
	}
	return responseTag + resp + hint
}
