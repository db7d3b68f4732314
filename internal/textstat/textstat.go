// Package textstat derives basic local features from message text,
// used for lightweight telemetry without persisting message content.
package textstat

import (
	"strings"
	"unicode/utf8"
)

// Features holds basic text features of an inbound message.
type Features struct {
	Bytes int
	Runes int
	Words int
}

// Count computes byte, rune, and word counts for the input string.
// Words are split on Unicode whitespace.
func Count(s string) Features {
	return Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
}
