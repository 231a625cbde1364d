package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxDiscordMessageLen = 2000
	SafeChunkLen         = 1900

	continuedMarker = "\n*(continued...)*"
	endMarker       = "\n*(end of response)*"
)

// BuildLongMessages chunks a message for Discord. The chunks concatenate back
// to the input text; only the mention and continuation markers are added.
func BuildLongMessages(message string, userID string) []string {
	mention := ""
	if userID != "" {
		mention = fmt.Sprintf("<@%s> ", userID)
	}

	firstMessage := mention + message
	if utf8.RuneCountInString(firstMessage) <= MaxDiscordMessageLen {
		return []string{firstMessage}
	}

	chunks := splitMessage(message, SafeChunkLen-utf8.RuneCountInString(mention), SafeChunkLen)
	chunks[0] = mention + chunks[0]
	for i := 0; i < len(chunks)-1; i++ {
		chunks[i] += continuedMarker
	}
	if len(chunks) > 1 {
		chunks[len(chunks)-1] += endMarker
	}
	return chunks
}

// splitMessage cuts text into pieces of at most firstLimit runes for the first
// piece and limit runes after that, preferring paragraph, line, then word breaks.
func splitMessage(text string, firstLimit, limit int) []string {
	var out []string
	max := firstLimit
	for utf8.RuneCountInString(text) > max {
		cut := cutPoint(text, max)
		out = append(out, text[:cut])
		text = text[cut:]
		max = limit
	}
	if text != "" || len(out) == 0 {
		out = append(out, text)
	}
	return out
}

// cutPoint returns a byte offset no further than limit runes into text.
func cutPoint(text string, limit int) int {
	hard := len(text)
	runes := 0
	for i := range text {
		if runes == limit {
			hard = i
			break
		}
		runes++
	}
	window := text[:hard]

	for _, sep := range []string{"\n\n", "\n", " "} {
		if idx := strings.LastIndex(window, sep); idx > hard/2 {
			return idx + len(sep)
		}
	}
	return hard
}

// PersonaListing formats the persona descriptions and cautions as one message.
func PersonaListing(lines [][2]string, cautions []string) string {
	var b strings.Builder
	b.WriteString("**Experts**\n")
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("• **%s** — %s\n", l[0], l[1]))
	}
	if len(cautions) > 0 {
		b.WriteString("\n**⚠️ 使用上の注意**\n")
		for _, c := range cautions {
			b.WriteString("• " + c + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
