package decoding

import (
	"regexp"
	"strings"
)

var (
	rtfParPattern     = regexp.MustCompile(`\\par\b`)
	rtfControlPattern = regexp.MustCompile(`\\[a-zA-Z]+-?[0-9]* ?`)
	rtfHexPattern     = regexp.MustCompile(`\\'[0-9a-fA-F]{2}`)
	rtfGroupPattern   = regexp.MustCompile(`\{\\\*[^{}]*\}`)
)

// stripRTF removes RTF control words, hex escapes, and group braces from
// charset-decoded RTF text. Best-effort: nested destination groups beyond
// one level are left as plain text.
func stripRTF(text string) string {
	if !strings.HasPrefix(strings.TrimSpace(text), `{\rtf`) {
		return text
	}
	text = rtfGroupPattern.ReplaceAllString(text, "")
	text = rtfHexPattern.ReplaceAllString(text, "")
	text = rtfParPattern.ReplaceAllString(text, "\n")
	text = rtfControlPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")
	return text
}
