package decoding

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"
)

var (
	errEmptyAfterCleanup = errors.New("no content left after cleanup")
	errNoCleanDecode     = errors.New("no encoding in the priority list produced a clean decode")
)

// encodingPriority is tried in order when charset auto-detection is not
// confident. The list front-loads the encodings Chinese-language uploads
// actually use.
var encodingPriority = []string{
	"utf-8", "gbk", "gb2312", "big5", "utf-16le", "utf-16be", "gb18030",
}

// decodePlain decodes a plain-text buffer. If no candidate produces a
// clean decode, the buffer is force-decoded as UTF-8, lossy but
// deterministic; the second return value reports that forced recovery.
func decodePlain(raw []byte) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	if enc, name, certain := charset.DetermineEncoding(raw, ""); certain && enc != nil {
		if decoded, err := enc.NewDecoder().Bytes(raw); err == nil {
			if text := string(decoded); isCleanDecode(text) || name == "utf-8" {
				return text, false
			}
		}
	}

	for _, name := range encodingPriority {
		if name == "utf-8" {
			if utf8.Valid(raw) {
				if text := string(raw); isCleanDecode(text) {
					return text, false
				}
			}
			continue
		}
		enc, err := htmlindex.Get(name)
		if err != nil {
			continue
		}
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		if text := string(decoded); isCleanDecode(text) {
			return text, false
		}
	}

	// Forced UTF-8: recovery from the unsupported-encoding condition.
	return strings.ToValidUTF8(string(raw), ""), true
}

// isCleanDecode accepts a candidate decode when it contains no replacement
// characters and at least 70% of its characters are CJK text, printable
// ASCII, or whitespace.
func isCleanDecode(text string) bool {
	if text == "" {
		return false
	}
	total := 0
	plausible := 0
	for _, r := range text {
		total++
		switch {
		case r == utf8.RuneError:
			return false
		case isPlausibleRune(r):
			plausible++
		}
	}
	return float64(plausible) >= 0.7*float64(total)
}

func isPlausibleRune(r rune) bool {
	switch {
	case r >= 0x20 && r <= 0x7E: // printable ASCII
		return true
	case unicode.IsSpace(r):
		return true
	case unicode.Is(unicode.Han, r):
		return true
	case r >= 0x3000 && r <= 0x303F: // CJK punctuation
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // fullwidth forms
		return true
	}
	return false
}

// postProcess is applied to every decode result: BOM removal, newline
// normalization, control-character and replacement-character stripping,
// and NFC normalization.
func postProcess(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || (r >= 0x7F && r <= 0x9F):
			// C0/C1 controls dropped.
		case r == utf8.RuneError || r == '\uFEFF':
			// replacement characters and stray BOMs dropped.
		default:
			b.WriteRune(r)
		}
	}
	return norm.NFC.String(b.String())
}
