package decoding

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
)

// decodeDoc recovers text from a legacy .doc (OLE2 compound file) buffer.
// It locates the WordDocument stream and scans it for runs of plausible
// UTF-16LE text; full piece-table reconstruction is out of scope for the
// fallback path.
func decodeDoc(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("doc extraction panic: %v", r)
		}
	}()

	container, err := mscfb.New(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("open ole2 container: %w", err)
	}

	var wordDoc []byte
	for {
		entry, nextErr := container.Next()
		if nextErr != nil {
			break
		}
		if entry.Name == "WordDocument" {
			wordDoc, _ = io.ReadAll(entry)
			break
		}
	}
	if len(wordDoc) == 0 {
		return "", fmt.Errorf("WordDocument stream not found")
	}

	text = scanUTF16Runs(wordDoc)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no recoverable text in WordDocument stream")
	}
	return text, nil
}

// minimum characters for a UTF-16 run to count as text rather than
// binary noise.
const minDocRun = 4

func scanUTF16Runs(data []byte) string {
	var sb strings.Builder
	var run []uint16

	flush := func() {
		if len(run) >= minDocRun {
			sb.WriteString(string(utf16.Decode(run)))
			sb.WriteString("\n")
		}
		run = run[:0]
	}

	for i := 0; i+1 < len(data); i += 2 {
		u := uint16(data[i]) | uint16(data[i+1])<<8
		r := rune(u)
		switch {
		case u == 0x000D || u == 0x0007: // paragraph and cell marks
			flush()
		case isDocTextRune(r):
			run = append(run, u)
		default:
			flush()
		}
	}
	flush()
	return sb.String()
}

func isDocTextRune(r rune) bool {
	if r == '\t' || r == ' ' {
		return true
	}
	if r >= 0x20 && r <= 0x7E {
		return true
	}
	if unicode.Is(unicode.Han, r) {
		return true
	}
	return (r >= 0x3000 && r <= 0x303F) || (r >= 0xFF00 && r <= 0xFFEF)
}
