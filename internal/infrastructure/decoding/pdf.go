package decoding

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// decodePDF extracts plain text page by page and reports the page count
// for diagnostics. The pdf library panics on some malformed inputs, so
// extraction runs under a recover guard.
func decodePDF(raw []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf extraction panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}

	pages = reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), pages, nil
}
