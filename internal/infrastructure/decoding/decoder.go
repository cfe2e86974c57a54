// Package decoding turns raw uploaded file buffers into clean Unicode
// text. Binary formats go through structured extractors; plain-text
// formats go through charset detection with a fixed-priority fallback
// list tuned for Chinese encodings.
package decoding

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

type Decoder struct{}

func New() *Decoder {
	return &Decoder{}
}

// Decode dispatches on the declared file extension and applies the common
// post-processing pass. The returned string is non-empty; a blank result
// yields ErrEmptyContent.
func (d *Decoder) Decode(_ context.Context, raw []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text       string
		err        error
		forcedUTF8 bool
	)
	switch ext {
	case ".docx":
		text, err = decodeDocx(raw)
	case ".doc":
		text, err = decodeDoc(raw)
	case ".pdf":
		var pages int
		text, pages, err = decodePDF(raw)
		if err == nil {
			slog.Debug("pdf_decoded", "filename", filename, "pages", pages)
		}
	case ".xlsx":
		text, err = decodeXLSX(raw)
	default:
		// .txt, .rtf, and unknown extensions take the charset path.
		text, forcedUTF8 = decodePlain(raw)
		if forcedUTF8 {
			slog.Warn("forced_utf8_decode", "filename", filename)
		}
		if ext == ".rtf" {
			text = stripRTF(text)
		}
	}
	if err != nil {
		return "", domain.WrapError(domain.ErrDecode, "decode "+strings.TrimPrefix(ext, "."), err)
	}

	text = postProcess(text)
	if strings.TrimSpace(text) == "" {
		if forcedUTF8 {
			return "", domain.WrapError(domain.ErrUnsupportedEncoding, "decode", errNoCleanDecode)
		}
		return "", domain.WrapError(domain.ErrEmptyContent, "decode", errEmptyAfterCleanup)
	}
	return text, nil
}
