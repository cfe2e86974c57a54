package decoding

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	goword "github.com/VantageDataChat/GoWord"
)

// decodeDocx extracts text from a .docx buffer. The primary extractor is
// goword; when its result is empty or under 10 characters the document XML
// is read straight out of the ZIP container and stripped of markup.
func decodeDocx(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("docx extraction panic: %v", r)
		}
	}()

	doc, primaryErr := goword.OpenFromBytes(raw)
	if primaryErr == nil {
		text = doc.ExtractText()
		if len(strings.TrimSpace(text)) >= 10 {
			return text, nil
		}
	}

	text, xmlErr := docxTextFromZip(raw)
	if xmlErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if primaryErr != nil {
		return "", fmt.Errorf("docx extract: %w", primaryErr)
	}
	if xmlErr != nil {
		return "", fmt.Errorf("docx xml fallback: %w", xmlErr)
	}
	return "", fmt.Errorf("docx extract: document produced no text")
}

// docxTextFromZip reads word/document.xml from the DOCX container and
// collects the character data of w:t runs, breaking lines on paragraph
// ends. Entities are resolved by the XML decoder.
func docxTextFromZip(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("open document.xml: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("document.xml not found in container")
	}
	defer docXML.Close()

	decoder := xml.NewDecoder(docXML)
	var sb strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
