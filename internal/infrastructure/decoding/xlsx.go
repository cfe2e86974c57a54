package decoding

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// decodeXLSX flattens a workbook to text: cells joined by tabs, one row
// per line, sheets separated by a blank line. Tab-delimited rows flow
// naturally into the downstream table detector.
func decodeXLSX(raw []byte) (string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	var sb strings.Builder
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			continue
		}
		wroteRow := false
		for _, row := range rows {
			line := strings.TrimRight(strings.Join(row, "\t"), "\t")
			if strings.TrimSpace(line) == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString("\n")
			wroteRow = true
		}
		if wroteRow {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
