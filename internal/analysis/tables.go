package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

const tableConfidence = 0.85

var (
	numberedRowPattern = regexp.MustCompile(`^[0-9０-９]+[.、．)）]`)
	cjkNumeralPattern  = regexp.MustCompile(`^[一二三四五六七八九十百]+[、.．]`)
	multiSpacePattern  = regexp.MustCompile(`\s{2,}`)
)

// tableRegion is a contiguous run of lines heuristically identified as
// tabular data.
type tableRegion struct {
	startLine int
	title     string
	lines     []string
}

// extractTables runs the title-triggered and delimiter-triggered detectors
// over the decoded text. Lines consumed by a title-triggered region are not
// offered to the delimiter detector again.
func extractTables(docID, text string, rules *RuleSet) []domain.TableData {
	lines := strings.Split(text, "\n")
	consumed := make([]bool, len(lines))

	var regions []tableRegion
	regions = append(regions, titleTriggeredRegions(lines, consumed, rules)...)
	regions = append(regions, delimiterTriggeredRegions(lines, consumed)...)

	var tables []domain.TableData
	for _, region := range regions {
		if table, ok := buildTable(docID, len(tables)+1, region, rules); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

// titleTriggeredRegions opens a region on a line carrying a table cue plus
// a colon and closes it on the next blank line.
func titleTriggeredRegions(lines []string, consumed []bool, rules *RuleSet) []tableRegion {
	var regions []tableRegion
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || !isTableTitleLine(line, rules) {
			continue
		}
		region := tableRegion{startLine: i, title: strings.TrimRight(line, ":：")}
		consumed[i] = true
		j := i + 1
		for ; j < len(lines); j++ {
			body := strings.TrimSpace(lines[j])
			if body == "" {
				break
			}
			region.lines = append(region.lines, body)
			consumed[j] = true
		}
		if len(region.lines) > 0 {
			regions = append(regions, region)
		}
		i = j
	}
	return regions
}

// delimiterTriggeredRegions groups consecutive delimiter-bearing lines,
// closing on a blank line or on the first non-qualifying line after at
// least one qualifying one. Single-line runs are discarded as noise.
func delimiterTriggeredRegions(lines []string, consumed []bool) []tableRegion {
	var regions []tableRegion
	var current *tableRegion
	close := func() {
		if current != nil && len(current.lines) >= 2 {
			regions = append(regions, *current)
		}
		current = nil
	}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if consumed[i] || line == "" || !isTableLine(line) {
			close()
			continue
		}
		if current == nil {
			current = &tableRegion{startLine: i}
		}
		current.lines = append(current.lines, line)
	}
	close()
	return regions
}

func isTableTitleLine(line string, rules *RuleSet) bool {
	hasColon := strings.Contains(line, ":") || strings.Contains(line, "：")
	return hasColon && containsAny(line, rules.TableCues)
}

// isTableLine reports whether a single line looks tabular: two or more
// pipes or tabs, a Chinese key/value-plus-enumerator mix, or a numbered
// prefix.
func isTableLine(line string) bool {
	if strings.Count(line, "|") >= 2 || strings.Count(line, "\t") >= 2 {
		return true
	}
	if strings.Contains(line, "：") && strings.Contains(line, "、") {
		return true
	}
	if numberedRowPattern.MatchString(line) || cjkNumeralPattern.MatchString(line) {
		return true
	}
	return false
}

func buildTable(docID string, seq int, region tableRegion, rules *RuleSet) (domain.TableData, bool) {
	rows := region.lines
	title := region.title

	// A leading line that itself carries a table cue or colon is promoted
	// to the caption instead of becoming a data row.
	if title == "" && len(rows) > 1 {
		first := rows[0]
		if containsAny(first, rules.TableCues) || strings.HasSuffix(first, ":") || strings.HasSuffix(first, "：") {
			title = strings.TrimRight(first, ":：")
			rows = rows[1:]
		}
	}

	var data [][]domain.TableCell
	columns := 0
	for _, line := range rows {
		cells := splitCells(line)
		if len(cells) < 2 {
			continue
		}
		if len(cells) > columns {
			columns = len(cells)
		}
		row := make([]domain.TableCell, len(cells))
		for i, value := range cells {
			row[i] = domain.TableCell{
				Value:   value,
				Type:    classifyCell(value),
				Colspan: 1,
				Rowspan: 1,
			}
		}
		data = append(data, row)
	}
	if len(data) == 0 {
		return domain.TableData{}, false
	}

	hasHeader := title == ""
	if hasHeader {
		for i := range data[0] {
			data[0][i].IsHeader = true
		}
	}

	return domain.TableData{
		ID: fmt.Sprintf("table_%s_%d", docID, seq),
		Position: domain.BlockPosition{
			Page:   1,
			X:      layoutLeftMargin,
			Y:      layoutTopOffset + float64(region.startLine)*25.0,
			Width:  layoutBlockWidth,
			Height: float64(len(data)) * 25.0,
		},
		Structure: domain.TableStructure{
			Rows:      len(data),
			Columns:   columns,
			HasHeader: hasHeader,
			HasFooter: false,
		},
		Data: data,
		Metadata: domain.TableMetadata{
			Title:      title,
			Confidence: tableConfidence,
			DataTypes:  columnTypes(data, columns, hasHeader),
		},
	}, true
}

// splitCells tries delimiters in priority order: pipes, tabs, a full-width
// colon (yielding exactly a key/value pair), then runs of two or more
// spaces. A line with no applicable delimiter stays a single cell.
func splitCells(line string) []string {
	switch {
	case strings.Count(line, "|") >= 2:
		return trimCells(strings.Split(strings.Trim(line, "|"), "|"))
	case strings.Count(line, "\t") >= 2:
		return trimCells(strings.Split(line, "\t"))
	case strings.Contains(line, "："):
		return trimCells(strings.SplitN(line, "：", 2))
	}
	parts := trimCells(multiSpacePattern.Split(line, -1))
	if len(parts) > 1 {
		return parts
	}
	return []string{strings.TrimSpace(line)}
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006年1月2日",
	"Jan 2, 2006",
	"January 2, 2006",
}

// classifyCell infers a cell's data type. Priority: empty, boolean,
// number, date, text.
func classifyCell(value string) domain.CellType {
	v := strings.TrimSpace(value)
	switch {
	case v == "" || v == "-" || strings.EqualFold(v, "N/A"):
		return domain.CellEmpty
	case isBooleanToken(v):
		return domain.CellBoolean
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err == nil {
		return domain.CellNumber
	}
	if len(v) > 6 && isDateValue(v) {
		return domain.CellDate
	}
	return domain.CellText
}

func isBooleanToken(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false", "yes", "no", "是", "否":
		return true
	}
	return false
}

func isDateValue(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// columnTypes takes the most frequent classification per column, skipping
// the header row and treating missing cells in ragged rows as absent.
func columnTypes(data [][]domain.TableCell, columns int, hasHeader bool) []domain.CellType {
	types := make([]domain.CellType, columns)
	start := 0
	if hasHeader && len(data) > 1 {
		start = 1
	}
	for col := 0; col < columns; col++ {
		counts := map[domain.CellType]int{}
		for _, row := range data[start:] {
			if col >= len(row) {
				continue
			}
			counts[row[col].Type]++
		}
		best := domain.CellText
		bestCount := 0
		for _, t := range []domain.CellType{domain.CellEmpty, domain.CellBoolean, domain.CellNumber, domain.CellDate, domain.CellText} {
			if counts[t] > bestCount {
				best = t
				bestCount = counts[t]
			}
		}
		types[col] = best
	}
	return types
}
