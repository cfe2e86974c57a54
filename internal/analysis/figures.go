package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

const (
	figureConfidence    = 0.75
	contextLineMaxLen   = 200
	contextLinesEachWay = 2
)

// figurePatterns is the fixed set of lexical cues marking a line as a
// figure reference.
var figurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`图\s*[0-9０-９]+`),
	regexp.MustCompile(`(?i)figure\s*[0-9]+`),
	regexp.MustCompile(`(?i)fig\.\s*[0-9]+`),
	regexp.MustCompile(`示意图`),
	regexp.MustCompile(`流程图`),
	regexp.MustCompile(`架构图`),
	regexp.MustCompile(`截图`),
	regexp.MustCompile(`(?i)flowchart`),
	regexp.MustCompile(`(?i)diagram`),
	regexp.MustCompile(`(?i)screenshot`),
}

// extractFigures scans line by line for figure references and synthesizes
// placeholder records. Figures built this way are references only: they
// never carry an image URL.
func extractFigures(docID, text string, rules *RuleSet) []domain.FigureData {
	lines := strings.Split(text, "\n")

	var figures []domain.FigureData
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		token := matchFigureReference(line)
		if token == "" {
			continue
		}
		figures = append(figures, domain.FigureData{
			ID:   fmt.Sprintf("figure_%s_%d", docID, len(figures)+1),
			Type: inferFigureType(line, rules),
			Position: domain.BlockPosition{
				Page:   1,
				X:      layoutLeftMargin,
				Y:      layoutTopOffset + float64(i)*25.0,
				Width:  layoutBlockWidth,
				Height: 25.0,
			},
			Content: domain.FigureContent{
				Description: buildFigureDescription(lines, i),
				Caption:     line,
				AltText:     token,
			},
			Metadata: domain.FigureMetadata{
				Confidence:  figureConfidence,
				IsReference: true,
			},
		})
	}
	return figures
}

func matchFigureReference(line string) string {
	for _, pattern := range figurePatterns {
		if token := pattern.FindString(line); token != "" {
			return token
		}
	}
	return ""
}

// inferFigureType picks the most specific type the line's own keywords
// support: flowchart beats architecture beats diagram beats chart beats
// screenshot; anything else is a plain image reference.
func inferFigureType(line string, rules *RuleSet) domain.FigureType {
	ordered := []struct {
		figType domain.FigureType
		key     string
	}{
		{domain.FigureFlowchart, "flowchart"},
		{domain.FigureArchitecture, "architecture"},
		{domain.FigureDiagram, "diagram"},
		{domain.FigureChart, "chart"},
		{domain.FigureScreenshot, "screenshot"},
	}
	for _, entry := range ordered {
		if containsAny(line, rules.FigureKeywords[entry.key]) {
			return entry.figType
		}
	}
	return domain.FigureImage
}

// buildFigureDescription concatenates the matched line with up to two
// non-matching neighbor lines on each side. Neighbors that are themselves
// figure references are skipped, and each context line is capped at 200
// characters.
func buildFigureDescription(lines []string, idx int) string {
	var before, after []string

	for i := idx - 1; i >= 0 && len(before) < contextLinesEachWay; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || matchFigureReference(line) != "" {
			continue
		}
		before = append([]string{capLine(line)}, before...)
	}
	for i := idx + 1; i < len(lines) && len(after) < contextLinesEachWay; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || matchFigureReference(line) != "" {
			continue
		}
		after = append(after, capLine(line))
	}

	parts := append(append(before, strings.TrimSpace(lines[idx])), after...)
	return strings.Join(parts, " ")
}

func capLine(line string) string {
	runes := []rune(line)
	if len(runes) <= contextLineMaxLen {
		return line
	}
	return string(runes[:contextLineMaxLen])
}
