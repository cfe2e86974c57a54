package analysis

import (
	"fmt"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

// sample document copy per locale. The sample is the fallback of the
// fallback: it must always succeed, so it is built from constants only.
var sampleCopy = map[string]struct {
	title string
	body  string
}{
	"zh": {
		title: "文档解析结果",
		body:  "该文档无法被自动解析（%s）。请确认文件未损坏，或尝试转换为 PDF、DOCX 或纯文本格式后重新上传。",
	},
	"en": {
		title: "Document Parse Result",
		body:  "This document could not be parsed automatically (%s). Please verify the file is not corrupt, or convert it to PDF, DOCX, or plain text and upload it again.",
	},
}

// SampleResult builds the minimal two-block placeholder document
// substituted when decoding fails: one title block and one explanatory
// paragraph carrying the failure reason and remediation hints.
func (a *Analyzer) SampleResult(documentID, reason string) *domain.AnalysisResult {
	copytext, ok := sampleCopy[a.rules.Locale]
	if !ok {
		copytext = sampleCopy["zh"]
	}
	if reason == "" {
		reason = "unknown"
	}

	title := domain.ContentBlock{
		ID:      fmt.Sprintf("block_%s_1", documentID),
		Type:    domain.BlockTitle,
		Content: copytext.title,
		Position: domain.BlockPosition{
			Page: 1, X: layoutLeftMargin, Y: layoutTopOffset,
			Width: layoutBlockWidth, Height: specialLineStep,
		},
		Metadata: domain.BlockMetadata{
			Confidence: 0.95,
			WordCount:  countWords(copytext.title),
			Language:   a.rules.Locale,
		},
	}
	body := domain.ContentBlock{
		ID:      fmt.Sprintf("block_%s_2", documentID),
		Type:    domain.BlockParagraph,
		Content: fmt.Sprintf(copytext.body, reason),
		Position: domain.BlockPosition{
			Page: 1, X: layoutLeftMargin, Y: layoutTopOffset + specialLineStep,
			Width: layoutBlockWidth, Height: 50,
		},
		Metadata: domain.BlockMetadata{
			Confidence: 0.95,
			WordCount:  countWords(fmt.Sprintf(copytext.body, reason)),
			Language:   a.rules.Locale,
		},
	}

	root := domain.StructureNode{
		ID:       fmt.Sprintf("node_%s_0", documentID),
		Type:     domain.NodeDocument,
		Title:    copytext.title,
		Level:    0,
		Position: domain.NodePosition{Page: 1, Order: 0},
		ChildIDs: []string{},
		ContentBlockIDs: []string{
			title.ID,
			body.ID,
		},
		Metadata: domain.NodeMetadata{
			WordCount:  title.Metadata.WordCount + body.Metadata.WordCount,
			Importance: 1.0,
			Keywords:   append([]string(nil), a.rules.KeywordFallback...),
		},
	}

	return &domain.AnalysisResult{
		ContentBlocks:  []domain.ContentBlock{title, body},
		StructureNodes: []domain.StructureNode{root},
		Tables:         []domain.TableData{},
		Figures:        []domain.FigureData{},
	}
}
