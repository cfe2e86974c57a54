package parseapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

// The parsing API has shipped several response shapes over time. Instead
// of duck-typed field probing, each known shape gets its own adapter and
// AdaptResponse dispatches on which discriminating field is present:
//
//	{"content_blocks": [...]}   snake_case block list
//	{"contentBlocks": [...]}    camelCase block list
//	{"text": "..."}             plain text only
//	{"pages": [{"blocks": []}]} paginated block lists
type remoteEnvelope struct {
	ContentBlocksSnake []remoteBlock `json:"content_blocks"`
	ContentBlocksCamel []remoteBlock `json:"contentBlocks"`
	Text               string        `json:"text"`
	Pages              []remotePage  `json:"pages"`
}

type remotePage struct {
	Page   int           `json:"page"`
	Blocks []remoteBlock `json:"blocks"`
}

type remoteBlock struct {
	Type       string  `json:"type"`
	Content    string  `json:"content"`
	Text       string  `json:"text"`
	Page       int     `json:"page"`
	Confidence float64 `json:"confidence"`
}

// AdaptResponse maps a raw API payload onto the domain model, namespacing
// generated ids with the document id. An unrecognized shape is an error;
// the caller falls back to the local pipeline.
func AdaptResponse(documentID string, payload []byte) (*domain.AnalysisResult, error) {
	var envelope remoteEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode parse payload: %w", err)
	}

	switch {
	case len(envelope.ContentBlocksSnake) > 0:
		return adaptBlockList(documentID, envelope.ContentBlocksSnake), nil
	case len(envelope.ContentBlocksCamel) > 0:
		return adaptBlockList(documentID, envelope.ContentBlocksCamel), nil
	case len(envelope.Pages) > 0:
		return adaptPages(documentID, envelope.Pages), nil
	case strings.TrimSpace(envelope.Text) != "":
		return adaptPlainText(documentID, envelope.Text), nil
	}
	return nil, fmt.Errorf("unrecognized parse response shape")
}

func adaptBlockList(documentID string, blocks []remoteBlock) *domain.AnalysisResult {
	out := make([]domain.ContentBlock, 0, len(blocks))
	for _, rb := range blocks {
		if block, ok := adaptBlock(documentID, len(out)+1, rb); ok {
			out = append(out, block)
		}
	}
	return assembleResult(documentID, out)
}

func adaptPages(documentID string, pages []remotePage) *domain.AnalysisResult {
	var out []domain.ContentBlock
	for _, page := range pages {
		for _, rb := range page.Blocks {
			if rb.Page == 0 {
				rb.Page = page.Page
			}
			if block, ok := adaptBlock(documentID, len(out)+1, rb); ok {
				out = append(out, block)
			}
		}
	}
	return assembleResult(documentID, out)
}

// adaptPlainText splits a text-only response on blank lines, one
// paragraph block per segment.
func adaptPlainText(documentID, text string) *domain.AnalysisResult {
	var out []domain.ContentBlock
	y := 50.0
	for _, segment := range strings.Split(text, "\n\n") {
		content := strings.TrimSpace(segment)
		if content == "" {
			continue
		}
		out = append(out, domain.ContentBlock{
			ID:      fmt.Sprintf("block_%s_%d", documentID, len(out)+1),
			Type:    domain.BlockParagraph,
			Content: content,
			Position: domain.BlockPosition{
				Page: 1, X: 50, Y: y, Width: 500, Height: 25,
			},
			Metadata: domain.BlockMetadata{Confidence: 0.9, WordCount: len(strings.Fields(content))},
		})
		y += 25
	}
	return assembleResult(documentID, out)
}

func adaptBlock(documentID string, seq int, rb remoteBlock) (domain.ContentBlock, bool) {
	content := strings.TrimSpace(rb.Content)
	if content == "" {
		content = strings.TrimSpace(rb.Text)
	}
	if content == "" {
		return domain.ContentBlock{}, false
	}

	blockType := domain.BlockType(strings.TrimSpace(rb.Type))
	if blockType == "" {
		blockType = domain.BlockParagraph
	}
	page := rb.Page
	if page <= 0 {
		page = 1
	}
	confidence := rb.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.9
	}

	return domain.ContentBlock{
		ID:      fmt.Sprintf("block_%s_%d", documentID, seq),
		Type:    blockType,
		Content: content,
		Position: domain.BlockPosition{
			Page: page, X: 50, Y: 50 + float64(seq-1)*25, Width: 500, Height: 25,
		},
		Metadata: domain.BlockMetadata{
			Confidence: confidence,
			WordCount:  len(strings.Fields(content)),
		},
	}, true
}

// assembleResult wraps adapted blocks with a synthetic root node so the
// outline invariants hold for remote results too.
func assembleResult(documentID string, blocks []domain.ContentBlock) *domain.AnalysisResult {
	blockIDs := make([]string, len(blocks))
	total := 0
	for i := range blocks {
		blockIDs[i] = blocks[i].ID
		total += blocks[i].Metadata.WordCount
	}
	root := domain.StructureNode{
		ID:              fmt.Sprintf("node_%s_0", documentID),
		Type:            domain.NodeDocument,
		Level:           0,
		Position:        domain.NodePosition{Page: 1, Order: 0},
		ChildIDs:        []string{},
		ContentBlockIDs: blockIDs,
		Metadata:        domain.NodeMetadata{WordCount: total, Importance: 1.0},
	}
	if len(blocks) > 0 {
		root.Title = blocks[0].Content
		if len([]rune(root.Title)) > 100 {
			root.Title = string([]rune(root.Title)[:100]) + "..."
		}
	}
	if blocks == nil {
		blocks = []domain.ContentBlock{}
	}
	return &domain.AnalysisResult{
		ContentBlocks:  blocks,
		StructureNodes: []domain.StructureNode{root},
		Tables:         []domain.TableData{},
		Figures:        []domain.FigureData{},
	}
}
