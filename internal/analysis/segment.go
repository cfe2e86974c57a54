package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

const (
	layoutLeftMargin = 50.0
	layoutBlockWidth = 500.0
	layoutTopOffset  = 50.0
	specialLineStep  = 30.0
)

// segmenter merges consecutive prose lines into paragraph blocks and feeds
// classified special lines straight through, maintaining the pseudo-layout
// y offset as it goes. States: idle (empty buffer) and accumulating.
type segmenter struct {
	docID  string
	rules  *RuleSet
	jitter func() float64

	y        float64
	blockSeq int
	buf      []string

	blocks  []domain.ContentBlock
	builder *structureBuilder
}

func newSegmenter(docID string, rules *RuleSet, jitter func() float64) *segmenter {
	return &segmenter{
		docID:   docID,
		rules:   rules,
		jitter:  jitter,
		y:       layoutTopOffset,
		builder: newStructureBuilder(docID, rules),
	}
}

// run scans the decoded text line by line. Very short documents (three or
// fewer non-blank lines, none of them special) are emitted as one single
// paragraph block so they do not fragment.
func (s *segmenter) run(text string) {
	lines := strings.Split(text, "\n")

	if s.isShortDocument(lines) {
		s.emitParagraph(strings.TrimSpace(text), 0.95)
		return
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			s.flush()
			continue
		}
		class := s.rules.classifyLine(line)
		if class.special {
			s.flush()
			s.emitSpecial(line, class)
			continue
		}
		s.buf = append(s.buf, line)
	}
	s.flush()
}

func (s *segmenter) isShortDocument(lines []string) bool {
	nonBlank := 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		nonBlank++
		if nonBlank > 3 || s.rules.classifyLine(line).special {
			return false
		}
	}
	return nonBlank > 0
}

func (s *segmenter) flush() {
	if len(s.buf) == 0 {
		return
	}
	content := strings.Join(s.buf, " ")
	s.buf = s.buf[:0]
	s.emitParagraph(content, 0.90+s.jitter()*0.09)
}

func (s *segmenter) emitParagraph(content string, confidence float64) {
	step := math.Ceil(float64(len([]rune(content)))/50.0) * 25.0
	if step < 25.0 {
		step = 25.0
	}
	block := s.newBlock(domain.BlockParagraph, content, step, confidence)
	s.blocks = append(s.blocks, block)
	s.builder.attachParagraph(&block)
}

func (s *segmenter) emitSpecial(line string, class lineClass) {
	block := s.newBlock(class.blockType, line, specialLineStep, 0.95)
	s.blocks = append(s.blocks, block)
	s.builder.addHeading(&block, class)
}

func (s *segmenter) newBlock(t domain.BlockType, content string, step, confidence float64) domain.ContentBlock {
	s.blockSeq++
	block := domain.ContentBlock{
		ID:      fmt.Sprintf("block_%s_%d", s.docID, s.blockSeq),
		Type:    t,
		Content: content,
		Position: domain.BlockPosition{
			Page:   1,
			X:      layoutLeftMargin,
			Y:      s.y,
			Width:  layoutBlockWidth,
			Height: step,
		},
		Metadata: domain.BlockMetadata{
			Confidence: confidence,
			WordCount:  countWords(content),
			Language:   s.rules.Locale,
		},
	}
	s.y += step
	return block
}
