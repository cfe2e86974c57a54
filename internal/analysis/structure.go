package analysis

import (
	"fmt"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

// structureBuilder assembles the outline tree while lines are scanned top
// to bottom. It keeps a parent stack seeded with a synthetic root; heading
// nodes unwind the stack to their level, paragraphs attach to the closest
// preceding node.
type structureBuilder struct {
	docID string
	rules *RuleSet

	nodes []domain.StructureNode // nodes[0] is the root
	stack []int                  // indexes into nodes, root at the bottom
	order int
}

func newStructureBuilder(docID string, rules *RuleSet) *structureBuilder {
	b := &structureBuilder{docID: docID, rules: rules}
	root := domain.StructureNode{
		ID:              fmt.Sprintf("node_%s_0", docID),
		Type:            domain.NodeDocument,
		Title:           rules.RootTitle,
		Level:           0,
		Position:        domain.NodePosition{Page: 1, Order: 0},
		ChildIDs:        []string{},
		ContentBlockIDs: []string{},
		Metadata: domain.NodeMetadata{
			Importance: 1.0,
		},
	}
	b.nodes = append(b.nodes, root)
	b.stack = append(b.stack, 0)
	b.order = 1
	return b
}

// headingImportance decays with nesting depth and never drops below 0.1.
func headingImportance(level int) float64 {
	imp := 1.0 - float64(level-1)*0.2
	if imp < 0.1 {
		return 0.1
	}
	return imp
}

// addHeading creates a node for a classified special line. The stack is
// unwound until its top sits strictly above the new node's level, so a new
// chapter closes any open section and a sibling heading closes its
// predecessor.
func (b *structureBuilder) addHeading(block *domain.ContentBlock, class lineClass) {
	for len(b.stack) > 1 && b.nodes[b.stack[len(b.stack)-1]].Level >= class.level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parentIdx := b.stack[len(b.stack)-1]

	idx := len(b.nodes)
	node := domain.StructureNode{
		ID:              fmt.Sprintf("node_%s_%d", b.docID, idx),
		Type:            class.nodeType,
		Title:           truncateTitle(block.Content),
		Level:           class.level,
		Position:        domain.NodePosition{Page: block.Position.Page, Order: b.order},
		ParentID:        b.nodes[parentIdx].ID,
		ChildIDs:        []string{},
		ContentBlockIDs: []string{block.ID},
		Metadata: domain.NodeMetadata{
			WordCount:  block.Metadata.WordCount,
			Importance: headingImportance(class.level),
			Keywords:   b.rules.ExtractKeywords(block.Content),
		},
	}
	b.order++
	b.nodes = append(b.nodes, node)
	b.nodes[parentIdx].ChildIDs = append(b.nodes[parentIdx].ChildIDs, node.ID)
	b.stack = append(b.stack, idx)
}

// attachParagraph subsumes a prose block under the closest preceding node
// on the same or an earlier page, falling back to the root when no heading
// has been seen yet.
func (b *structureBuilder) attachParagraph(block *domain.ContentBlock) {
	target := 0
	for i := len(b.nodes) - 1; i >= 1; i-- {
		if b.nodes[i].Position.Page <= block.Position.Page {
			target = i
			break
		}
	}
	b.nodes[target].ContentBlockIDs = append(b.nodes[target].ContentBlockIDs, block.ID)
	b.nodes[target].Metadata.WordCount += block.Metadata.WordCount
}

// finish closes the tree: the root aggregates the word count of every
// block and derives its title and keywords from the document text.
func (b *structureBuilder) finish(blocks []domain.ContentBlock, fullText string) []domain.StructureNode {
	total := 0
	for i := range blocks {
		total += blocks[i].Metadata.WordCount
	}
	b.nodes[0].Metadata.WordCount = total
	b.nodes[0].Metadata.Keywords = b.rules.ExtractKeywords(fullText)

	for i := range blocks {
		if blocks[i].Type == domain.BlockTitle {
			b.nodes[0].Title = truncateTitle(blocks[i].Content)
			break
		}
	}
	return b.nodes
}
