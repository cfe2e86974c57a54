package analysis

import (
	"strings"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

// lineClass is the classification of a single trimmed, non-empty line.
type lineClass struct {
	blockType domain.BlockType
	nodeType  domain.NodeType
	level     int
	special   bool
}

var proseClass = lineClass{
	blockType: domain.BlockParagraph,
	nodeType:  domain.NodeParagraph,
	level:     4,
	special:   false,
}

// classifyLine assigns a semantic category to one line. It is a pure
// function: the same line always classifies identically. Rules apply in
// priority order; chapter cues beat trailing colons, which beat numbered
// list prefixes, which beat contact cues.
func (r *RuleSet) classifyLine(line string) lineClass {
	if r.ChapterPattern.MatchString(line) {
		return lineClass{
			blockType: domain.BlockTitle,
			nodeType:  domain.NodeChapter,
			level:     1,
			special:   true,
		}
	}
	if strings.HasSuffix(line, ":") || strings.HasSuffix(line, "：") {
		return lineClass{
			blockType: domain.BlockSubtitle,
			nodeType:  domain.NodeSection,
			level:     2,
			special:   true,
		}
	}
	if r.ListPattern.MatchString(line) {
		return lineClass{
			blockType: domain.BlockListItem,
			nodeType:  domain.NodeList,
			level:     3,
			special:   true,
		}
	}
	if containsAny(line, r.ContactCues) {
		return lineClass{
			blockType: domain.BlockContact,
			nodeType:  domain.NodeContact,
			level:     2,
			special:   true,
		}
	}
	return proseClass
}
