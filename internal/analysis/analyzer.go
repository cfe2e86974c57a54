// Package analysis implements the local heuristic document-segmentation
// pipeline: the fallback used when the remote parsing API is unavailable.
// It turns decoded text into content blocks, an outline tree, tables, and
// figure references using line-level pattern rules.
package analysis

import (
	"math/rand/v2"
	"strings"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

// Analyzer runs the segmentation pipeline. It holds no per-document state:
// every Analyze call is independent and may run concurrently with others.
type Analyzer struct {
	rules  *RuleSet
	jitter func() float64
}

type Option func(*Analyzer)

// WithJitter replaces the confidence jitter source, used by tests that
// need deterministic block confidence.
func WithJitter(fn func() float64) Option {
	return func(a *Analyzer) { a.jitter = fn }
}

func New(locale string, opts ...Option) (*Analyzer, error) {
	rules, err := LoadRules(locale)
	if err != nil {
		return nil, err
	}
	a := &Analyzer{
		rules:  rules,
		jitter: rand.Float64,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Analyze processes one decoded document to completion. The documentID
// only namespaces generated ids. Empty or all-whitespace input yields
// ErrEmptyContent; detectors that find nothing yield empty slices, never
// errors.
func (a *Analyzer) Analyze(documentID, text string) (*domain.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyContent
	}

	seg := newSegmenter(documentID, a.rules, a.jitter)
	seg.run(text)

	return &domain.AnalysisResult{
		ContentBlocks:  seg.blocks,
		StructureNodes: seg.builder.finish(seg.blocks, text),
		Tables:         nonNilTables(extractTables(documentID, text, a.rules)),
		Figures:        nonNilFigures(extractFigures(documentID, text, a.rules)),
	}, nil
}

// Rules exposes the analyzer's policy table, letting collaborators reuse
// the keyword extractor for fallback metadata.
func (a *Analyzer) Rules() *RuleSet {
	return a.rules
}

func nonNilTables(tables []domain.TableData) []domain.TableData {
	if tables == nil {
		return []domain.TableData{}
	}
	return tables
}

func nonNilFigures(figures []domain.FigureData) []domain.FigureData {
	if figures == nil {
		return []domain.FigureData{}
	}
	return figures
}
