package ports

import (
	"context"
	"io"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, source domain.AnalysisSource, errMessage string) error
	Delete(ctx context.Context, id string) error
}

// AnalysisRepository persists and reads analysis results.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, documentID string, result *domain.AnalysisResult) error
	GetAnalysis(ctx context.Context, documentID string) (*domain.AnalysisResult, error)
	DeleteAnalysis(ctx context.Context, documentID string) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes upload events.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, documentID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextDecoder turns a raw file buffer of a declared format into a clean
// Unicode string.
type TextDecoder interface {
	Decode(ctx context.Context, raw []byte, filename string) (string, error)
}

// DocumentAnalyzer runs the heuristic segmentation pipeline over decoded
// text. The documentID only namespaces generated artifact ids.
type DocumentAnalyzer interface {
	Analyze(documentID, text string) (*domain.AnalysisResult, error)
	SampleResult(documentID, reason string) *domain.AnalysisResult
}

// RemoteParser is the client for the third-party document-parsing API.
// When it succeeds the local pipeline is bypassed entirely.
type RemoteParser interface {
	Parse(ctx context.Context, documentID, filename string, raw []byte) (*domain.AnalysisResult, error)
	Enabled() bool
}

// StructureGraph mirrors a document's outline tree into a graph store.
// Implementations must treat export failures as non-fatal.
type StructureGraph interface {
	ExportStructure(ctx context.Context, doc *domain.Document, nodes []domain.StructureNode) error
}
