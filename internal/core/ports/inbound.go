package ports

import (
	"context"
	"io"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, size int64, body io.Reader) (*domain.Document, error)
}

// DocumentReader is the inbound read model for document metadata and
// analysis results.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	GetAnalysis(ctx context.Context, id string) (*domain.AnalysisResult, error)
}

// DocumentRemover deletes a document together with its stored file and
// analysis result.
type DocumentRemover interface {
	Delete(ctx context.Context, id string) error
}

// DocumentProcessor is the inbound contract for asynchronous document
// analysis.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}
