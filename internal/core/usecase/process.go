package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kirillkom/docinsight/internal/core/domain"
	"github.com/kirillkom/docinsight/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo     ports.DocumentRepository
	analyses ports.AnalysisRepository
	storage  ports.ObjectStorage
	decoder  ports.TextDecoder
	analyzer ports.DocumentAnalyzer
	remote   ports.RemoteParser
	graph    ports.StructureGraph
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	analyses ports.AnalysisRepository,
	storage ports.ObjectStorage,
	decoder ports.TextDecoder,
	analyzer ports.DocumentAnalyzer,
	remote ports.RemoteParser,
	graph ports.StructureGraph,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:     repo,
		analyses: analyses,
		storage:  storage,
		decoder:  decoder,
		analyzer: analyzer,
		remote:   remote,
		graph:    graph,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusParsing, doc.Source, ""); err != nil {
		return fmt.Errorf("set status=parsing: %w", err)
	}

	result, source, err := uc.analysisPipeline(ctx, doc)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.analyses.SaveAnalysis(ctx, documentID, result); err != nil {
		err = fmt.Errorf("save analysis: %w", err)
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	uc.exportStructure(ctx, doc, result)

	if err := uc.markStatus(ctx, documentID, domain.StatusCompleted, source, ""); err != nil {
		return fmt.Errorf("set status=completed: %w", err)
	}
	return nil
}

// analysisPipeline prefers the remote parsing service when configured and
// falls back to the local heuristic analyzer on any remote failure. Decode
// failures and empty documents degrade further to a sample result instead
// of failing the document.
func (uc *ProcessDocumentUseCase) analysisPipeline(ctx context.Context, doc *domain.Document) (*domain.AnalysisResult, domain.AnalysisSource, error) {
	raw, err := uc.readFile(ctx, doc)
	if err != nil {
		return nil, "", err
	}

	if uc.remote != nil && uc.remote.Enabled() {
		result, err := uc.remote.Parse(ctx, doc.ID, doc.Filename, raw)
		if err == nil {
			return result, domain.SourceRemote, nil
		}
		slog.Warn("remote_parse_failed", "document_id", doc.ID, "error", err)
	}

	text, err := uc.decoder.Decode(ctx, raw, doc.Filename)
	if err != nil {
		if domain.IsKind(err, domain.ErrDecode) || domain.IsKind(err, domain.ErrEmptyContent) || domain.IsKind(err, domain.ErrUnsupportedEncoding) {
			return uc.analyzer.SampleResult(doc.ID, err.Error()), domain.SourceSample, nil
		}
		return nil, "", fmt.Errorf("decode document: %w", err)
	}

	result, err := uc.analyzer.Analyze(doc.ID, text)
	if err != nil {
		if domain.IsKind(err, domain.ErrEmptyContent) {
			return uc.analyzer.SampleResult(doc.ID, err.Error()), domain.SourceSample, nil
		}
		return nil, "", fmt.Errorf("analyze document: %w", err)
	}
	return result, domain.SourceFallback, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *ProcessDocumentUseCase) readFile(ctx context.Context, doc *domain.Document) ([]byte, error) {
	f, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read stored file: %w", err)
	}
	return raw, nil
}

// exportStructure mirrors the outline into the graph store when one is
// configured. Export failures never affect the document status.
func (uc *ProcessDocumentUseCase) exportStructure(ctx context.Context, doc *domain.Document, result *domain.AnalysisResult) {
	if uc.graph == nil || len(result.StructureNodes) == 0 {
		return
	}
	if err := uc.graph.ExportStructure(ctx, doc, result.StructureNodes); err != nil {
		slog.Warn("structure_export_failed", "document_id", doc.ID, "error", err)
	}
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, source domain.AnalysisSource, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, source, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, "", processErr.Error())
}
