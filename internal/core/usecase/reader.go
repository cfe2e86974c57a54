package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/docinsight/internal/core/domain"
	"github.com/kirillkom/docinsight/internal/core/ports"
)

type DocumentReaderUseCase struct {
	repo     ports.DocumentRepository
	analyses ports.AnalysisRepository
}

func NewDocumentReaderUseCase(repo ports.DocumentRepository, analyses ports.AnalysisRepository) *DocumentReaderUseCase {
	return &DocumentReaderUseCase{repo: repo, analyses: analyses}
}

func (uc *DocumentReaderUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *DocumentReaderUseCase) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (uc *DocumentReaderUseCase) GetAnalysis(ctx context.Context, id string) (*domain.AnalysisResult, error) {
	// The document must exist even when the analysis is still pending, so
	// a missing document and a pending analysis report differently.
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}

	result, err := uc.analyses.GetAnalysis(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch analysis: %w", err)
	}
	return result, nil
}
