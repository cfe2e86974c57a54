package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/docinsight/internal/core/ports"
)

type RemoveDocumentUseCase struct {
	repo     ports.DocumentRepository
	analyses ports.AnalysisRepository
	storage  ports.ObjectStorage
}

func NewRemoveDocumentUseCase(
	repo ports.DocumentRepository,
	analyses ports.AnalysisRepository,
	storage ports.ObjectStorage,
) *RemoveDocumentUseCase {
	return &RemoveDocumentUseCase{
		repo:     repo,
		analyses: analyses,
		storage:  storage,
	}
}

func (uc *RemoveDocumentUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	if err := uc.analyses.DeleteAnalysis(ctx, id); err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}

	if err := uc.storage.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete stored file: %w", err)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document metadata: %w", err)
	}
	return nil
}
