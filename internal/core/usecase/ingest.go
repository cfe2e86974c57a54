package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/docinsight/internal/core/domain"
	"github.com/kirillkom/docinsight/internal/core/ports"
)

// supportedExtensions is the set of formats the decoder can handle.
// Anything else is rejected at upload time instead of surfacing later as
// a degraded sample analysis.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".rtf":  true,
	".xlsx": true,
}

type UploadDocumentUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewUploadDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

func (uc *UploadDocumentUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	size int64,
	body io.Reader,
) (*domain.Document, error) {
	if err := validateUpload(filename, size); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Size:        size,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	if err := uc.queue.PublishDocumentUploaded(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish upload event: %w", err)
	}

	return doc, nil
}

func validateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return domain.WrapError(domain.ErrInvalidInput, "upload document",
			fmt.Errorf("unsupported file extension %q", ext))
	}
	if size <= 0 {
		return domain.WrapError(domain.ErrInvalidInput, "upload document",
			fmt.Errorf("empty file %q", filename))
	}
	return nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
