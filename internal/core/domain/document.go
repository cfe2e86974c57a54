package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded  DocumentStatus = "uploaded"
	StatusParsing   DocumentStatus = "parsing"
	StatusCompleted DocumentStatus = "completed"
	StatusFailed    DocumentStatus = "failed"
)

// AnalysisSource records which path produced a document's analysis:
// the remote parsing API, the local heuristic fallback, or the
// degraded sample substituted when decoding fails.
type AnalysisSource string

const (
	SourceRemote   AnalysisSource = "remote"
	SourceFallback AnalysisSource = "fallback"
	SourceSample   AnalysisSource = "sample"
)

type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	Size        int64          `json:"size"`
	Status      DocumentStatus `json:"status"`
	Source      AnalysisSource `json:"source,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
