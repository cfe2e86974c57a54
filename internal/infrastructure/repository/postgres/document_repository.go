package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026053101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	size_bytes BIGINT NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	source TEXT,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS document_analysis (
	document_id TEXT PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
	content_blocks JSONB NOT NULL DEFAULT '[]'::jsonb,
	structure_nodes JSONB NOT NULL DEFAULT '[]'::jsonb,
	tables JSONB NOT NULL DEFAULT '[]'::jsonb,
	figures JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, filename, mime_type, storage_path, size_bytes, status, source, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		doc.ID, doc.Filename, doc.MimeType, doc.StoragePath, doc.Size,
		string(doc.Status), string(doc.Source), doc.Error, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, size_bytes, status, source, error_message, created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, filename, mime_type, storage_path, size_bytes, status, source, error_message, created_at, updated_at
FROM documents
ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}
	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var status, source string

	err := row.Scan(
		&doc.ID, &doc.Filename, &doc.MimeType, &doc.StoragePath, &doc.Size,
		&status, &source, &doc.Error, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.Status = domain.DocumentStatus(status)
	doc.Source = domain.AnalysisSource(source)
	return &doc, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, source domain.AnalysisSource, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, source = $3, error_message = $4, updated_at = $5
WHERE id = $1
`, id, string(status), string(source), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "update document status", fmt.Errorf("id %s", id))
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "delete document", fmt.Errorf("id %s", id))
	}
	return nil
}

func (r *DocumentRepository) SaveAnalysis(ctx context.Context, documentID string, result *domain.AnalysisResult) error {
	blocks, err := json.Marshal(result.ContentBlocks)
	if err != nil {
		return fmt.Errorf("marshal content blocks: %w", err)
	}
	nodes, err := json.Marshal(result.StructureNodes)
	if err != nil {
		return fmt.Errorf("marshal structure nodes: %w", err)
	}
	tables, err := json.Marshal(result.Tables)
	if err != nil {
		return fmt.Errorf("marshal tables: %w", err)
	}
	figures, err := json.Marshal(result.Figures)
	if err != nil {
		return fmt.Errorf("marshal figures: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO document_analysis (document_id, content_blocks, structure_nodes, tables, figures, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (document_id) DO UPDATE
SET content_blocks = EXCLUDED.content_blocks,
	structure_nodes = EXCLUDED.structure_nodes,
	tables = EXCLUDED.tables,
	figures = EXCLUDED.figures,
	created_at = EXCLUDED.created_at
`, documentID, blocks, nodes, tables, figures, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetAnalysis(ctx context.Context, documentID string) (*domain.AnalysisResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT content_blocks, structure_nodes, tables, figures
FROM document_analysis
WHERE document_id = $1
`, documentID)

	var blocksRaw, nodesRaw, tablesRaw, figuresRaw []byte
	if err := row.Scan(&blocksRaw, &nodesRaw, &tablesRaw, &figuresRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get analysis", fmt.Errorf("document %s", documentID))
		}
		return nil, fmt.Errorf("scan analysis: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(blocksRaw, &result.ContentBlocks); err != nil {
		return nil, fmt.Errorf("unmarshal content blocks: %w", err)
	}
	if err := json.Unmarshal(nodesRaw, &result.StructureNodes); err != nil {
		return nil, fmt.Errorf("unmarshal structure nodes: %w", err)
	}
	if err := json.Unmarshal(tablesRaw, &result.Tables); err != nil {
		return nil, fmt.Errorf("unmarshal tables: %w", err)
	}
	if err := json.Unmarshal(figuresRaw, &result.Figures); err != nil {
		return nil, fmt.Errorf("unmarshal figures: %w", err)
	}
	return &result, nil
}

func (r *DocumentRepository) DeleteAnalysis(ctx context.Context, documentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM document_analysis WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	return nil
}
