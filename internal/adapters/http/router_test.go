package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

type ingestorFake struct {
	doc *domain.Document
	err error

	filename string
	mimeType string
	size     int64
	body     []byte
}

func (f *ingestorFake) Upload(_ context.Context, filename, mimeType string, size int64, body io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.filename = filename
	f.mimeType = mimeType
	f.size = size
	f.body, _ = io.ReadAll(body)
	return f.doc, nil
}

type readerFake struct {
	doc      *domain.Document
	docs     []domain.Document
	analysis *domain.AnalysisResult
	err      error
}

func (f *readerFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *readerFake) List(context.Context) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *readerFake) GetAnalysis(context.Context, string) (*domain.AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type removerFake struct {
	deletedID string
	err       error
}

func (f *removerFake) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deletedID = id
	return nil
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadDocumentAccepted(t *testing.T) {
	ingestor := &ingestorFake{doc: &domain.Document{ID: "doc-1", Status: domain.StatusUploaded}}
	handler := NewRouter(ingestor, &readerFake{}, &removerFake{}, nil, RouterOptions{}).Handler()

	body, contentType := multipartBody(t, "file", "报告.txt", "第一章 总则\n正文。")
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}
	if ingestor.filename != "报告.txt" {
		t.Fatalf("expected original filename, got %q", ingestor.filename)
	}
	if string(ingestor.body) != "第一章 总则\n正文。" {
		t.Fatalf("unexpected uploaded body %q", ingestor.body)
	}

	var resp domain.Document
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "doc-1" {
		t.Fatalf("expected doc-1 in response, got %q", resp.ID)
	}
}

func TestUploadDocumentMissingFileField(t *testing.T) {
	handler := NewRouter(&ingestorFake{}, &readerFake{}, &removerFake{}, nil, RouterOptions{}).Handler()

	body, contentType := multipartBody(t, "attachment", "a.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	reader := &readerFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New("id missing"))}
	handler := NewRouter(&ingestorFake{}, reader, &removerFake{}, nil, RouterOptions{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestListDocuments(t *testing.T) {
	reader := &readerFake{docs: []domain.Document{{ID: "doc-1"}, {ID: "doc-2"}}}
	handler := NewRouter(&ingestorFake{}, reader, &removerFake{}, nil, RouterOptions{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		Documents []domain.Document `json:"documents"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(resp.Documents))
	}
}

func TestGetAnalysis(t *testing.T) {
	reader := &readerFake{analysis: &domain.AnalysisResult{
		ContentBlocks:  []domain.ContentBlock{{ID: "block_doc-1_1", Type: domain.BlockParagraph}},
		StructureNodes: []domain.StructureNode{{ID: "node_doc-1_0", Type: domain.NodeDocument}},
		Tables:         []domain.TableData{},
		Figures:        []domain.FigureData{},
	}}
	handler := NewRouter(&ingestorFake{}, reader, &removerFake{}, nil, RouterOptions{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1/analysis", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var resp domain.AnalysisResult
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.ContentBlocks) != 1 || resp.ContentBlocks[0].ID != "block_doc-1_1" {
		t.Fatalf("unexpected content blocks: %+v", resp.ContentBlocks)
	}
	if resp.Tables == nil || resp.Figures == nil {
		t.Fatal("expected empty arrays, not null, for tables and figures")
	}
}

func TestDeleteDocument(t *testing.T) {
	remover := &removerFake{}
	handler := NewRouter(&ingestorFake{}, &readerFake{}, remover, nil, RouterOptions{}).Handler()

	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/doc-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if remover.deletedID != "doc-1" {
		t.Fatalf("expected doc-1 deleted, got %q", remover.deletedID)
	}
}

func TestTemporaryErrorMapsTo503(t *testing.T) {
	reader := &readerFake{err: domain.WrapError(domain.ErrTemporary, "list documents", errors.New("db down"))}
	handler := NewRouter(&ingestorFake{}, reader, &removerFake{}, nil, RouterOptions{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := NewRouter(&ingestorFake{}, &readerFake{}, &removerFake{}, nil, RouterOptions{}).Handler()

	req := httptest.NewRequest(http.MethodPut, "/v1/documents", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}
