package parseapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

func TestParseUploadsMultipartFile(t *testing.T) {
	var capturedAuth string
	var capturedFilename string
	var capturedBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/parse" {
			http.NotFound(w, r)
			return
		}
		capturedAuth = r.Header.Get("Authorization")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("read form file: %v", err)
		}
		defer file.Close()
		capturedFilename = header.Filename
		buf := make([]byte, header.Size)
		_, _ = file.Read(buf)
		capturedBody = string(buf)
		_, _ = w.Write([]byte(`{"content_blocks":[{"type":"paragraph","content":"解析结果"}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-key", nil)
	result, err := client.Parse(context.Background(), "doc-1", "报告.docx", []byte("raw bytes"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if capturedAuth != "Bearer secret-key" {
		t.Errorf("authorization header = %q", capturedAuth)
	}
	if capturedFilename != "报告.docx" || capturedBody != "raw bytes" {
		t.Errorf("uploaded %q with body %q", capturedFilename, capturedBody)
	}
	if len(result.ContentBlocks) != 1 || result.ContentBlocks[0].Content != "解析结果" {
		t.Fatalf("unexpected result blocks %+v", result.ContentBlocks)
	}
}

func TestParseNotConfigured(t *testing.T) {
	client := New("", "", nil)
	if client.Enabled() {
		t.Fatal("client without endpoint must report disabled")
	}
	if _, err := client.Parse(context.Background(), "doc-1", "a.txt", []byte("x")); err == nil {
		t.Fatal("expected error when not configured")
	}
}

func TestParseServerErrorIsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream worker pool exhausted", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "secret-key", nil)
	_, err := client.Parse(context.Background(), "doc-1", "a.txt", []byte("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("retryable status must map to temporary kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "upstream worker pool exhausted") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestParseClientErrorIsNotTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported media type", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := New(server.URL, "secret-key", nil)
	_, err := client.Parse(context.Background(), "doc-1", "a.txt", []byte("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("client error must not be temporary, got %v", err)
	}
}

func TestParseUnrecognizedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"done"}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-key", nil)
	_, err := client.Parse(context.Background(), "doc-1", "a.txt", []byte("x"))
	if err == nil || !strings.Contains(err.Error(), "adapt parse response") {
		t.Fatalf("expected adapt error, got %v", err)
	}
}
