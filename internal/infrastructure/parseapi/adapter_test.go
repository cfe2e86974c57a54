package parseapi

import (
	"strings"
	"testing"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

func TestAdaptResponseSnakeCaseBlocks(t *testing.T) {
	payload := []byte(`{"content_blocks": [
		{"type": "title", "content": "第一章 介绍", "page": 1, "confidence": 0.97},
		{"type": "paragraph", "content": "正文内容。", "page": 1}
	]}`)

	result, err := AdaptResponse("doc-1", payload)
	if err != nil {
		t.Fatalf("AdaptResponse() error = %v", err)
	}
	if len(result.ContentBlocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(result.ContentBlocks))
	}
	first := result.ContentBlocks[0]
	if first.ID != "block_doc-1_1" {
		t.Errorf("first block id = %q", first.ID)
	}
	if first.Type != domain.BlockTitle || first.Metadata.Confidence != 0.97 {
		t.Errorf("first block type/confidence = %v/%v", first.Type, first.Metadata.Confidence)
	}
	second := result.ContentBlocks[1]
	if second.Metadata.Confidence != 0.9 {
		t.Errorf("missing confidence must default to 0.9, got %v", second.Metadata.Confidence)
	}
}

func TestAdaptResponseCamelCaseBlocks(t *testing.T) {
	payload := []byte(`{"contentBlocks": [{"text": "camel case body"}]}`)

	result, err := AdaptResponse("doc-2", payload)
	if err != nil {
		t.Fatalf("AdaptResponse() error = %v", err)
	}
	if len(result.ContentBlocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(result.ContentBlocks))
	}
	block := result.ContentBlocks[0]
	if block.Content != "camel case body" {
		t.Errorf("content = %q", block.Content)
	}
	if block.Type != domain.BlockParagraph {
		t.Errorf("missing type must default to paragraph, got %v", block.Type)
	}
	if block.Position.Page != 1 {
		t.Errorf("missing page must default to 1, got %d", block.Position.Page)
	}
}

func TestAdaptResponsePlainText(t *testing.T) {
	payload := []byte(`{"text": "first paragraph\n\nsecond paragraph\n\n\n  "}`)

	result, err := AdaptResponse("doc-3", payload)
	if err != nil {
		t.Fatalf("AdaptResponse() error = %v", err)
	}
	if len(result.ContentBlocks) != 2 {
		t.Fatalf("expected 2 paragraph blocks, got %d", len(result.ContentBlocks))
	}
	for i, block := range result.ContentBlocks {
		if block.Type != domain.BlockParagraph {
			t.Errorf("block %d type = %v", i, block.Type)
		}
	}
	if result.ContentBlocks[1].Content != "second paragraph" {
		t.Errorf("second block content = %q", result.ContentBlocks[1].Content)
	}
	if result.ContentBlocks[0].Position.Y >= result.ContentBlocks[1].Position.Y {
		t.Error("layout Y must increase across blocks")
	}
}

func TestAdaptResponsePaginated(t *testing.T) {
	payload := []byte(`{"pages": [
		{"page": 1, "blocks": [{"content": "page one"}]},
		{"page": 2, "blocks": [{"content": "page two"}, {"content": "  "}]}
	]}`)

	result, err := AdaptResponse("doc-4", payload)
	if err != nil {
		t.Fatalf("AdaptResponse() error = %v", err)
	}
	if len(result.ContentBlocks) != 2 {
		t.Fatalf("blank blocks must be dropped, got %d blocks", len(result.ContentBlocks))
	}
	if result.ContentBlocks[0].Position.Page != 1 || result.ContentBlocks[1].Position.Page != 2 {
		t.Errorf("pages = %d/%d", result.ContentBlocks[0].Position.Page, result.ContentBlocks[1].Position.Page)
	}
}

func TestAdaptResponseSyntheticRoot(t *testing.T) {
	payload := []byte(`{"content_blocks": [
		{"content": "标题行"},
		{"content": "正文行"}
	]}`)

	result, err := AdaptResponse("doc-5", payload)
	if err != nil {
		t.Fatalf("AdaptResponse() error = %v", err)
	}
	if len(result.StructureNodes) != 1 {
		t.Fatalf("expected single root node, got %d", len(result.StructureNodes))
	}
	root := result.StructureNodes[0]
	if root.ID != "node_doc-5_0" || root.Type != domain.NodeDocument || root.Level != 0 {
		t.Errorf("root = %+v", root)
	}
	if root.Title != "标题行" {
		t.Errorf("root title = %q", root.Title)
	}
	if len(root.ContentBlockIDs) != 2 {
		t.Errorf("root must own all blocks, got %v", root.ContentBlockIDs)
	}
	if result.Tables == nil || result.Figures == nil {
		t.Error("tables and figures must be empty slices, not nil")
	}
}

func TestAdaptResponseRootTitleTruncated(t *testing.T) {
	long := strings.Repeat("长", 150)
	payload := []byte(`{"content_blocks": [{"content": "` + long + `"}]}`)

	result, err := AdaptResponse("doc-6", payload)
	if err != nil {
		t.Fatalf("AdaptResponse() error = %v", err)
	}
	title := result.StructureNodes[0].Title
	if got := len([]rune(title)); got != 103 {
		t.Errorf("truncated title rune length = %d", got)
	}
	if !strings.HasSuffix(title, "...") {
		t.Errorf("title %q missing ellipsis", title)
	}
}

func TestAdaptResponseUnrecognizedShape(t *testing.T) {
	for _, payload := range []string{`{}`, `{"result": "ok"}`, `{"text": "   "}`} {
		if _, err := AdaptResponse("doc-7", []byte(payload)); err == nil {
			t.Errorf("AdaptResponse(%s) expected error", payload)
		}
	}
}

func TestAdaptResponseInvalidJSON(t *testing.T) {
	if _, err := AdaptResponse("doc-8", []byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAdaptResponseClampsConfidence(t *testing.T) {
	payload := []byte(`{"content_blocks": [{"content": "x", "confidence": 1.7}]}`)

	result, err := AdaptResponse("doc-9", payload)
	if err != nil {
		t.Fatalf("AdaptResponse() error = %v", err)
	}
	if got := result.ContentBlocks[0].Metadata.Confidence; got != 0.9 {
		t.Errorf("out-of-range confidence must reset to 0.9, got %v", got)
	}
}
