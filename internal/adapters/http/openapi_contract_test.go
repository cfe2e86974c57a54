package httpadapter

import (
	"context"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

// The served routes must stay declared in api/openapi.yaml.
func TestOpenAPIDocumentCoversServedRoutes(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../api/openapi.yaml")
	if err != nil {
		t.Fatalf("load openapi document: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("validate openapi document: %v", err)
	}

	wantOps := []struct {
		path   string
		method string
	}{
		{"/healthz", http.MethodGet},
		{"/v1/documents", http.MethodPost},
		{"/v1/documents", http.MethodGet},
		{"/v1/documents/{documentId}", http.MethodGet},
		{"/v1/documents/{documentId}", http.MethodDelete},
		{"/v1/documents/{documentId}/analysis", http.MethodGet},
	}
	for _, want := range wantOps {
		item := doc.Paths.Find(want.path)
		if item == nil {
			t.Fatalf("path %s missing from openapi document", want.path)
		}
		if item.GetOperation(want.method) == nil {
			t.Fatalf("operation %s %s missing from openapi document", want.method, want.path)
		}
	}
}

func TestOpenAPIDocumentStatusEnum(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../api/openapi.yaml")
	if err != nil {
		t.Fatalf("load openapi document: %v", err)
	}

	schema := doc.Components.Schemas["Document"]
	if schema == nil {
		t.Fatal("Document schema missing")
	}
	statusProp := schema.Value.Properties["status"]
	if statusProp == nil {
		t.Fatal("Document.status property missing")
	}

	want := map[string]bool{"uploaded": false, "parsing": false, "completed": false, "failed": false}
	for _, v := range statusProp.Value.Enum {
		s, _ := v.(string)
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for status, seen := range want {
		if !seen {
			t.Fatalf("status enum missing %q", status)
		}
	}
}
