package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/docinsight/internal/core/ports"
	"github.com/kirillkom/docinsight/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	uploadUC ports.DocumentIngestor
	reader   ports.DocumentReader
	remover  ports.DocumentRemover
	metrics  *metrics.HTTPServerMetrics

	maxUploadBytes int64

	rateLimitRPS   int
	rateLimitBurst int
	maxConcurrent  int
	admissionWait  time.Duration
}

type RouterOptions struct {
	MaxUploadBytes int64
	RateLimitRPS   int
	RateLimitBurst int
	MaxConcurrent  int
	AdmissionWait  time.Duration
}

func NewRouter(
	uploadUC ports.DocumentIngestor,
	reader ports.DocumentReader,
	remover ports.DocumentRemover,
	httpMetrics *metrics.HTTPServerMetrics,
	options RouterOptions,
) *Router {
	if options.MaxUploadBytes <= 0 {
		options.MaxUploadBytes = 32 << 20
	}
	if options.AdmissionWait <= 0 {
		options.AdmissionWait = 200 * time.Millisecond
	}
	return &Router{
		uploadUC:       uploadUC,
		reader:         reader,
		remover:        remover,
		metrics:        httpMetrics,
		maxUploadBytes: options.MaxUploadBytes,
		rateLimitRPS:   options.RateLimitRPS,
		rateLimitBurst: options.RateLimitBurst,
		maxConcurrent:  options.MaxConcurrent,
		admissionWait:  options.AdmissionWait,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.maxConcurrent > 0 {
		handler = backpressureMiddleware(handler, rt.maxConcurrent, rt.admissionWait, rt.metrics)
	}
	if rt.rateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst, rt.metrics)
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file exceeds upload size limit"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	doc, err := rt.uploadUC.Upload(r.Context(), fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordUpload(serviceName, mimeType, fileHeader.Size)
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.reader.List(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		rt.getDocument(w, r, id)
	case sub == "" && r.Method == http.MethodDelete:
		rt.deleteDocument(w, r, id)
	case sub == "analysis" && r.Method == http.MethodGet:
		rt.getAnalysis(w, r, id)
	case sub == "" || sub == "analysis":
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	result, err := rt.reader.GetAnalysis(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) deleteDocument(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.remover.Delete(r.Context(), id); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
