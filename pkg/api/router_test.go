package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/config"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/lexicon"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/nlp"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/services"
)

func newTestRouter(apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	extractor := extract.NewExtractor(nlp.Stemmer{},
		lexicon.New("cat", "dog"), lexicon.Stopwords())
	service := services.NewExtractionService(extractor)

	cfg := &config.Config{}
	cfg.API.Key = apiKey
	return NewRouter(cfg, service)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestStartExtractionValidation(t *testing.T) {
	router := newTestRouter("")

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"missing path", `{"start_page": 1, "end_page": 2}`, http.StatusBadRequest},
		{"zero start page", `{"path": "/tmp/x.pdf", "start_page": 0, "end_page": 2}`, http.StatusBadRequest},
		{"missing file", `{"path": "/tmp/definitely-not-here.pdf", "start_page": 1, "end_page": 2}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/extractions", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestExtractionIDParsing(t *testing.T) {
	router := newTestRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/extractions/not-a-uuid", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/extractions/00000000-0000-0000-0000-000000000001", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unknown id", w.Code)
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	router := newTestRouter("sekrit")

	// Health stays open.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", w.Code)
	}

	// Extraction routes require the key.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/extractions/00000000-0000-0000-0000-000000000001", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status without key = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/extractions/00000000-0000-0000-0000-000000000001", nil)
	req.Header.Set("X-API-Key", "wrong")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status with wrong key = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/extractions/00000000-0000-0000-0000-000000000001", nil)
	req.Header.Set("X-API-Key", "sekrit")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status with correct key = %d, want 404 for unknown id", w.Code)
	}
}
