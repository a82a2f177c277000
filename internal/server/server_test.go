package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/fumiama/go-docx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/stackmatch/internal/catalog"
	"github.com/jonathan/stackmatch/internal/enhancement"
	"github.com/jonathan/stackmatch/internal/fetch"
	"github.com/jonathan/stackmatch/internal/ingestion"
	"github.com/jonathan/stackmatch/internal/pipeline"
	"github.com/jonathan/stackmatch/internal/scholar"
	"github.com/jonathan/stackmatch/internal/server/ratelimit"
	"github.com/jonathan/stackmatch/internal/types"
)

type stubFetcher struct {
	err error
}

func (f stubFetcher) FetchProfile(_ context.Context, ref string) (*types.ScholarProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := scholar.NormalizeProfileReference(ref); err != nil {
		return nil, err
	}
	return &types.ScholarProfile{Name: "Ada Lovelace", Skills: []string{"Python"}}, nil
}

func newTestServer(t *testing.T, fetcher pipeline.ProfileFetcher, rl *ratelimit.Config, log *zap.Logger) http.Handler {
	t.Helper()
	if fetcher == nil {
		fetcher = stubFetcher{}
	}
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	svc := pipeline.New(catalog.Default(), enhancement.NewParser(nil, nil), fetcher)
	s, err := New(Config{Port: 0, RateLimit: rl, Logger: log}, svc)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	w := doJSON(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 67, body["projects"])
	assert.NotContains(t, body, "ai")
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	w := doJSON(t, h, http.MethodGet, "/health", nil)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/projects/suggestions", strings.NewReader(`{}`))
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", decodeBody(t, w)["request_id"])
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	w := doJSON(t, h, http.MethodOptions, "/projects/suggestions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSuggestionsEndpoint(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	w := doJSON(t, h, http.MethodPost, "/projects/suggestions", map[string]any{"skills": []string{"React.js", "Node.js"}})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 67, data["total_projects"])
	assert.Len(t, data["random_projects"], 5)
	assert.NotEmpty(t, data["matched_projects"])
}

func TestSuggestionsEndpoint_Errors(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	w := doJSON(t, h, http.MethodPost, "/projects/suggestions", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Skills array is required", body["error"])
	assert.Equal(t, "input_validation", body["kind"])

	req := httptest.NewRequest(http.MethodPost, "/projects/suggestions", strings.NewReader(`{not json`))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "Invalid request body")
}

func TestBestMatchesEndpoint(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	w := doJSON(t, h, http.MethodPost, "/projects/best-matches", map[string]any{
		"resume_skills":  []string{"Python"},
		"scholar_skills": []string{"TensorFlow"},
		"limit":          3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	assert.LessOrEqual(t, len(data["matches"].([]any)), 3)
	assert.Contains(t, data, "learning_path")
	assert.Contains(t, data, "academic_projects")
}

func TestScholarEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		fetcher    pipeline.ProfileFetcher
		body       map[string]any
		wantStatus int
		wantError  string
	}{
		{"ok", nil, map[string]any{"profile_url": "abc123"}, http.StatusOK, ""},
		{"regional url", nil, map[string]any{"profile_url": "https://scholar.google.co.uk/citations?hl=en&user=abc123"}, http.StatusOK, ""},
		{"missing", nil, map[string]any{}, http.StatusBadRequest, "Google Scholar profile URL is required"},
		{"bad url", nil, map[string]any{"profile_url": "https://example.com/me"}, http.StatusBadRequest, "Invalid Google Scholar URL format"},
		{"upstream", stubFetcher{err: &fetch.Error{URL: "u", Message: "status 503", StatusCode: 503}}, map[string]any{"profile_url": "abc123"}, http.StatusBadGateway, "Failed to fetch Google Scholar profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.fetcher, nil, nil)
			w := doJSON(t, h, http.MethodPost, "/scholar/fetch", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)
			if tt.wantError == "" {
				assert.Equal(t, "Ada Lovelace", body["data"].(map[string]any)["name"])
				return
			}
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func multipartUpload(t *testing.T, fileName, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if content != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resume/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func docxBytes(t *testing.T, lines ...string) []byte {
	t.Helper()
	d := docx.New().WithDefaultTheme()
	for _, l := range lines {
		d.AddParagraph().AddText(l)
	}
	var buf bytes.Buffer
	_, err := d.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseResumeEndpoint(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	req := multipartUpload(t, "cv.docx", ingestion.MIMETypeDOCX, docxBytes(t, "Jane Doe", "Skills: Go, Docker"), map[string]string{"use_ai": "false"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "fallback", data["provenance"])
	assert.Equal(t, "cv.docx", data["metadata"].(map[string]any)["file_name"])
	assert.Contains(t, data["skills"], "Docker")
}

func TestParseResumeEndpoint_Errors(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name:       "no file",
			req:        multipartUpload(t, "", "", nil, map[string]string{"use_ai": "true"}),
			wantStatus: http.StatusBadRequest,
			wantError:  "No file provided",
		},
		{
			name:       "wrong type",
			req:        multipartUpload(t, "cv.txt", "text/plain", []byte("hello"), nil),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid file type. Please upload a PDF or DOCX file.",
		},
		{
			name:       "corrupt pdf",
			req:        multipartUpload(t, "cv.pdf", ingestion.MIMETypePDF, []byte("%PDF-garbage"), nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Failed to parse resume",
		},
		{
			name:       "bad strategy",
			req:        multipartUpload(t, "cv.pdf", ingestion.MIMETypePDF, []byte("x"), map[string]string{"strategy": "magic"}),
			wantStatus: http.StatusBadRequest,
			wantError:  `unknown parsing strategy "magic"`,
		},
		{
			name:       "bad use_ai",
			req:        multipartUpload(t, "cv.pdf", ingestion.MIMETypePDF, []byte("x"), map[string]string{"use_ai": "maybe"}),
			wantStatus: http.StatusBadRequest,
			wantError:  `invalid use_ai value "maybe"`,
		},
		{
			name:       "not multipart",
			req:        httptest.NewRequest(http.MethodPost, "/resume/parse", strings.NewReader("{}")),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid multipart form",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, tt.req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, decodeBody(t, w)["error"], tt.wantError)
		})
	}
}

func TestProjectEndpoints(t *testing.T) {
	h := newTestServer(t, nil, nil, nil)

	w := doJSON(t, h, http.MethodGet, "/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 67, decodeBody(t, w)["total"])

	w = doJSON(t, h, http.MethodGet, "/projects?category=Game+Development", nil)
	assert.EqualValues(t, 2, decodeBody(t, w)["total"])

	w = doJSON(t, h, http.MethodGet, "/projects?category=Data+Science", nil)
	body := decodeBody(t, w)
	assert.EqualValues(t, 0, body["total"])
	assert.Equal(t, []any{}, body["projects"])

	w = doJSON(t, h, http.MethodGet, "/projects?category=Web+Development&skills=React.js,Node.js,MongoDB", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	matches := body["projects"].([]any)
	require.NotEmpty(t, matches)
	assert.EqualValues(t, len(matches), body["total"])
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.(map[string]any)["match_percentage"], float64(30))
	}

	w = doJSON(t, h, http.MethodGet, "/projects/web-001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "web-001", decodeBody(t, w)["id"])

	w = doJSON(t, h, http.MethodGet, "/projects/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodGet, "/projects/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Len(t, body["categories"], 10)
	assert.EqualValues(t, 30, body["counts"].(map[string]any)["Web Development"])
}

func TestRateLimit(t *testing.T) {
	rl := &ratelimit.Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Hour}
	h := newTestServer(t, nil, rl, nil)

	for i := 0; i < 2; i++ {
		w := doJSON(t, h, http.MethodGet, "/projects", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doJSON(t, h, http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limited", decodeBody(t, w)["kind"])

	w = doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := newTestServer(t, nil, nil, zap.New(core))

	doJSON(t, h, http.MethodGet, "/projects/nope", nil)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/projects/nope", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}
