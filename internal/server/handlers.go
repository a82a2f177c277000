package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/stackmatch/internal/enhancement"
	"github.com/jonathan/stackmatch/internal/ingestion"
	"github.com/jonathan/stackmatch/internal/pipeline"
	"github.com/jonathan/stackmatch/internal/ranking"
	"github.com/jonathan/stackmatch/internal/types"
)

// multipartOverhead is allowed on top of the file for form fields and boundaries.
const multipartOverhead = 1 << 20

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Projects int    `json:"projects"`
	AI       any    `json:"ai,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{Status: "ok", Projects: s.svc.Catalog().Len()}
	if s.ai != nil {
		resp.AI = s.ai.Info()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func writeEnvelope[T any](s *Server, w http.ResponseWriter, env pipeline.Envelope[T]) {
	status := http.StatusOK
	if !env.Success {
		status = HTTPStatus(env.Kind)
	}
	s.jsonResponse(w, status, env)
}

// handleParseResume accepts a multipart upload in field "file". Optional form
// values: use_ai (bool, default true) and strategy (full|skills|validation).
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(ingestion.MaxFileSize + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, r, &ingestion.ValidationError{
				Field:   "size",
				Message: fmt.Sprintf("File too large. Maximum size is %dMB.", ingestion.MaxFileSize/1024/1024),
			})
			return
		}
		s.errorResponse(w, r, &pipeline.InputError{Message: "Invalid multipart form: " + err.Error()})
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp files only
	}

	opts, err := parseOptions(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	raw, err := readUpload(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	writeEnvelope(s, w, s.svc.ParseDocument(r.Context(), raw, opts))
}

func parseOptions(r *http.Request) (enhancement.Options, error) {
	opts := enhancement.DefaultOptions()

	if v := r.FormValue("use_ai"); v != "" {
		useAI, err := strconv.ParseBool(v)
		if err != nil {
			return opts, &pipeline.InputError{Message: fmt.Sprintf("invalid use_ai value %q", v)}
		}
		opts.UseAI = useAI
	}

	strategy, err := enhancement.ParseStrategy(r.FormValue("strategy"))
	if err != nil {
		return opts, &pipeline.InputError{Message: err.Error()}
	}
	opts.Strategy = strategy
	return opts, nil
}

// readUpload returns nil when no file was sent, which ParseDocument reports
// as "No file provided".
func readUpload(r *http.Request) (*ingestion.RawDocument, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &pipeline.InputError{Message: "Invalid file upload: " + err.Error()}
	}
	defer file.Close() //nolint:errcheck // read-only

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return &ingestion.RawDocument{
		FileName:  header.Filename,
		MediaType: ingestion.MediaTypeFromMIME(header.Header.Get("Content-Type")),
		Content:   content,
	}, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, r, &pipeline.InputError{Message: "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// handleFetchScholar fetches the profile in {"profile_url": ...}.
func (s *Server) handleFetchScholar(w http.ResponseWriter, r *http.Request) {
	var req types.ScholarRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeEnvelope(s, w, s.svc.FetchScholar(r.Context(), req.ProfileURL))
}

// handleSuggestions ranks the catalog against {"skills": [...]}.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req types.SuggestionsRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeEnvelope(s, w, s.svc.Suggest(r.Context(), req))
}

// handleBestMatches matches a résumé and a scholar skill list together.
func (s *Server) handleBestMatches(w http.ResponseWriter, r *http.Request) {
	var req types.BestMatchesRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeEnvelope(s, w, s.svc.FindBestMatches(r.Context(), req))
}

// handleListProjects lists the catalog, optionally filtered by the category
// and difficulty query parameters. A comma-separated skills parameter switches
// to the catalog browser view: projects covering at least 30% of their
// required skills, best first.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects := s.svc.Catalog().Filter(types.Category(q.Get("category")), types.Difficulty(q.Get("difficulty")))

	if raw := q.Get("skills"); raw != "" {
		matches := ranking.ProjectsBySkills(strings.Split(raw, ","), projects)
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"projects": matches,
			"total":    len(matches),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"projects": projects,
		"total":    len(projects),
	})
}

// handleGetProject returns one catalog entry.
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	project, ok := s.svc.Catalog().ByID(id)
	if !ok {
		s.jsonResponse(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "Project not found",
			"kind":    "not_found",
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, project)
}

// handleCategories returns the category tally over the whole catalog.
func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	cat := s.svc.Catalog()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"categories":     types.Categories(),
		"counts":         cat.CategoryBreakdown(),
		"total_projects": cat.Len(),
	})
}
