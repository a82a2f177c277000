// Package pipeline wires ingestion, extraction, scholar fetching and ranking
// into the operations exposed by the CLI and the HTTP API.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/stackmatch/internal/catalog"
	"github.com/jonathan/stackmatch/internal/enhancement"
	"github.com/jonathan/stackmatch/internal/ingestion"
	"github.com/jonathan/stackmatch/internal/logger"
	"github.com/jonathan/stackmatch/internal/ranking"
	"github.com/jonathan/stackmatch/internal/types"
)

// RandomSampleSize is the number of discovery projects in a suggestion response.
const RandomSampleSize = 5

// ProfileFetcher fetches and parses an academic profile. *scholar.Client implements it.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, ref string) (*types.ScholarProfile, error)
}

// ProgressEvent represents a progress update during a pipeline call
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. During
// CombinedProfile it may be called from two goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Service runs the boundary operations. It is safe for concurrent use; all
// per-call state lives in the call.
type Service struct {
	catalog    *catalog.Catalog
	parser     *enhancement.Parser
	scholar    ProfileFetcher
	log        *zap.Logger
	rng        *rand.Rand
	onProgress ProgressCallback
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = logger.OrNop(l) }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(s *Service) { s.onProgress = cb }
}

// WithRand fixes the random source used for the discovery sample. A shared
// *rand.Rand is not safe for concurrent use, so this is meant for tests and the CLI.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// New returns a Service. parser and fetcher may be nil, which disables
// résumé parsing and scholar fetching respectively.
func New(cat *catalog.Catalog, parser *enhancement.Parser, fetcher ProfileFetcher, opts ...Option) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Service{
		catalog: cat,
		parser:  parser,
		scholar: fetcher,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the service ranks against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) emit(step, message string, content any) {
	if s.onProgress != nil {
		s.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// ParseDocument validates and decodes raw, then extracts a profile from its
// text. Upload and decoding failures are returned as a failed envelope; model
// failures fall back to the deterministic extractor unless opts forbid it.
func (s *Service) ParseDocument(ctx context.Context, raw *ingestion.RawDocument, opts enhancement.Options) Envelope[types.ResumeData] {
	start := time.Now()
	data, err := s.parseDocument(ctx, raw, opts)
	if err != nil {
		f := NewFailure(err)
		s.log.Warn("resume parsing failed",
			zap.String(logger.FieldRequestID, RequestID(ctx)),
			zap.String("kind", string(f.Kind)),
			zap.Error(err),
		)
		return fail[types.ResumeData](ctx, f, start)
	}
	return succeed(ctx, data, start)
}

// errResumeUnsupported is returned when the service has no parser.
var errResumeUnsupported = errors.New("resume parsing is not configured")

func (s *Service) parseDocument(ctx context.Context, raw *ingestion.RawDocument, opts enhancement.Options) (*types.ResumeData, error) {
	start := time.Now()
	if s.parser == nil {
		return nil, errResumeUnsupported
	}

	s.emit("ingest", "Extracting document text", nil)
	doc, err := ingestion.ExtractText(ctx, raw)
	if err != nil {
		return nil, err
	}

	s.emit("extract", fmt.Sprintf("Extracting profile from %d characters", len(doc.Text)), nil)
	res := s.parser.ParseResume(ctx, doc.Text, opts)
	if !res.Success {
		if res.Err != nil {
			return nil, fmt.Errorf("%s: %w", res.Error, res.Err)
		}
		return nil, errors.New(res.Error)
	}

	meta := ingestion.NewMetadata(raw, doc)
	meta.ProcessingTimeMS = time.Since(start).Milliseconds()
	meta.ParsingSource = res.Source
	meta.AIProcessingTimeMS = res.AIProcessingTimeMS

	data := &types.ResumeData{ExtractionResult: *res.Data, Metadata: meta}
	s.emit("extract", fmt.Sprintf("Found %d skills (%s)", len(data.Skills), res.Source), data.Skills)
	return data, nil
}

// FetchScholar fetches and parses the academic profile ref points at.
func (s *Service) FetchScholar(ctx context.Context, ref string) Envelope[types.ScholarProfile] {
	start := time.Now()
	profile, err := s.fetchScholar(ctx, ref)
	if err != nil {
		f := NewFailure(err)
		s.log.Warn("scholar fetch failed",
			zap.String(logger.FieldRequestID, RequestID(ctx)),
			zap.String("kind", string(f.Kind)),
			zap.Error(err),
		)
		return fail[types.ScholarProfile](ctx, f, start)
	}
	return succeed(ctx, profile, start)
}

func (s *Service) fetchScholar(ctx context.Context, ref string) (*types.ScholarProfile, error) {
	req := types.ScholarRequest{ProfileURL: ref}
	if err := req.Validate(); err != nil {
		return nil, &InputError{Message: "Google Scholar profile URL is required"}
	}
	if s.scholar == nil {
		return nil, errors.New("scholar fetching is not configured")
	}

	s.emit("scholar", "Fetching scholar profile", ref)
	profile, err := s.scholar.FetchProfile(ctx, ref)
	if err != nil {
		return nil, err
	}
	s.emit("scholar", fmt.Sprintf("Found %d publications and %d skills", len(profile.Publications), len(profile.Skills)), profile.Skills)
	return profile, nil
}

// Suggestions is the response of Suggest.
type Suggestions struct {
	MatchedProjects    []types.MatchedProject `json:"matched_projects"`
	RandomProjects     []types.ProjectIdea    `json:"random_projects"`
	ProjectsByCategory map[types.Category]int `json:"projects_by_category"`
	TotalProjects      int                    `json:"total_projects"`
	UserSkills         []string               `json:"user_skills"`
}

// Suggest ranks the catalog against req.Skills and adds a random discovery
// sample and the category tally.
func (s *Service) Suggest(ctx context.Context, req types.SuggestionsRequest) Envelope[Suggestions] {
	start := time.Now()
	out, err := s.suggest(req)
	if err != nil {
		return fail[Suggestions](ctx, NewFailure(err), start)
	}
	return succeed(ctx, out, start)
}

func (s *Service) suggest(req types.SuggestionsRequest) (*Suggestions, error) {
	if req.Skills == nil {
		return nil, &InputError{Message: "Skills array is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userSkills := req.Skills
	if req.Standardize {
		userSkills = ranking.StandardizeSkills(userSkills)
	}

	projects := s.catalog.All()
	matched := ranking.RankProjects(userSkills, projects, ranking.DefaultLimit)
	s.emit("rank", fmt.Sprintf("%d of %d projects match", len(matched), len(projects)), nil)

	return &Suggestions{
		MatchedProjects:    matched,
		RandomProjects:     s.catalog.RandomSample(RandomSampleSize, s.rng),
		ProjectsByCategory: s.catalog.CategoryBreakdown(),
		TotalProjects:      s.catalog.Len(),
		UserSkills:         userSkills,
	}, nil
}

// BestMatches is the response of FindBestMatches.
type BestMatches struct {
	Matches          []types.ProjectMatch `json:"matches"`
	LearningPath     []string             `json:"learning_path"`
	AcademicProjects []types.ProjectMatch `json:"academic_projects"`
}

// FindBestMatches ranks the catalog against a résumé and a scholar skill list together.
func (s *Service) FindBestMatches(ctx context.Context, req types.BestMatchesRequest) Envelope[BestMatches] {
	start := time.Now()
	if err := req.Validate(); err != nil {
		return fail[BestMatches](ctx, NewFailure(err), start)
	}
	return succeed(ctx, s.bestMatches(req.ResumeSkills, req.ScholarSkills, req.Limit), start)
}

func (s *Service) bestMatches(resumeSkills, scholarSkills []string, limit int) *BestMatches {
	projects := s.catalog.All()
	out := &BestMatches{
		Matches:          ranking.FindBestMatches(resumeSkills, scholarSkills, projects, limit),
		LearningPath:     ranking.RecommendedLearningPath(resumeSkills, scholarSkills, projects),
		AcademicProjects: []types.ProjectMatch{},
	}
	if len(scholarSkills) > 0 {
		out.AcademicProjects = ranking.AcademicProjects(scholarSkills, projects, ranking.AcademicDefaultLimit)
	}
	if out.LearningPath == nil {
		out.LearningPath = []string{}
	}
	return out
}

// Combined is a résumé and a scholar profile matched together.
type Combined struct {
	Resume  *types.ResumeData     `json:"resume"`
	Scholar *types.ScholarProfile `json:"scholar"`
	BestMatches
}

// CombinedProfile parses raw and fetches ref concurrently, then matches both
// skill lists against the catalog. The first failure cancels the other branch.
func (s *Service) CombinedProfile(ctx context.Context, raw *ingestion.RawDocument, ref string, opts enhancement.Options) (*Combined, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var (
		resume  *types.ResumeData
		profile *types.ScholarProfile
	)

	g.Go(func() error {
		r, err := s.parseDocument(gCtx, raw, opts)
		if err != nil {
			return fmt.Errorf("resume branch failed: %w", err)
		}
		resume = r
		return nil
	})

	g.Go(func() error {
		p, err := s.fetchScholar(gCtx, ref)
		if err != nil {
			return fmt.Errorf("scholar branch failed: %w", err)
		}
		profile = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Combined{
		Resume:      resume,
		Scholar:     profile,
		BestMatches: *s.bestMatches(resume.Skills, profile.Skills, 0),
	}, nil
}
