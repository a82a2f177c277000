package scholar

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jonathan/stackmatch/internal/fetch"
	"github.com/jonathan/stackmatch/internal/logger"
	"github.com/jonathan/stackmatch/internal/types"
)

// DefaultTimeout bounds a single profile fetch.
const DefaultTimeout = 30 * time.Second

// DefaultRatePerMinute is the default outbound request budget.
const DefaultRatePerMinute = 20

// Client fetches and parses profile pages. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	render     fetch.Renderer
	log        *zap.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for plain fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithRatePerMinute limits outbound fetches. Zero or less disables limiting.
func WithRatePerMinute(n int) Option {
	return func(cl *Client) {
		if n <= 0 {
			cl.limiter = nil
			return
		}
		cl.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

// WithRenderer enables a rendering fallback for pages that come back without
// profile markup.
func WithRenderer(r fetch.Renderer) Option {
	return func(cl *Client) { cl.render = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// NewClient returns a Client with the default timeout and rate limit.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	WithRatePerMinute(DefaultRatePerMinute)(c)
	for _, opt := range opts {
		opt(c)
	}
	c.log = logger.OrNop(c.log)
	return c
}

// FetchProfile resolves ref, downloads the profile page and returns the parsed
// profile with derived skills. Errors are *InvalidReferenceError for bad input
// and *fetch.Error for transport failures or non-2xx responses.
func (c *Client) FetchProfile(ctx context.Context, ref string) (*types.ScholarProfile, error) {
	start := c.now()

	profileURL, err := NormalizeProfileReference(ref)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &fetch.Error{URL: profileURL, Message: "rate limit wait aborted", Cause: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	html, err := c.download(ctx, profileURL)
	if err != nil {
		return nil, err
	}

	profile, err := ParseProfile(html)
	if err != nil {
		return nil, &fetch.Error{URL: profileURL, Message: "unreadable profile page", Cause: err}
	}

	profile.Skills = DeriveSkills(profile)
	profile.ProfileURL = profileURL
	profile.Metadata = types.ScholarMetadata{
		ScrapedAt:        c.now().UTC().Format(time.RFC3339),
		ProcessingTimeMS: c.now().Sub(start).Milliseconds(),
		PublicationCount: len(profile.Publications),
	}

	c.log.Info("fetched scholar profile",
		zap.String("url", profileURL),
		zap.Int("publications", len(profile.Publications)),
		zap.Int("skills", len(profile.Skills)),
	)

	return profile, nil
}

func (c *Client) download(ctx context.Context, profileURL string) (string, error) {
	opts := fetch.DefaultOptions()
	opts.Timeout = c.timeout
	opts.UserAgent = fetch.ScholarUserAgent
	opts.Headers = fetch.BrowserHeaders()
	opts.Client = c.httpClient

	result, err := fetch.URL(ctx, profileURL, opts)
	if err != nil {
		return "", err
	}

	if fetch.HasSelector(result.HTML, selName) {
		return result.HTML, nil
	}

	preview, _ := fetch.ExtractMainText(result.HTML, fetch.DefaultTextSelectors())
	c.log.Warn("profile markup missing from page",
		zap.String("url", profileURL),
		zap.String("preview", logger.TruncateForLog(preview, 120)),
	)

	if c.render == nil {
		return result.HTML, nil
	}

	rendered, err := c.render(ctx, profileURL)
	if err != nil {
		c.log.Warn("browser rendering failed", zap.String("url", profileURL), zap.Error(err))
		return result.HTML, nil
	}
	return rendered, nil
}
