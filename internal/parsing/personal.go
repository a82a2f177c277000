package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/stackmatch/internal/types"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Region-specific ten digit forms are tried before the generic international form.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\+91[-.\s]?)?[6-9]\d{9}`),
	regexp.MustCompile(`(\+91[-.\s]?)?[0-9]{10}`),
	regexp.MustCompile(`(\+?[0-9]{1,4}[-.\s]?)?[0-9]{10,}`),
}

var githubPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)github\.com/([a-zA-Z0-9\-_]+)`),
	regexp.MustCompile(`(?i)github:?\s*([a-zA-Z0-9\-_]+)`),
	regexp.MustCompile(`(?i)git:?\s*github\.com/([a-zA-Z0-9\-_]+)`),
}

var linkedinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)linkedin\.com/in/([a-zA-Z0-9\-_]+)`),
	regexp.MustCompile(`(?i)linkedin:?\s*([a-zA-Z0-9\-_]+)`),
	regexp.MustCompile(`(?i)in\.linkedin\.com/([a-zA-Z0-9\-_]+)`),
}

var websitePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([a-zA-Z0-9\-]+\.is-a\.dev)`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9\-]+\.dev)`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9\-]+\.vercel\.app)`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9\-]+\.netlify\.app)`),
	regexp.MustCompile(`(?i)(https?://[a-zA-Z0-9\-]+\.[a-zA-Z]{2,})`),
}

var twitterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)x\.com/([a-zA-Z0-9_]+)`),
	regexp.MustCompile(`(?i)twitter\.com/([a-zA-Z0-9_]+)`),
}

// PersonalInfo extracts contact details. The name is the first two tokens of the
// first line, which is only a heuristic.
func (e *Extractor) PersonalInfo() types.PersonalInfo {
	var info types.PersonalInfo

	for _, line := range strings.Split(e.text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		if len(words) >= 2 {
			info.Name = words[0] + " " + words[1]
		} else {
			info.Name = words[0]
		}
		break
	}

	info.Email = emailPattern.FindString(e.text)

	for _, p := range phonePatterns {
		if m := p.FindString(e.text); m != "" {
			info.Phone = strings.TrimSpace(m)
			break
		}
	}

	if user := firstCapture(githubPatterns, e.text); user != "" {
		info.GitHub = "https://github.com/" + user
	}
	if user := firstCapture(linkedinPatterns, e.text); user != "" {
		info.LinkedIn = "https://linkedin.com/in/" + user
	}
	if site := firstCapture(websitePatterns, e.text); site != "" {
		info.Website = withScheme(site)
	}
	// An X/Twitter handle stands in for a missing personal site
	if info.Website == "" {
		if handle := firstCapture(twitterPatterns, e.text); handle != "" {
			info.Website = "https://x.com/" + handle
		}
	}

	return info
}

// firstCapture returns the first capture group of the first pattern that matches,
// or the whole match when the group is empty.
func firstCapture(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			return m[1]
		}
		return m[0]
	}
	return ""
}

func withScheme(url string) string {
	if strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + url
}
