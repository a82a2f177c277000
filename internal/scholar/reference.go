// Package scholar fetches academic profile pages, parses them and derives a
// technology skill list from research interests and publications.
package scholar

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// profileHostPrefix matches scholar.google.com and the regional hosts.
const profileHostPrefix = "scholar.google."

const profilePath = "/citations"

const profileURLTemplate = "https://scholar.google.com/citations?user=%s&hl=en"

var userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// InvalidReferenceError reports input that is neither a profile URL nor a bare user id.
type InvalidReferenceError struct {
	Input string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid Google Scholar profile reference %q: expected a profile URL or user id", e.Input)
}

// NormalizeProfileReference returns the canonical profile URL for ref, which
// is either a bare user id or a citations URL on any scholar.google.* host
// with a user parameter in any position.
func NormalizeProfileReference(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &InvalidReferenceError{Input: ref}
	}

	if userIDPattern.MatchString(ref) {
		return fmt.Sprintf(profileURLTemplate, ref), nil
	}

	if user, ok := profileUser(ref); ok {
		return fmt.Sprintf(profileURLTemplate, user), nil
	}

	return "", &InvalidReferenceError{Input: ref}
}

func profileUser(ref string) (string, bool) {
	raw := ref
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(u.Hostname()), profileHostPrefix) {
		return "", false
	}
	if strings.TrimSuffix(u.Path, "/") != profilePath {
		return "", false
	}

	user := u.Query().Get("user")
	if !userIDPattern.MatchString(user) {
		return "", false
	}
	return user, true
}
