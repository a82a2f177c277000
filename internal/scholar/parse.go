package scholar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/stackmatch/internal/types"
)

// Selectors for the citations profile markup.
const (
	selName        = "#gsc_prf_in"
	selAffiliation = ".gsc_prf_il"
	selInterests   = ".gsc_prf_int a"
	selStats       = ".gsc_rsb_std"
	selPubRow      = ".gsc_a_tr"
	selPubTitle    = ".gsc_a_at"
	selPubYear     = ".gsc_a_y .gsc_a_h"
	selPubCites    = ".gsc_a_c a"
)

const unknown = "Unknown"

// ParseProfile extracts profile fields from a citations page. Missing elements
// yield "Unknown", empty lists or zero counts, never an error; only HTML that
// cannot be read at all fails.
func ParseProfile(html string) (*types.ScholarProfile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile HTML: %w", err)
	}

	profile := &types.ScholarProfile{
		Name:              textOr(doc.Find(selName), unknown),
		Affiliation:       textOr(doc.Find(selAffiliation).First(), unknown),
		ResearchInterests: []string{},
		Publications:      []types.Publication{},
		Skills:            []string{},
	}

	doc.Find(selInterests).Each(func(_ int, s *goquery.Selection) {
		if interest := strings.TrimSpace(s.Text()); interest != "" {
			profile.ResearchInterests = append(profile.ResearchInterests, interest)
		}
	})

	stats := statsTable{cells: doc.Find(selStats)}
	profile.CitationCount = stats.Citations()
	profile.HIndex = stats.HIndex()
	profile.I10Index = stats.I10Index()

	doc.Find(selPubRow).Each(func(_ int, row *goquery.Selection) {
		if pub, ok := parsePublication(row); ok {
			profile.Publications = append(profile.Publications, pub)
		}
	})

	return profile, nil
}

// parsePublication reads one table row. Authors and venue are the first and
// second siblings after the title link.
func parsePublication(row *goquery.Selection) (types.Publication, bool) {
	title := row.Find(selPubTitle)
	pub := types.Publication{
		Title:     strings.TrimSpace(title.Text()),
		Authors:   strings.TrimSpace(title.Next().Text()),
		Venue:     strings.TrimSpace(title.Next().Next().Text()),
		Year:      strings.TrimSpace(row.Find(selPubYear).Text()),
		Citations: leadingInt(row.Find(selPubCites).Text()),
	}
	return pub, pub.Title != ""
}

// statsTable reads the metrics sidebar. Scholar renders it as
// all-time/since-year pairs, so the all-time values sit at cells 0, 2 and 4.
type statsTable struct {
	cells *goquery.Selection
}

func (t statsTable) cell(i int) int {
	return leadingInt(t.cells.Eq(i).Text())
}

// Citations is the all-time citation count.
func (t statsTable) Citations() int { return t.cell(0) }

// HIndex is the all-time h-index.
func (t statsTable) HIndex() int { return t.cell(2) }

// I10Index is the all-time i10-index.
func (t statsTable) I10Index() int { return t.cell(4) }

func textOr(s *goquery.Selection, fallback string) string {
	if text := strings.TrimSpace(s.Text()); text != "" {
		return text
	}
	return fallback
}

// leadingInt parses the leading decimal digits of s after removing thousands
// separators. Text without leading digits, or digits out of int range, yields 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
