package types

// Publication represents one row of an academic profile's publication table
type Publication struct {
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Venue     string `json:"venue"`
	Year      string `json:"year"`
	Citations int    `json:"citations"`
}

// ScholarProfile is the structured form of an academic profile page plus its derived skills.
type ScholarProfile struct {
	Name              string          `json:"name"`
	Affiliation       string          `json:"affiliation"`
	ResearchInterests []string        `json:"research_interests"`
	Publications      []Publication   `json:"publications"`
	CitationCount     int             `json:"citation_count"`
	HIndex            int             `json:"h_index"`
	I10Index          int             `json:"i10_index"`
	Skills            []string        `json:"skills"`
	ProfileURL        string          `json:"profile_url,omitempty"`
	Metadata          ScholarMetadata `json:"metadata"`
}

// ScholarMetadata carries fetch timing for a scholar profile
type ScholarMetadata struct {
	ScrapedAt        string `json:"scraped_at,omitempty"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
	PublicationCount int    `json:"publication_count"`
}
