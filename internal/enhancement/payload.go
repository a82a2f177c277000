package enhancement

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/stackmatch/internal/skills"
	"github.com/jonathan/stackmatch/internal/types"
)

// flexString accepts a JSON string, number or null. Models often return a GPA
// or a year as a number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*s = flexString(t)
	case float64:
		*s = flexString(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		*s = ""
	}
	return nil
}

func (s flexString) trimmed() string {
	return strings.TrimSpace(string(s))
}

type personalPayload struct {
	Name     flexString `json:"name,omitempty"`
	Email    flexString `json:"email,omitempty"`
	Phone    flexString `json:"phone,omitempty"`
	LinkedIn flexString `json:"linkedin,omitempty"`
	GitHub   flexString `json:"github,omitempty"`
	Website  flexString `json:"website,omitempty"`
}

type educationPayload struct {
	Institution flexString `json:"institution,omitempty"`
	Degree      flexString `json:"degree,omitempty"`
	Field       flexString `json:"field,omitempty"`
	StartDate   flexString `json:"startDate,omitempty"`
	EndDate     flexString `json:"endDate,omitempty"`
	GPA         flexString `json:"gpa,omitempty"`
	Location    flexString `json:"location,omitempty"`
}

type experiencePayload struct {
	Company     flexString `json:"company,omitempty"`
	Position    flexString `json:"position,omitempty"`
	StartDate   flexString `json:"startDate,omitempty"`
	EndDate     flexString `json:"endDate,omitempty"`
	Description stringList `json:"description"`
}

// stringList keeps the string elements of a JSON array and ignores anything else.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	*l = stringItems(data)
	return nil
}

// Payload is the camelCase document exchanged with the model. Decoding is
// lenient: a field of the wrong shape decodes as empty instead of failing.
type Payload struct {
	PersonalInfo personalPayload     `json:"personalInfo"`
	Skills       []string            `json:"skills"`
	Education    []educationPayload  `json:"education"`
	Experience   []experiencePayload `json:"experience"`
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw struct {
		PersonalInfo json.RawMessage `json:"personalInfo"`
		Skills       json.RawMessage `json:"skills"`
		Education    json.RawMessage `json:"education"`
		Experience   json.RawMessage `json:"experience"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var personal personalPayload
	if json.Unmarshal(raw.PersonalInfo, &personal) == nil {
		p.PersonalInfo = personal
	}
	p.Skills = stringItems(raw.Skills)
	p.Education = objectItems[educationPayload](raw.Education)
	p.Experience = objectItems[experiencePayload](raw.Experience)
	return nil
}

// stringItems returns the string elements of a JSON array, or nil when data is
// not an array.
func stringItems(data json.RawMessage) []string {
	var items []any
	if json.Unmarshal(data, &items) != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// objectItems decodes each array element into T, skipping elements that do not fit.
func objectItems[T any](data json.RawMessage) []T {
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if json.Unmarshal(item, &v) == nil {
			out = append(out, v)
		}
	}
	return out
}

// payloadFrom converts an extraction result into the model's document shape.
func payloadFrom(r types.ExtractionResult) Payload {
	p := Payload{
		PersonalInfo: personalPayload{
			Name:     flexString(r.PersonalInfo.Name),
			Email:    flexString(r.PersonalInfo.Email),
			Phone:    flexString(r.PersonalInfo.Phone),
			LinkedIn: flexString(r.PersonalInfo.LinkedIn),
			GitHub:   flexString(r.PersonalInfo.GitHub),
			Website:  flexString(r.PersonalInfo.Website),
		},
		Skills:     append([]string{}, r.Skills...),
		Education:  make([]educationPayload, 0, len(r.Education)),
		Experience: make([]experiencePayload, 0, len(r.Experience)),
	}
	for _, e := range r.Education {
		p.Education = append(p.Education, educationPayload{
			Institution: flexString(e.Institution),
			Degree:      flexString(e.Degree),
			Field:       flexString(e.Field),
			StartDate:   flexString(e.StartDate),
			EndDate:     flexString(e.EndDate),
			GPA:         flexString(e.GPA),
			Location:    flexString(e.Location),
		})
	}
	for _, e := range r.Experience {
		p.Experience = append(p.Experience, experiencePayload{
			Company:     flexString(e.Company),
			Position:    flexString(e.Position),
			StartDate:   flexString(e.StartDate),
			EndDate:     flexString(e.EndDate),
			Description: append(stringList{}, e.Description...),
		})
	}
	return p
}

// ValidateResponse reshapes a decoded model Payload into an extraction result:
// skills are trimmed and deduplicated, an email without "@" is dropped and
// profile URLs without a scheme get "https://".
func ValidateResponse(p Payload, rawText string) types.ExtractionResult {
	info := types.PersonalInfo{
		Name:     p.PersonalInfo.Name.trimmed(),
		Email:    p.PersonalInfo.Email.trimmed(),
		Phone:    p.PersonalInfo.Phone.trimmed(),
		LinkedIn: withHTTPS(p.PersonalInfo.LinkedIn.trimmed()),
		GitHub:   withHTTPS(p.PersonalInfo.GitHub.trimmed()),
		Website:  withHTTPS(p.PersonalInfo.Website.trimmed()),
	}
	if !strings.Contains(info.Email, "@") {
		info.Email = ""
	}

	result := types.ExtractionResult{
		PersonalInfo: info,
		Skills:       skills.Dedupe(p.Skills),
		Education:    make([]types.EducationEntry, 0, len(p.Education)),
		Experience:   make([]types.ExperienceEntry, 0, len(p.Experience)),
		RawText:      rawText,
	}

	for _, e := range p.Education {
		result.Education = append(result.Education, types.EducationEntry{
			Institution: e.Institution.trimmed(),
			Degree:      e.Degree.trimmed(),
			Field:       e.Field.trimmed(),
			StartDate:   e.StartDate.trimmed(),
			EndDate:     e.EndDate.trimmed(),
			GPA:         e.GPA.trimmed(),
			Location:    e.Location.trimmed(),
		})
	}
	for _, e := range p.Experience {
		entry := types.ExperienceEntry{
			Company:   e.Company.trimmed(),
			Position:  e.Position.trimmed(),
			StartDate: e.StartDate.trimmed(),
			EndDate:   e.EndDate.trimmed(),
		}
		for _, d := range e.Description {
			if d = strings.TrimSpace(d); d != "" {
				entry.Description = append(entry.Description, d)
			}
		}
		result.Experience = append(result.Experience, entry)
	}
	return result
}

func withHTTPS(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + url
}
