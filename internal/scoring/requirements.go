package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// JobRequirements is the structured data mined from one job-description text.
// Immutable after creation. A MinExperienceYears of 0 means "unspecified",
// which the scorer treats as trivially satisfied, not "zero required".
type JobRequirements struct {
	Skills             []string `json:"skills"`
	Responsibilities   []string `json:"responsibilities"`
	EducationTerms     []string `json:"educationTerms"`
	MinExperienceYears int      `json:"minExperienceYears"`
}

// Each section uses the same capture strategy: a header synonym, then
// everything up to the next blank line, the next title-cased heading line, or
// end of text.
var (
	skillsSectionPattern = regexp.MustCompile(`(?is)(?:(?:required|key)\s+skills|skills|technical\s+qualifications):?\s*(.*?)(?:\n\s*\n|\n[A-Z][a-zA-Z\s]+:|\z)`)
	respSectionPattern   = regexp.MustCompile(`(?is)(?:key\s+responsibilities|responsibilities|duties):?\s*(.*?)(?:\n\s*\n|\n[A-Z][a-zA-Z\s]+:|\z)`)
	eduSectionPattern    = regexp.MustCompile(`(?is)(?:education|qualifications|academic\s+background):?\s*(.*?)(?:\n\s*\n|\n[A-Z][a-zA-Z\s]+:|\z)`)

	minExperiencePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:\+|plus)?\s*(?:years|yrs?)\s+(?:of\s+)?(?:experience|exp)`)

	fragmentSplitPattern = regexp.MustCompile(`[,;\n]`)
)

// MineRequirements extracts structured requirements from job-description text
// using section-header heuristics. Sections without a matching header yield
// empty lists.
func MineRequirements(jdText string) JobRequirements {
	return JobRequirements{
		Skills:             captureSection(skillsSectionPattern, jdText),
		Responsibilities:   captureSection(respSectionPattern, jdText),
		EducationTerms:     captureSection(eduSectionPattern, jdText),
		MinExperienceYears: mineMinExperience(jdText),
	}
}

func captureSection(pattern *regexp.Regexp, text string) []string {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return []string{}
	}
	return splitFragments(match[1])
}

// splitFragments strips bullet punctuation and splits the captured text on
// commas, semicolons, and newlines into trimmed, non-empty fragments.
func splitFragments(section string) []string {
	section = strings.NewReplacer("*", "", "-", "", "•", "").Replace(section)

	fragments := []string{}
	for _, part := range fragmentSplitPattern.Split(section, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fragments = append(fragments, trimmed)
		}
	}
	return fragments
}

func mineMinExperience(text string) int {
	match := minExperiencePattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	years, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return years
}
