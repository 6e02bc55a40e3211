// Package parser turns unstructured résumé text into a structured
// CandidateRecord using rule-based heuristics. Extraction is best-effort:
// each field is derived by an independent sub-step, and a miss in one field
// never prevents extraction of the others.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"resume-screener/internal/ner"
	"resume-screener/internal/vocab"
)

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?(\d{1,3}))?[-. (]*(\d{3})[-. )]*(\d{3})[-. ]*(\d{4})(?: *x(\d+))?`)
	phoneRunPattern = regexp.MustCompile(`\d{10}`)

	experiencePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:years|yrs?)\s+(?:of)?\s*(?:experience|exp|background)`)

	educationHeadingPattern = regexp.MustCompile(`(?i)(?:education|academic background|qualifications)`)
	degreePattern           = regexp.MustCompile(`(?i)(?:b\.?\s?s|m\.?\s?s|b\.?\s?a|ph\.?\s?d|bachelor|master|doctor|eng\.)[^.\n]*?(?:in|of)\s+([a-zA-Z\s]+)`)
	universityPattern       = regexp.MustCompile(`(?i)(?:university|institute|college|school)\s+of\s+([a-zA-Z\s]+)|([a-zA-Z\s]*(?:university|institute|college))`)
	yearPattern             = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// A title-cased line, optionally ending with a colon, terminates a
	// captured section.
	headingLinePattern = regexp.MustCompile(`^[A-Z][A-Za-z ]*:?\s*$`)
)

// Extractor converts raw résumé text into CandidateRecords. It holds only
// process-wide read-only dependencies and is safe for concurrent use.
type Extractor struct {
	vocabulary *vocab.Vocabulary
	recognizer ner.Recognizer
}

// New constructs an Extractor. The vocabulary is required; the recognizer may
// be nil, in which case the name heuristic relies on the line fallback only.
func New(vocabulary *vocab.Vocabulary, recognizer ner.Recognizer) *Extractor {
	return &Extractor{vocabulary: vocabulary, recognizer: recognizer}
}

// Extract parses key information out of résumé text. It fails only on blank
// input or a missing vocabulary; heuristic misses leave fields absent.
func (e *Extractor) Extract(rawText string) (CandidateRecord, error) {
	if strings.TrimSpace(rawText) == "" {
		return CandidateRecord{}, ErrEmptyInput
	}
	if e.vocabulary.Len() == 0 {
		return CandidateRecord{}, ErrNoVocabulary
	}

	record := CandidateRecord{
		Skills:            []string{},
		ExperienceSignals: []string{},
		EducationSignals:  []string{},
		RawText:           rawText,
	}

	record.Name = e.extractName(rawText)
	record.Email = extractEmail(rawText)
	record.Phone = extractPhone(rawText)
	record.Skills = e.extractSkills(rawText)
	record.ExperienceSignals = extractExperience(rawText)
	record.EducationSignals = extractEducation(rawText)

	return record, nil
}

// extractName applies ordered name strategies, first success wins.
func (e *Extractor) extractName(text string) string {
	strategies := []func(string) string{
		e.nameFromEntities,
		nameFromFirstLines,
	}
	for _, strategy := range strategies {
		if name := strategy(text); name != "" {
			return name
		}
	}
	return ""
}

// nameFromEntities takes the first person entity with at least two tokens.
// Recognizer errors fall through to the next strategy.
func (e *Extractor) nameFromEntities(text string) string {
	if e.recognizer == nil {
		return ""
	}
	people, err := e.recognizer.People(text)
	if err != nil {
		return ""
	}
	for _, person := range people {
		if len(strings.Fields(person)) >= 2 {
			return person
		}
	}
	return ""
}

// nameFromFirstLines scans the first three non-blank lines and accepts the
// first that does not look like an email, a phone number, or a long title.
func nameFromFirstLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
		if len(lines) == 3 {
			break
		}
	}
	for _, line := range lines {
		if strings.Contains(line, "@") {
			continue
		}
		if phoneRunPattern.MatchString(line) {
			continue
		}
		if len(strings.Fields(line)) >= 5 {
			continue
		}
		return line
	}
	return ""
}

func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

// extractPhone concatenates the matched number groups without separators.
func extractPhone(text string) string {
	match := phonePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	var b strings.Builder
	for _, group := range match[1:] {
		b.WriteString(group)
	}
	return b.String()
}

// extractSkills records every vocabulary phrase that appears as a
// case-insensitive substring of the text. The vocabulary is sorted longest
// phrase first, so broader phrases are tested before the shorter phrases they
// contain; shorter phrases are still recorded when they match independently.
func (e *Extractor) extractSkills(text string) []string {
	textLower := strings.ToLower(text)
	found := []string{}
	for _, skill := range e.vocabulary.Phrases() {
		if strings.Contains(textLower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// extractExperience produces at most one canonical aggregate fragment, not a
// work-history timeline.
func extractExperience(text string) []string {
	match := experiencePattern.FindStringSubmatch(text)
	if match == nil {
		return []string{}
	}
	return []string{fmt.Sprintf("%s years experience", match[1])}
}

// extractEducation locates an education heading, captures the section up to
// the next blank line or title-cased heading, and independently searches it
// for a degree, an institution, and a graduation year.
func extractEducation(text string) []string {
	section := captureEducationSection(text)
	if section == "" {
		return []string{}
	}

	signals := []string{}
	if match := degreePattern.FindStringSubmatch(section); match != nil {
		signals = append(signals, "Degree: "+strings.TrimSpace(match[1]))
	}
	if match := universityPattern.FindStringSubmatch(section); match != nil {
		uni := match[1]
		if uni == "" {
			uni = match[2]
		}
		if uni = strings.TrimSpace(uni); uni != "" {
			signals = append(signals, "University: "+uni)
		}
	}
	if year := yearPattern.FindString(section); year != "" {
		signals = append(signals, "Year: "+year)
	}
	return signals
}

func captureEducationSection(text string) string {
	loc := educationHeadingPattern.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	rest := text[loc[1]:]
	lines := strings.Split(rest, "\n")
	var section []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if i > 0 && trimmed == "" {
			break
		}
		if i > 0 && headingLinePattern.MatchString(trimmed) && len(strings.Fields(trimmed)) <= 3 {
			break
		}
		section = append(section, line)
	}
	return strings.Join(section, "\n")
}
