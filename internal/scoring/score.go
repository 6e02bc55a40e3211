// Package scoring compares a structured candidate record against
// requirements mined from a job description and produces a weighted fitness
// score with a per-criterion rationale.
package scoring

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"resume-screener/internal/embedding"
	"resume-screener/internal/parser"
)

// Sub-score weights. They must total 1.00; WeightsTotal exists so tests can
// enforce the invariant.
const (
	weightSkills           = 0.40
	weightExperience       = 0.30
	weightResponsibilities = 0.20
	weightEducation        = 0.10
)

// skillMatchThreshold is the fixed cosine-similarity cutoff above which a
// required skill counts as matched by a candidate skill.
const skillMatchThreshold = 0.6

// WeightsTotal returns the sum of all sub-score weights.
func WeightsTotal() float64 {
	return weightSkills + weightExperience + weightResponsibilities + weightEducation
}

// ScoreResult holds the final 0-100 fitness score and the rationale, one
// sentence per criterion in the fixed order skills, experience,
// responsibilities, education.
type ScoreResult struct {
	FinalScore float64          `json:"finalScore"`
	Reasoning  string           `json:"reasoning"`
	Components []ScoreComponent `json:"components"`
}

// ScoreComponent is one weighted criterion of the final score.
type ScoreComponent struct {
	Key    string  `json:"key"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

var candidateYearsPattern = regexp.MustCompile(`(?i)(\d+)\s+years`)

// Score computes the weighted fitness of a candidate for a job. It is
// deterministic given deterministic embeddings. The final score is a standard
// IEEE-754 double sum rounded to two decimals, half away from zero.
//
// Absent requirement categories are trivially satisfied, never an error. The
// only failure mode is an unavailable embedding service.
func Score(ctx context.Context, candidate parser.CandidateRecord, jd JobRequirements, embedder embedding.Service) (ScoreResult, error) {
	if embedder == nil {
		return ScoreResult{}, fmt.Errorf("score: %w", embedding.ErrUnavailable)
	}

	var reasoning []string

	skillScore, sentence, err := scoreSkills(ctx, candidate.Skills, jd.Skills, embedder)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("score skills: %w", err)
	}
	reasoning = append(reasoning, sentence)

	expScore, sentence := scoreExperience(candidate.ExperienceSignals, jd.MinExperienceYears)
	reasoning = append(reasoning, sentence)

	respScore, sentence, err := scoreResponsibilities(ctx, candidate.RawText, jd.Responsibilities, embedder)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("score responsibilities: %w", err)
	}
	reasoning = append(reasoning, sentence)

	eduScore, sentence := scoreEducation(candidate.EducationSignals, jd.EducationTerms)
	reasoning = append(reasoning, sentence)

	total := skillScore*weightSkills +
		expScore*weightExperience +
		respScore*weightResponsibilities +
		eduScore*weightEducation

	return ScoreResult{
		FinalScore: math.Round(total*100) / 100,
		Reasoning:  strings.Join(reasoning, " "),
		Components: []ScoreComponent{
			{Key: "skills", Score: skillScore, Weight: weightSkills},
			{Key: "experience", Score: expScore, Weight: weightExperience},
			{Key: "responsibilities", Score: respScore, Weight: weightResponsibilities},
			{Key: "education", Score: eduScore, Weight: weightEducation},
		},
	}, nil
}

// ScoreText mines requirements from raw job-description text and scores the
// candidate against them.
func ScoreText(ctx context.Context, candidate parser.CandidateRecord, jdText string, embedder embedding.Service) (ScoreResult, error) {
	return Score(ctx, candidate, MineRequirements(jdText), embedder)
}

// scoreSkills counts required skills whose best cosine similarity against any
// candidate skill exceeds the match threshold. All texts are embedded in one
// batched call.
func scoreSkills(ctx context.Context, candidateSkills, requiredSkills []string, embedder embedding.Service) (float64, string, error) {
	if len(requiredSkills) == 0 {
		return 100, "No specific skills required in JD.", nil
	}
	if len(candidateSkills) == 0 {
		return 0, "No skills found in resume to match against JD skills.", nil
	}

	texts := make([]string, 0, len(requiredSkills)+len(candidateSkills))
	texts = append(texts, requiredSkills...)
	texts = append(texts, candidateSkills...)

	vectors, err := embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return 0, "", err
	}
	requiredVecs := vectors[:len(requiredSkills)]
	candidateVecs := vectors[len(requiredSkills):]

	matched := 0
	for _, reqVec := range requiredVecs {
		best := math.Inf(-1)
		for _, candVec := range candidateVecs {
			if sim := embedding.Cosine(reqVec, candVec); sim > best {
				best = sim
			}
		}
		if best > skillMatchThreshold {
			matched++
		}
	}

	score := 100 * float64(matched) / float64(len(requiredSkills))
	sentence := fmt.Sprintf("Matched %d/%d key skills (%d%%).", matched, len(requiredSkills), int(score))
	return score, sentence, nil
}

// scoreExperience re-parses candidate years out of the joined experience
// signals rather than reusing the extractor's parse; the two components stay
// decoupled.
func scoreExperience(experienceSignals []string, minYears int) (float64, string) {
	if minYears <= 0 {
		return 100, "No minimum experience required in JD."
	}

	candidateYears := 0
	if match := candidateYearsPattern.FindStringSubmatch(strings.Join(experienceSignals, " ")); match != nil {
		candidateYears, _ = strconv.Atoi(match[1])
	}

	if candidateYears >= minYears {
		return 100, fmt.Sprintf("Meets/Exceeds %d years experience (%d years found).", minYears, candidateYears)
	}
	score := 100 * float64(candidateYears) / float64(minYears)
	return score, fmt.Sprintf("Has %d years experience (requires %d).", candidateYears, minYears)
}

// scoreResponsibilities compares the joined responsibility fragments against
// the candidate's full raw text by embedding similarity. With nothing to
// compare it returns a neutral 50, neither penalty nor reward. A pathological
// negative similarity is passed through unclamped.
func scoreResponsibilities(ctx context.Context, rawText string, responsibilities []string, embedder embedding.Service) (float64, string, error) {
	if len(responsibilities) == 0 || rawText == "" {
		return 50, "Cannot assess responsibilities due to missing JD or resume content.", nil
	}

	vectors, err := embedder.EmbedStrings(ctx, []string{strings.Join(responsibilities, " "), rawText})
	if err != nil {
		return 0, "", err
	}

	score := embedding.Cosine(vectors[0], vectors[1]) * 100
	return score, fmt.Sprintf("Overall resume content aligns with responsibilities (%d%%).", int(score)), nil
}

// scoreEducation is binary: 100 if any required term appears as a
// case-insensitive substring of the joined education signals, else 0.
func scoreEducation(educationSignals, requiredTerms []string) (float64, string) {
	if len(requiredTerms) == 0 {
		return 100, "No specific education required in JD."
	}

	haystack := strings.ToLower(strings.Join(educationSignals, " "))
	for _, term := range requiredTerms {
		if strings.Contains(haystack, strings.ToLower(term)) {
			return 100, "Education matches JD requirements (100%)."
		}
	}
	return 0, "Education matches JD requirements (0%)."
}
