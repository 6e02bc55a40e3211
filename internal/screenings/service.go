package screenings

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/embedding"
	"resume-screener/internal/extract"
	"resume-screener/internal/parser"
	"resume-screener/internal/scoring"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
)

// Service contains business logic for screening batches of résumés against a
// job description.
type Service struct {
	Repo      Repo
	Store     object.ObjectStore
	Extractor *parser.Extractor
	Embedder  embedding.Service
}

// UploadedFile is one résumé file received from the caller.
type UploadedFile struct {
	Filename string
	MimeType string
	Data     []byte
}

// Candidate is the screening outcome for one résumé.
type Candidate struct {
	ID              string                   `json:"id,omitempty"`
	Filename        string                   `json:"filename"`
	Name            string                   `json:"name"`
	Score           float64                  `json:"score"`
	Reasoning       string                   `json:"reasoning"`
	ExtractedSkills []string                 `json:"extractedSkills"`
	Components      []scoring.ScoreComponent `json:"components,omitempty"`
}

// ScreenBatch processes every uploaded résumé against the job description and
// returns candidates sorted by score, highest first. Requirements are mined
// from the job description once per batch. A failure on one file is recorded
// in that candidate's reasoning and never aborts the rest of the batch.
func (s *Service) ScreenBatch(ctx context.Context, jobDescription string, files []UploadedFile) ([]Candidate, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one resume file is required", ErrInvalidInput)
	}

	batchID := uuid.NewString()
	jd := scoring.MineRequirements(jobDescription)

	candidates := make([]Candidate, 0, len(files))
	for _, file := range files {
		candidate := s.screenOne(ctx, batchID, jobDescription, jd, file)
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	telemetry.Info("screening.batch_complete", map[string]any{
		"batch_id":        batchID,
		"candidate_count": len(candidates),
	})
	return candidates, nil
}

func (s *Service) screenOne(ctx context.Context, batchID, jobDescription string, jd scoring.JobRequirements, file UploadedFile) Candidate {
	candidate := Candidate{
		Filename:        file.Filename,
		Name:            "N/A",
		Reasoning:       "Processing failed.",
		ExtractedSkills: []string{},
	}

	storageKey, _, detectedMime, err := s.Store.Save(ctx, batchID, file.Filename, bytes.NewReader(file.Data))
	if err != nil {
		candidate.Reasoning = fmt.Sprintf("File storage error: %v", err)
		s.logFileError(batchID, file.Filename, "store", err)
		return candidate
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = detectedMime
	}

	rawText, err := extract.FromStored(ctx, s.Store, storageKey, mimeType, file.Filename)
	if err != nil {
		candidate.Reasoning = fmt.Sprintf("File processing error: %v", err)
		s.logFileError(batchID, file.Filename, "extract", err)
		return candidate
	}
	if strings.TrimSpace(rawText) == "" {
		candidate.Reasoning = "File processing error: could not extract text from resume."
		s.logFileError(batchID, file.Filename, "extract", fmt.Errorf("empty text"))
		return candidate
	}

	record, err := s.Extractor.Extract(rawText)
	if err != nil {
		candidate.Reasoning = fmt.Sprintf("Parsing error: %v", err)
		s.logFileError(batchID, file.Filename, "parse", err)
		return candidate
	}

	resume := Resume{
		ID:                uuid.NewString(),
		Filename:          file.Filename,
		Name:              record.Name,
		Email:             record.Email,
		Phone:             record.Phone,
		Skills:            record.Skills,
		ExperienceSignals: record.ExperienceSignals,
		EducationSignals:  record.EducationSignals,
		RawText:           record.RawText,
		StorageKey:        storageKey,
		UploadedAt:        time.Now().UTC(),
	}
	if err := s.Repo.CreateResume(ctx, resume); err != nil {
		candidate.Reasoning = fmt.Sprintf("Storage error: %v", err)
		s.logFileError(batchID, file.Filename, "persist_resume", err)
		return candidate
	}

	candidate.ID = resume.ID
	if record.Name != "" {
		candidate.Name = record.Name
	}
	candidate.ExtractedSkills = record.Skills

	result, err := scoring.Score(ctx, record, jd, s.Embedder)
	if err != nil {
		candidate.Reasoning = fmt.Sprintf("Scoring error: %v", err)
		s.logFileError(batchID, file.Filename, "score", err)
		return candidate
	}

	candidate.Score = result.FinalScore
	candidate.Reasoning = result.Reasoning
	candidate.Components = result.Components

	stored := Result{
		ID:             uuid.NewString(),
		ResumeID:       resume.ID,
		JobDescription: jobDescription,
		Score:          result.FinalScore,
		Reasoning:      result.Reasoning,
		ScreenedAt:     time.Now().UTC(),
	}
	if err := s.Repo.CreateResult(ctx, stored); err != nil {
		// The caller still gets the score; only persistence failed.
		s.logFileError(batchID, file.Filename, "persist_result", err)
	}

	return candidate
}

// GetResult fetches a stored screening result by ID.
func (s *Service) GetResult(ctx context.Context, id string) (Result, error) {
	if strings.TrimSpace(id) == "" {
		return Result{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetResult(ctx, id)
}

// GetResume fetches a stored résumé record by ID.
func (s *Service) GetResume(ctx context.Context, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetResume(ctx, id)
}

// RecordFeedback stores a reviewer's score and comment on a screening result
// and returns the updated result.
func (s *Service) RecordFeedback(ctx context.Context, id string, score float64, comment string) (Result, error) {
	if strings.TrimSpace(id) == "" {
		return Result{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if score < 0 || score > 100 {
		return Result{}, fmt.Errorf("%w: feedback score must be between 0 and 100", ErrInvalidInput)
	}
	if err := s.Repo.UpdateFeedback(ctx, id, score, comment); err != nil {
		return Result{}, err
	}

	telemetry.Info("screening.feedback_recorded", map[string]any{
		"result_id": id,
		"score":     score,
	})
	return s.Repo.GetResult(ctx, id)
}

func (s *Service) logFileError(batchID, filename, stage string, err error) {
	telemetry.Error("screening.file_failed", map[string]any{
		"batch_id": batchID,
		"filename": filename,
		"stage":    stage,
		"error":    err.Error(),
	})
}
