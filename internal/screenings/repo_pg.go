package screenings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Skill and signal lists are stored as
// JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

// CreateResume inserts a résumé record.
func (r *PGRepo) CreateResume(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    filename,
    name,
    email,
    phone,
    skills,
    experience_signals,
    education_signals,
    raw_text,
    storage_key,
    uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	skills, err := marshalList(resume.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	experience, err := marshalList(resume.ExperienceSignals)
	if err != nil {
		return fmt.Errorf("marshal experience signals: %w", err)
	}
	education, err := marshalList(resume.EducationSignals)
	if err != nil {
		return fmt.Errorf("marshal education signals: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.Filename,
		nullString(resume.Name),
		nullString(resume.Email),
		nullString(resume.Phone),
		skills,
		experience,
		education,
		nullString(resume.RawText),
		nullString(resume.StorageKey),
		resume.UploadedAt,
	)
	return err
}

// CreateResult inserts a screening result.
func (r *PGRepo) CreateResult(ctx context.Context, result Result) error {
	const query = `
INSERT INTO screening_results (
    id,
    resume_id,
    job_description_text,
    score,
    reasoning,
    screened_at
) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		result.ID,
		result.ResumeID,
		result.JobDescription,
		result.Score,
		nullString(result.Reasoning),
		result.ScreenedAt,
	)
	return err
}

// GetResult returns a screening result by ID.
func (r *PGRepo) GetResult(ctx context.Context, id string) (Result, error) {
	const query = `
SELECT id, resume_id, job_description_text, score, reasoning, human_feedback_score, human_feedback_comment, screened_at
FROM screening_results
WHERE id = $1`

	var result Result
	var reasoning, feedbackComment sql.NullString
	var feedbackScore sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&result.ID,
		&result.ResumeID,
		&result.JobDescription,
		&result.Score,
		&reasoning,
		&feedbackScore,
		&feedbackComment,
		&result.ScreenedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}
	if reasoning.Valid {
		result.Reasoning = reasoning.String
	}
	if feedbackScore.Valid {
		result.HumanFeedbackScore = &feedbackScore.Float64
	}
	if feedbackComment.Valid {
		result.HumanFeedbackComment = feedbackComment.String
	}
	return result, nil
}

// UpdateFeedback records human feedback on a stored screening result.
func (r *PGRepo) UpdateFeedback(ctx context.Context, id string, score float64, comment string) error {
	const query = `
UPDATE screening_results
SET human_feedback_score = $2, human_feedback_comment = $3
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, id, score, nullString(comment))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetResume returns a résumé by ID.
func (r *PGRepo) GetResume(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT id, filename, name, email, phone, skills, experience_signals, education_signals, raw_text, storage_key, uploaded_at
FROM resumes
WHERE id = $1`

	var resume Resume
	var name, email, phone, rawText, storageKey sql.NullString
	var skills, experience, education []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&resume.ID,
		&resume.Filename,
		&name,
		&email,
		&phone,
		&skills,
		&experience,
		&education,
		&rawText,
		&storageKey,
		&resume.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}

	if name.Valid {
		resume.Name = name.String
	}
	if email.Valid {
		resume.Email = email.String
	}
	if phone.Valid {
		resume.Phone = phone.String
	}
	if rawText.Valid {
		resume.RawText = rawText.String
	}
	if storageKey.Valid {
		resume.StorageKey = storageKey.String
	}

	if resume.Skills, err = unmarshalList(skills); err != nil {
		return Resume{}, fmt.Errorf("unmarshal skills: %w", err)
	}
	if resume.ExperienceSignals, err = unmarshalList(experience); err != nil {
		return Resume{}, fmt.Errorf("unmarshal experience signals: %w", err)
	}
	if resume.EducationSignals, err = unmarshalList(education); err != nil {
		return Resume{}, fmt.Errorf("unmarshal education signals: %w", err)
	}
	return resume, nil
}

func marshalList(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func unmarshalList(data []byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
