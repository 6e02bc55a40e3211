package screenings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateResume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	resume := Resume{
		ID:                "resume-1",
		Filename:          "jane.pdf",
		Name:              "Jane Smith",
		Email:             "jane@example.com",
		Skills:            []string{"python", "sql"},
		ExperienceSignals: []string{"5 years experience"},
		EducationSignals:  []string{"Degree: Bachelor of Science"},
		RawText:           "raw",
		StorageKey:        "batch-1/jane.pdf",
		UploadedAt:        time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID,
			resume.Filename,
			resume.Name,
			resume.Email,
			nil,              // phone
			sqlmock.AnyArg(), // skills
			sqlmock.AnyArg(), // experience_signals
			sqlmock.AnyArg(), // education_signals
			resume.RawText,
			resume.StorageKey,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateResume(context.Background(), resume); err != nil {
		t.Fatalf("CreateResume: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	result := Result{
		ID:             "result-1",
		ResumeID:       "resume-1",
		JobDescription: "jd",
		Score:          82.5,
		Reasoning:      "Matched 2/2 key skills (100%).",
		ScreenedAt:     time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO screening_results").
		WithArgs(
			result.ID,
			result.ResumeID,
			result.JobDescription,
			result.Score,
			result.Reasoning,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateResult(context.Background(), result); err != nil {
		t.Fatalf("CreateResult: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	screenedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "resume_id", "job_description_text", "score", "reasoning",
		"human_feedback_score", "human_feedback_comment", "screened_at",
	}).AddRow("result-1", "resume-1", "jd", 82.5, "reasoning", nil, nil, screenedAt)
	mock.ExpectQuery("SELECT id, resume_id, job_description_text").
		WithArgs("result-1").
		WillReturnRows(rows)

	result, err := repo.GetResult(context.Background(), "result-1")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if result.ID != "result-1" || result.ResumeID != "resume-1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Score != 82.5 || result.Reasoning != "reasoning" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.HumanFeedbackScore != nil || result.HumanFeedbackComment != "" {
		t.Fatalf("expected no feedback yet: %+v", result)
	}
	if !result.ScreenedAt.Equal(screenedAt) {
		t.Fatalf("screenedAt = %v, want %v", result.ScreenedAt, screenedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetResultNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, resume_id, job_description_text").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetResult(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateFeedback(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE screening_results").
		WithArgs("result-1", 75.0, "solid shortlist call").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateFeedback(context.Background(), "result-1", 75, "solid shortlist call"); err != nil {
		t.Fatalf("UpdateFeedback: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateFeedbackNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE screening_results").
		WithArgs("missing", 75.0, "comment").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateFeedback(context.Background(), "missing", 75, "comment"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetResume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	uploadedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "filename", "name", "email", "phone",
		"skills", "experience_signals", "education_signals",
		"raw_text", "storage_key", "uploaded_at",
	}).AddRow(
		"resume-1", "jane.pdf", "Jane Smith", nil, nil,
		[]byte(`["python","sql"]`), []byte(`[]`), nil,
		"raw", "batch-1/jane.pdf", uploadedAt,
	)
	mock.ExpectQuery("SELECT id, filename, name").
		WithArgs("resume-1").
		WillReturnRows(rows)

	resume, err := repo.GetResume(context.Background(), "resume-1")
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if resume.Name != "Jane Smith" || resume.Email != "" {
		t.Fatalf("unexpected resume: %+v", resume)
	}
	if len(resume.Skills) != 2 || resume.Skills[0] != "python" {
		t.Fatalf("unexpected skills: %v", resume.Skills)
	}
	if len(resume.ExperienceSignals) != 0 || len(resume.EducationSignals) != 0 {
		t.Fatalf("expected empty signal lists, got %+v", resume)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
