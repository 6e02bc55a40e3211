package screenings

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestScreenBatchRanksCandidates(t *testing.T) {
	svc, repo, _ := newTestService()

	candidates, err := svc.ScreenBatch(context.Background(), testJD, []UploadedFile{
		textFile("alex.txt", weakResume),
		textFile("jane.txt", strongResume),
	})
	if err != nil {
		t.Fatalf("ScreenBatch: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	first, second := candidates[0], candidates[1]
	if first.Filename != "jane.txt" {
		t.Fatalf("expected jane.txt ranked first, got %q", first.Filename)
	}
	if first.Score <= second.Score {
		t.Fatalf("candidates not sorted by score: %v then %v", first.Score, second.Score)
	}

	if first.Name != "Jane Smith" {
		t.Fatalf("name = %q, want Jane Smith", first.Name)
	}
	if first.Score != 90 {
		t.Fatalf("strong candidate score = %v, want 90", first.Score)
	}
	if second.Score != 20 {
		t.Fatalf("weak candidate score = %v, want 20", second.Score)
	}

	wantSkills := map[string]bool{"python": true, "sql": true, "aws": true}
	if len(first.ExtractedSkills) != len(wantSkills) {
		t.Fatalf("extracted skills = %v", first.ExtractedSkills)
	}
	for _, skill := range first.ExtractedSkills {
		if !wantSkills[skill] {
			t.Fatalf("unexpected skill %q in %v", skill, first.ExtractedSkills)
		}
	}

	if !strings.Contains(first.Reasoning, "Matched 2/2 key skills (100%).") {
		t.Fatalf("unexpected reasoning: %q", first.Reasoning)
	}
	if !strings.Contains(first.Reasoning, "Meets/Exceeds 3 years experience (5 years found).") {
		t.Fatalf("unexpected reasoning: %q", first.Reasoning)
	}
	if !strings.Contains(second.Reasoning, "Has 0 years experience (requires 3).") {
		t.Fatalf("unexpected reasoning: %q", second.Reasoning)
	}

	// Each successfully screened resume is persisted.
	if first.ID == "" || second.ID == "" {
		t.Fatalf("expected persisted resume IDs, got %+v", candidates)
	}
	resume, err := repo.GetResume(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if resume.Email != "jane.smith@example.com" {
		t.Fatalf("persisted email = %q", resume.Email)
	}
	if resume.StorageKey == "" {
		t.Fatalf("expected storage key on persisted resume")
	}
}

func TestScreenBatchValidatesInput(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.ScreenBatch(context.Background(), "  ", []UploadedFile{textFile("a.txt", strongResume)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank JD, got %v", err)
	}
	if _, err := svc.ScreenBatch(context.Background(), testJD, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for no files, got %v", err)
	}
}

func TestScreenBatchIsolatesFileFailures(t *testing.T) {
	svc, _, _ := newTestService()

	candidates, err := svc.ScreenBatch(context.Background(), testJD, []UploadedFile{
		{Filename: "photo.png", MimeType: "image/png", Data: []byte{0x89, 0x50}},
		textFile("jane.txt", strongResume),
	})
	if err != nil {
		t.Fatalf("ScreenBatch: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	if candidates[0].Filename != "jane.txt" {
		t.Fatalf("expected the scored candidate first, got %q", candidates[0].Filename)
	}

	failed := candidates[1]
	if failed.Filename != "photo.png" {
		t.Fatalf("failed candidate = %+v", failed)
	}
	if failed.Score != 0 || failed.Name != "N/A" {
		t.Fatalf("failed candidate = %+v", failed)
	}
	if !strings.HasPrefix(failed.Reasoning, "File processing error:") {
		t.Fatalf("unexpected failure reasoning: %q", failed.Reasoning)
	}
}

func TestScreenBatchEmptyExtractedText(t *testing.T) {
	svc, _, _ := newTestService()

	candidates, err := svc.ScreenBatch(context.Background(), testJD, []UploadedFile{
		textFile("blank.txt", "   \n  "),
	})
	if err != nil {
		t.Fatalf("ScreenBatch: %v", err)
	}
	if candidates[0].Reasoning != "File processing error: could not extract text from resume." {
		t.Fatalf("unexpected reasoning: %q", candidates[0].Reasoning)
	}
}

func TestScreenBatchStoreFailure(t *testing.T) {
	svc, _, store := newTestService()
	store.saveErr = errors.New("disk full")

	candidates, err := svc.ScreenBatch(context.Background(), testJD, []UploadedFile{
		textFile("jane.txt", strongResume),
	})
	if err != nil {
		t.Fatalf("ScreenBatch: %v", err)
	}
	if !strings.HasPrefix(candidates[0].Reasoning, "File storage error:") {
		t.Fatalf("unexpected reasoning: %q", candidates[0].Reasoning)
	}
}

func TestScreenBatchEmbedderFailure(t *testing.T) {
	svc, _, _ := newTestService()
	svc.Embedder = &fakeEmbedder{err: errors.New("backend down")}

	candidates, err := svc.ScreenBatch(context.Background(), testJD, []UploadedFile{
		textFile("jane.txt", strongResume),
	})
	if err != nil {
		t.Fatalf("ScreenBatch: %v", err)
	}
	if !strings.HasPrefix(candidates[0].Reasoning, "Scoring error:") {
		t.Fatalf("unexpected reasoning: %q", candidates[0].Reasoning)
	}
}

func TestRecordFeedback(t *testing.T) {
	svc, repo, _ := newTestService()

	stored := Result{ID: "result-1", ResumeID: "resume-1", Score: 42}
	if err := repo.CreateResult(context.Background(), stored); err != nil {
		t.Fatalf("CreateResult: %v", err)
	}

	result, err := svc.RecordFeedback(context.Background(), "result-1", 75, "solid shortlist call")
	if err != nil {
		t.Fatalf("RecordFeedback: %v", err)
	}
	if result.HumanFeedbackScore == nil || *result.HumanFeedbackScore != 75 {
		t.Fatalf("feedback score not stored: %+v", result)
	}
	if result.HumanFeedbackComment != "solid shortlist call" {
		t.Fatalf("feedback comment not stored: %+v", result)
	}

	// The feedback survives a later read.
	reread, err := svc.GetResult(context.Background(), "result-1")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if reread.HumanFeedbackScore == nil || *reread.HumanFeedbackScore != 75 {
		t.Fatalf("feedback not persisted: %+v", reread)
	}
}

func TestRecordFeedbackValidatesInput(t *testing.T) {
	svc, repo, _ := newTestService()

	if _, err := svc.RecordFeedback(context.Background(), " ", 50, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
	if _, err := svc.RecordFeedback(context.Background(), "missing", 50, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	stored := Result{ID: "result-1", ResumeID: "resume-1", Score: 42}
	if err := repo.CreateResult(context.Background(), stored); err != nil {
		t.Fatalf("CreateResult: %v", err)
	}
	if _, err := svc.RecordFeedback(context.Background(), "result-1", -1, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative score, got %v", err)
	}
	if _, err := svc.RecordFeedback(context.Background(), "result-1", 101, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for score above 100, got %v", err)
	}
}

func TestGetResume(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.GetResume(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
	if _, err := svc.GetResume(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	candidates, err := svc.ScreenBatch(context.Background(), testJD, []UploadedFile{
		textFile("jane.txt", strongResume),
	})
	if err != nil {
		t.Fatalf("ScreenBatch: %v", err)
	}

	resume, err := svc.GetResume(context.Background(), candidates[0].ID)
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if resume.Name != "Jane Smith" {
		t.Fatalf("unexpected resume: %+v", resume)
	}
}

func TestGetResult(t *testing.T) {
	svc, repo, _ := newTestService()

	if _, err := svc.GetResult(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
	if _, err := svc.GetResult(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	stored := Result{ID: "result-1", ResumeID: "resume-1", Score: 42}
	if err := repo.CreateResult(context.Background(), stored); err != nil {
		t.Fatalf("CreateResult: %v", err)
	}
	result, err := svc.GetResult(context.Background(), "result-1")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if result.Score != 42 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
