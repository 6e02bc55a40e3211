package screenings

import "time"

// Resume is one parsed résumé persisted for a screening batch.
type Resume struct {
	ID                string
	Filename          string
	Name              string
	Email             string
	Phone             string
	Skills            []string
	ExperienceSignals []string
	EducationSignals  []string
	RawText           string
	StorageKey        string
	UploadedAt        time.Time
}

// Result is the outcome of scoring one résumé against a job description.
// Human feedback is recorded after the fact by a reviewer; a nil score means
// no feedback has been given yet.
type Result struct {
	ID                   string
	ResumeID             string
	JobDescription       string
	Score                float64
	Reasoning            string
	HumanFeedbackScore   *float64
	HumanFeedbackComment string
	ScreenedAt           time.Time
}
