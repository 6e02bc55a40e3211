package screenings

import "context"

// Repo defines persistence operations for résumés and screening results.
type Repo interface {
	CreateResume(ctx context.Context, resume Resume) error
	CreateResult(ctx context.Context, result Result) error
	GetResult(ctx context.Context, id string) (Result, error)
	GetResume(ctx context.Context, id string) (Resume, error)
	UpdateFeedback(ctx context.Context, id string, score float64, comment string) error
}
