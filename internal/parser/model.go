package parser

// CandidateRecord is the structured data extracted from one résumé. It is
// immutable after creation; absent fields are empty strings or empty slices.
type CandidateRecord struct {
	Name              string   `json:"name,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Skills            []string `json:"skills"`
	ExperienceSignals []string `json:"experienceSignals"`
	EducationSignals  []string `json:"educationSignals"`
	RawText           string   `json:"-"`
}
