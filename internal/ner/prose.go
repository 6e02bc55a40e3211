package ner

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer implements Recognizer using the prose NLP library. The
// underlying model is loaded per document; the type itself is stateless and
// safe for concurrent use.
type ProseRecognizer struct{}

// NewProseRecognizer constructs a ProseRecognizer.
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// People returns PERSON entities in document order.
func (r *ProseRecognizer) People(text string) ([]string, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("ner: %w", err)
	}

	var people []string
	for _, ent := range doc.Entities() {
		if ent.Label == "PERSON" {
			people = append(people, ent.Text)
		}
	}
	return people, nil
}
