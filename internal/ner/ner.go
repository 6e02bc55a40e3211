// Package ner exposes the entity-recognition capability used by the résumé
// parser. Only person entities are needed for the name heuristic.
package ner

// Recognizer identifies named entities in unstructured text.
type Recognizer interface {
	// People returns person-entity strings in document order.
	People(text string) ([]string, error)
}
