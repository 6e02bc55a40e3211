package screenings

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"resume-screener/internal/parser"
	"resume-screener/internal/vocab"
)

// fakeStore is an in-memory object store for tests.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Save(_ context.Context, namespace, fileName string, r io.Reader) (string, int64, string, error) {
	if s.saveErr != nil {
		return "", 0, "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := namespace + "/" + fileName
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return key, int64(len(data)), "text/plain", nil
}

func (s *fakeStore) Open(_ context.Context, storageKey string) (io.ReadCloser, error) {
	s.mu.Lock()
	data, ok := s.objects[storageKey]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("object not found: %s", storageKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) SaveWithKey(_ context.Context, storageKey, _ string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.objects[storageKey] = data
	s.mu.Unlock()
	return int64(len(data)), nil
}

// fakeEmbedder maps known texts to fixed vectors; unknown texts share a
// default vector.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) EmbedStrings(_ context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		if vec, ok := f.vectors[strings.ToLower(t)]; ok {
			out[i] = vec
		} else {
			out[i] = []float64{1, 1, 1, 1}
		}
	}
	return out, nil
}

func newTestEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float64{
		"python": {1, 0, 0, 0},
		"sql":    {0, 1, 0, 0},
		"docker": {0, 0, 1, 0},
		"aws":    {0, 0, 0, 1},
	}}
}

func newTestService() (*Service, *MemoryRepo, *fakeStore) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	svc := &Service{
		Repo:      repo,
		Store:     store,
		Extractor: parser.New(vocab.FromPhrases([]string{"python", "sql", "aws", "docker"}), nil),
		Embedder:  newTestEmbedder(),
	}
	return svc, repo, store
}

const strongResume = `Jane Smith
jane.smith@example.com

Skills: Python, SQL, AWS

5 years of experience in backend development.
`

const weakResume = `Alex Brown
alex.brown@example.com

Skills: Docker
`

const testJD = `Skills: Python, SQL

Minimum 3+ years of experience required.`

func textFile(name, content string) UploadedFile {
	return UploadedFile{Filename: name, MimeType: "text/plain", Data: []byte(content)}
}
