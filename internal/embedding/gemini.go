package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-embedding-001"

// GeminiService implements Service using Google Gemini embeddings.
type GeminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService creates a Service backed by the Gemini API.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", ErrUnavailable)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create genai client: %v", ErrUnavailable, err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &GeminiService{client: client, modelName: model}, nil
}

// EmbedStrings encodes all texts in one batched EmbedContent call.
func (s *GeminiService) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	if s == nil || s.client == nil {
		return nil, ErrUnavailable
	}
	if len(texts) == 0 {
		return nil, errors.New("no texts to embed")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	resp, err := s.client.Models.EmbedContent(ctx, s.modelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: embed content: %v", ErrUnavailable, err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float64, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vec := make([]float64, len(emb.Values))
		for j, v := range emb.Values {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// ModelName returns the embedding model identifier for logging.
func (s *GeminiService) ModelName() string {
	return s.modelName
}
