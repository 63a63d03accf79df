package selector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
)

// Candidate is one ranked record offered to the selector: just enough context
// to reason about relevance, not the full catalog entry.
type Candidate struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Tags       map[string]string `json:"tags"`
	DistanceKm float64           `json:"distance_km"`
	MatchCount int               `json:"match_count"`
}

// Selection is the selector's verdict on one candidate id.
type Selection struct {
	ID         int64  `json:"id"`
	MatchScore int    `json:"match_score"`
	Reason     string `json:"reason"`
}

// Ensure implementation satisfies the interface
var _ CandidateSelector = (*GeminiSelector)(nil)

// CandidateSelector maps free-text intent plus a ranked candidate list onto a
// chosen subset with per-item relevance scores and justifications. Any
// deterministic or LLM-backed strategy satisfying this contract is
// substitutable; tests use a scripted stub.
type CandidateSelector interface {
	SelectCandidates(ctx context.Context, intent, locationLabel string, candidates []Candidate) ([]Selection, error)
}

// ContentGenerator is the slice of the AI client the selector needs.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// GeminiSelector asks Gemini to pick the best candidates for the user's
// intent. Responses are cached per intent and candidate set.
type GeminiSelector struct {
	aiClient    ContentGenerator
	logger      *slog.Logger
	cache       *cache.Cache
	temperature float32
	timeout     time.Duration
}

func NewGeminiSelector(aiClient ContentGenerator, logger *slog.Logger, temperature float32, timeout, cacheTTL time.Duration) *GeminiSelector {
	return &GeminiSelector{
		aiClient:    aiClient,
		logger:      logger,
		cache:       cache.New(cacheTTL, 1*time.Hour),
		temperature: temperature,
		timeout:     timeout,
	}
}

func (s *GeminiSelector) SelectCandidates(ctx context.Context, intent, locationLabel string, candidates []Candidate) ([]Selection, error) {
	ctx, span := otel.Tracer("CandidateSelector").Start(ctx, "SelectCandidates")
	defer span.End()
	span.SetAttributes(attribute.Int("candidates.count", len(candidates)))

	if len(candidates) == 0 {
		return nil, nil
	}

	cacheKey := selectionCacheKey(intent, locationLabel, candidates)
	if cached, found := s.cache.Get(cacheKey); found {
		if selections, ok := cached.([]Selection); ok {
			s.logger.InfoContext(ctx, "Cache hit for candidate selection", slog.String("cache_key", cacheKey))
			span.AddEvent("Cache hit")
			return selections, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildSelectionPrompt(intent, locationLabel, candidates)
	response, err := s.aiClient.GenerateContent(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](s.temperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gemini call failed")
		return nil, fmt.Errorf("candidate selection failed: %w", err)
	}

	selections, err := parseSelections(response)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unparsable selector response")
		return nil, fmt.Errorf("failed to parse candidate selection: %w", err)
	}

	s.cache.Set(cacheKey, selections, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "Candidates selected")
	return selections, nil
}

func selectionCacheKey(intent, locationLabel string, candidates []Candidate) string {
	var b strings.Builder
	b.WriteString(intent)
	b.WriteByte('|')
	b.WriteString(locationLabel)
	for _, c := range candidates {
		fmt.Fprintf(&b, "|%d", c.ID)
	}
	return b.String()
}
