package services

import (
	"context"
	"log"
	"strings"

	"github.com/fractionalquest/repo-agent/internal/aistream"
	"github.com/fractionalquest/repo-agent/internal/dtos"
	"github.com/fractionalquest/repo-agent/internal/preference"
)

// PreferenceExtractor is the external extraction capability: map free text to
// typed preferences or fail. The orchestrator treats every failure the same
// way, regardless of cause.
type PreferenceExtractor interface {
	ExtractPreferences(ctx context.Context, transcript string, priorContext []string) ([]preference.Extracted, error)
}

// ExtractionService orchestrates one extraction call: guard, extract,
// classify, aggregate. A broken extraction degrades to "nothing detected" -
// the conversational UI must never see a raw error.
type ExtractionService struct {
	Extractor PreferenceExtractor
	Contexts  *ContextService
}

// NewExtractionService creates the orchestrator. contexts may be nil.
func NewExtractionService(extractor PreferenceExtractor, contexts *ContextService) *ExtractionService {
	return &ExtractionService{Extractor: extractor, Contexts: contexts}
}

// Extract runs the full pipeline for one request. An empty or whitespace-only
// transcript returns the empty response without invoking the extractor.
func (s *ExtractionService) Extract(ctx context.Context, req dtos.ExtractionRequest) dtos.ExtractionResponse {
	if strings.TrimSpace(req.Transcript) == "" {
		return dtos.EmptyExtractionResponse()
	}

	priorContext := req.Context
	if len(priorContext) == 0 {
		priorContext = s.Contexts.Recent(ctx, req.UserID)
	}

	prefs, err := s.Extractor.ExtractPreferences(ctx, req.Transcript, priorContext)
	if err != nil {
		log.Printf("[extract] Extraction error for user %s: %v", req.UserID, err)
		return dtos.EmptyExtractionResponse()
	}

	requests := make([]preference.ValidationRequest, 0, len(prefs))
	for _, p := range prefs {
		requests = append(requests, preference.Classify(p))
	}

	s.Contexts.Remember(ctx, req.UserID, req.Transcript)

	return dtos.ExtractionResponse{
		Preferences:        prefs,
		ValidationRequests: requests,
		ShouldConfirm:      preference.ShouldConfirm(requests),
	}
}

// ExtractStream runs the same pipeline but emits incremental frames: a
// processing notice, one data frame per validation request (HARD prompts also
// echoed as text), a terminal summary, then exactly one finish frame.
func (s *ExtractionService) ExtractStream(ctx context.Context, req dtos.ExtractionRequest, w *aistream.Writer) {
	if strings.TrimSpace(req.Transcript) == "" {
		w.Data(map[string]any{"preferences": []preference.Extracted{}, "should_confirm": false})
		w.Finish(aistream.FinishStop)
		return
	}

	priorContext := req.Context
	if len(priorContext) == 0 {
		priorContext = s.Contexts.Recent(ctx, req.UserID)
	}

	w.Text("Analyzing your preferences...")

	prefs, err := s.Extractor.ExtractPreferences(ctx, req.Transcript, priorContext)
	if err != nil {
		log.Printf("[extract] Stream extraction error for user %s: %v", req.UserID, err)
		w.Text("Error processing preferences")
		w.Finish(aistream.FinishError)
		return
	}

	requests := make([]preference.ValidationRequest, 0, len(prefs))
	for _, p := range prefs {
		requests = append(requests, preference.Classify(p))
	}

	for _, vr := range requests {
		w.Data(map[string]any{"validation_request": vr})
		if vr.ValidationType == preference.ValidationHard {
			w.Text(vr.Prompt)
		}
	}

	s.Contexts.Remember(ctx, req.UserID, req.Transcript)

	w.Data(map[string]any{
		"extraction_complete": true,
		"should_confirm":      preference.ShouldConfirm(requests),
		"count":               len(prefs),
	})
	w.Finish(aistream.FinishStop)
}
