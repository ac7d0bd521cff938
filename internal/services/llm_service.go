package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/fractionalquest/repo-agent/internal/config"
	"github.com/fractionalquest/repo-agent/internal/dtos"
	"github.com/fractionalquest/repo-agent/internal/preference"
)

// ErrNoProvider means no LLM API key was configured.
var ErrNoProvider = errors.New("no LLM provider configured: set GOOGLE_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY")

// LLMService holds the model client so it isn't recreated per request. The
// provider is resolved once at startup; nothing downstream branches on which
// one was picked.
type LLMService struct {
	Client   llms.Model
	Provider string
}

// NewLLMService picks the first configured provider, in priority order
// google > anthropic > openai, and initializes its client.
func NewLLMService(ctx context.Context, cfg *config.Config) (*LLMService, error) {
	switch {
	case cfg.GoogleAPIKey != "":
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.GoogleAPIKey),
			googleai.WithDefaultModel("gemini-2.0-flash"),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai client: %w", err)
		}
		return &LLMService{Client: llm, Provider: "google"}, nil

	case cfg.AnthropicAPIKey != "":
		llm, err := anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel("claude-3-haiku-20240307"),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic client: %w", err)
		}
		return &LLMService{Client: llm, Provider: "anthropic"}, nil

	case cfg.OpenAIAPIKey != "":
		llm, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel("gpt-4o-mini"),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		return &LLMService{Client: llm, Provider: "openai"}, nil
	}

	return nil, ErrNoProvider
}

const preferenceExtractionPrompt = `You are a career preference extraction agent for Fractional.Quest, a platform for fractional executive roles.

Analyze the conversation transcript and extract structured career preferences.

For each preference found:
1. Identify the type: role, industry, location, availability, day_rate, or skill
2. Extract the specific values mentioned
3. Assess confidence (0.0-1.0) based on how clearly it was stated
4. Determine if HARD validation is needed (requires explicit user confirmation)

HARD validation triggers (set requires_hard_validation=true):
- Specific constraints: "I only want...", "Must be...", "Nothing below..."
- Deal-breakers: "I won't consider...", "Definitely not..."
- Salary/rate minimums: "At least X", "Minimum of..."
- Location exclusivity: "Only London", "Has to be remote"

SOFT validation (requires_hard_validation=false):
- General interests: "I like tech companies"
- Flexible preferences: "Maybe 2-3 days"
- Nice-to-haves: "Would be good if..."

Only extract preferences EXPLICITLY stated by the user, not inferred.
Return an empty array if nothing clear was stated.

Respond with a JSON array only. Do not wrap the output in markdown code blocks.
Each element:
{
  "type": "role|industry|location|availability|day_rate|skill",
  "values": ["..."],
  "confidence": 0.0,
  "raw_text": "the original text that triggered extraction",
  "requires_hard_validation": false,
  "reason": "why hard validation is needed, or omit"
}

Examples:
- "I'm interested in tech" -> industry: ["Technology"], confidence: 0.8, hard: false
- "I only want CMO roles" -> role: ["CMO"], confidence: 0.95, hard: true, reason: "Explicit constraint"
- "Maybe 2-3 days a week" -> availability: ["2-3 days/week"], confidence: 0.7, hard: false
- "I need at least £1200/day" -> day_rate: ["£1200+/day"], confidence: 0.95, hard: true, reason: "Minimum requirement"

Extract career preferences from this transcript:

%s`

// ExtractPreferences runs the preference extraction call. Preferences failing
// structural validation (bad confidence, empty values) are dropped
// individually rather than failing the call.
func (s *LLMService) ExtractPreferences(ctx context.Context, transcript string, priorContext []string) ([]preference.Extracted, error) {
	input := transcript
	if len(priorContext) > 0 {
		recent := priorContext
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		input += "\n\nPrevious context:\n" + strings.Join(recent, "\n")
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(preferenceExtractionPrompt, input))
	if err != nil {
		return nil, fmt.Errorf("preference extraction call: %w", err)
	}

	var raw []struct {
		Type                   string   `json:"type"`
		Values                 []string `json:"values"`
		Confidence             float64  `json:"confidence"`
		RawText                string   `json:"raw_text"`
		RequiresHardValidation bool     `json:"requires_hard_validation"`
		Reason                 string   `json:"reason"`
	}
	if err := json.Unmarshal([]byte(stripFences(resp)), &raw); err != nil {
		return nil, fmt.Errorf("malformed extraction output: %w", err)
	}

	prefs := make([]preference.Extracted, 0, len(raw))
	for _, r := range raw {
		p, err := preference.NewExtracted(r.Type, r.Values, r.Confidence, r.RawText, r.RequiresHardValidation, r.Reason)
		if err != nil {
			log.Printf("[llm] Dropping invalid preference: %v", err)
			continue
		}
		prefs = append(prefs, p)
	}
	return prefs, nil
}

const jobClassificationPrompt = `You are the senior content editor for Fractional.Quest, the UK's premier platform for fractional executive opportunities. Transform this raw job posting into a structured, editorially polished listing.

Voice: sophisticated, confident, professional. British English. Frame the role as an opportunity; for fractional roles, present flexibility as a feature.

The opportunity_description must be 2-4 flowing paragraphs (no bullet points) and must weave in 2-4 internal SEO links in markdown format.

Available dedicated pages (each is a truly different page - use each ONLY ONCE):
- /fractional-cfo-jobs-uk (CFO, finance director, finance leadership)
- /fractional-cmo-jobs-uk (CMO, marketing director, marketing leadership)
- /fractional-cto-jobs-uk (CTO, tech director, technology leadership)
- /fractional-coo-jobs-uk (COO, operations director, operations leadership)
- /fractional-jobs (generic: fractional jobs, portfolio career, fractional executive)

CRITICAL RULES:
1. NEVER link to the same URL twice
2. Use dedicated pages, not query parameters (/fractional-cfo-jobs-uk, NOT /fractional-jobs?role=CFO)
3. Prioritize the page matching the job's role category
4. Links must read smoothly - don't force them

Respond with a single JSON object only. Do not wrap the output in markdown code blocks.
{
  "employment_type": "full-time|part-time|fractional|contract|interim",
  "is_fractional": false,
  "days_per_week": "e.g. 2-3 days, or null",
  "country": "normalized country name",
  "city": "primary city or null",
  "is_remote": false,
  "vertical": "industry vertical",
  "seniority_level": "Executive|Senior|Mid-Senior|Associate|Entry",
  "role_category": "CFO, CMO, CTO, COO, CEO, HR Director, etc.",
  "salary_min": null,
  "salary_max": null,
  "salary_currency": "GBP",
  "salary_type": "daily|annual|hourly",
  "summary": "2-3 sentence hook, ~50-80 words",
  "opportunity_description": "editorial rewrite with internal links, ~200-400 words",
  "responsibilities": ["5-8 action-oriented bullet points"],
  "requirements": ["5-8 specific bullet points"],
  "benefits": ["benefits if mentioned, else empty"],
  "skills_required": ["10-15 short skill phrases"],
  "about_company": "2-3 sentences about the company, or null"
}

If a piece of information is missing, set the value to null. Do not hallucinate.

Analyze and structure this job posting:

%s`

// ClassifyJob runs the editorial classification call for one raw posting.
func (s *LLMService) ClassifyJob(ctx context.Context, jobContext string) (*dtos.StructuredJob, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobClassificationPrompt, jobContext))
	if err != nil {
		return nil, fmt.Errorf("job classification call: %w", err)
	}

	var job dtos.StructuredJob
	if err := json.Unmarshal([]byte(stripFences(resp)), &job); err != nil {
		return nil, fmt.Errorf("malformed classification output: %w", err)
	}
	if job.EmploymentType == "" {
		return nil, fmt.Errorf("classification output missing employment_type")
	}
	return &job, nil
}

// stripFences removes a surrounding markdown code fence if the model added one
// despite the prompt asking it not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
