package analyses

import (
	"context"
	"errors"
	"strings"

	"assigncheck-backend/internal/llm"
)

// Outcome is the tagged result of an analysis. A provider failure does not
// propagate as an error: it degrades into a human-readable message carried in
// Text, flagged by Degraded, so the client UI renders it like a real
// analysis. Reason keeps the underlying error for logging.
type Outcome struct {
	Text     string
	Degraded bool
	Reason   string
}

// Service runs assignment analyses against an injected model client.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// Analyze builds the rubric prompt for the given assignment text and relays
// the model's Markdown response. Empty text is the only hard error.
func (s *Service) Analyze(ctx context.Context, text string) (Outcome, error) {
	if s == nil || s.LLM == nil {
		return Outcome{}, errors.New("analysis service not configured")
	}
	if strings.TrimSpace(text) == "" {
		return Outcome{}, ErrEmptyText
	}

	result, err := s.LLM.Generate(ctx, BuildPrompt(text))
	if err != nil {
		return Outcome{
			Text:     degradeMessage(err),
			Degraded: true,
			Reason:   err.Error(),
		}, nil
	}
	return Outcome{Text: result}, nil
}

// degradeMessage converts a provider error into the explanatory string that
// takes the place of the analysis result.
func degradeMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "404"):
		return "AI analysis failed: model not found. Please check your API key and model name."
	case strings.Contains(msg, "429"):
		return "AI analysis failed: API quota exceeded. Please wait and try again."
	default:
		return "AI analysis failed: " + msg
	}
}
