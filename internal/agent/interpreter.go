package agent

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"ai-book/backend/internal/agent/deps"
	"ai-book/backend/internal/agent/prompt"
	"ai-book/backend/internal/agent/response"
	"ai-book/backend/internal/agent/sanitize"
	"ai-book/backend/internal/metrics"
	"ai-book/backend/internal/query"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultGroqModel is the Groq model used for interpretation
	DefaultGroqModel = "llama-3.3-70b-versatile"
	// DefaultGeminiModel is the Gemini model used for interpretation (fast, cheap)
	DefaultGeminiModel = "gemini-2.5-flash-lite"
	// InterpretTemperature keeps extraction as deterministic as the provider allows
	InterpretTemperature = 0.0
	// InterpretMaxOutputTokens bounds the criteria object
	InterpretMaxOutputTokens = 512
)

// Interpreter turns free-text search input into query criteria by asking an
// LLM. It keeps no state between calls and is safe for concurrent use.
type Interpreter struct {
	client        deps.LLMClient
	promptBuilder *prompt.Builder
}

// NewInterpreter creates an Interpreter. A nil client is allowed and makes
// every call return empty criteria, which callers treat as "full-text only".
func NewInterpreter(client deps.LLMClient) *Interpreter {
	return &Interpreter{
		client:        client,
		promptBuilder: prompt.NewBuilder(),
	}
}

// Configured reports whether an LLM client (and so a credential) is available
func (i *Interpreter) Configured() bool {
	return i.client != nil
}

// Interpret sends exactly one completion request and never fails: any error
// along the way yields empty criteria. The caller owns the timeout.
func (i *Interpreter) Interpret(ctx context.Context, text string) query.Criteria {
	if i.client == nil {
		log.Printf("[INTERPRET] No LLM credential configured, falling back to full-text search")
		metrics.InterpretationsTotal.WithLabelValues("no_credential").Inc()
		return query.Criteria{}
	}

	p := i.promptBuilder.BuildInterpretPrompt(sanitize.Query(text))

	start := time.Now()
	raw, err := i.client.GenerateJSON(ctx, p, InterpretTemperature, InterpretMaxOutputTokens)
	metrics.InterpretDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if isRateLimitError(err) {
			log.Printf("[QUOTA] LLM rate limit exceeded: %v", err)
			metrics.InterpretationsTotal.WithLabelValues("rate_limited").Inc()
		} else {
			log.Printf("[INTERPRET] LLM call failed after %v: %v", time.Since(start), err)
			metrics.InterpretationsTotal.WithLabelValues("llm_error").Inc()
		}
		return query.Criteria{}
	}

	criteria, err := response.ParseCriteria(raw)
	if err != nil {
		log.Printf("[INTERPRET] Could not parse model reply: %v (reply: %s)", err, truncateForLog(raw, 200))
		metrics.InterpretationsTotal.WithLabelValues("parse_error").Inc()
		return query.Criteria{}
	}

	if criteria.IsEmpty() {
		metrics.InterpretationsTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.InterpretationsTotal.WithLabelValues("ok").Inc()
	}
	return criteria
}

// isRateLimitError checks if the error is a provider quota or rate limit error
func isRateLimitError(err error) bool {
	// Check for gRPC ResourceExhausted status
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	// Also check for wrapped errors and string matching as fallback
	errStr := err.Error()
	return strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}

// truncateForLog truncates a string for logging purposes
func truncateForLog(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
