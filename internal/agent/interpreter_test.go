package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ai-book/backend/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestInterpret_ExtractsCriteria(t *testing.T) {
	llm := &fakeLLM{reply: `{"quality":"high","genre":"mystery"}`}
	in := NewInterpreter(llm)

	c := in.Interpret(context.Background(), "good mystery books")

	require.NotNil(t, c.Quality)
	assert.Equal(t, query.QualityHigh, *c.Quality)
	require.NotNil(t, c.Genre)
	assert.Equal(t, "mystery", *c.Genre)

	require.Len(t, llm.prompts, 1, "exactly one completion request")
	assert.Contains(t, llm.prompts[0], `Request: "good mystery books"`)
}

func TestInterpret_EscapesRequestText(t *testing.T) {
	llm := &fakeLLM{reply: `{}`}
	NewInterpreter(llm).Interpret(context.Background(), `books "about"` + "\nquotes")

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], `Request: "books \"about\" quotes"`)
}

func TestInterpret_NetworkErrorYieldsEmpty(t *testing.T) {
	llm := &fakeLLM{err: errors.New("dial tcp: connection refused")}

	c := NewInterpreter(llm).Interpret(context.Background(), "cheap books by Bernstein")

	assert.True(t, c.IsEmpty())
	assert.Len(t, llm.prompts, 1, "no retry")
}

func TestInterpret_RateLimitYieldsEmpty(t *testing.T) {
	llm := &fakeLLM{err: status.Error(codes.ResourceExhausted, "quota")}

	c := NewInterpreter(llm).Interpret(context.Background(), "anything")

	assert.True(t, c.IsEmpty())
}

func TestInterpret_MalformedReplyYieldsEmpty(t *testing.T) {
	for _, reply := range []string{"", "I cannot help with that", `{"genre": "sci`} {
		llm := &fakeLLM{reply: reply}
		c := NewInterpreter(llm).Interpret(context.Background(), "sci-fi")
		assert.True(t, c.IsEmpty(), reply)
	}
}

func TestInterpret_NoClient(t *testing.T) {
	in := NewInterpreter(nil)

	assert.False(t, in.Configured())
	assert.True(t, in.Interpret(context.Background(), "anything").IsEmpty())
}

func TestInterpret_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	llm := &fakeLLM{err: context.Canceled}

	assert.True(t, NewInterpreter(llm).Interpret(ctx, "anything").IsEmpty())
}

func TestIsRateLimitError(t *testing.T) {
	assert.True(t, isRateLimitError(status.Error(codes.ResourceExhausted, "slow down")))
	assert.True(t, isRateLimitError(errors.New("API returned unexpected status code: 429")))
	assert.True(t, isRateLimitError(errors.New("daily quota exceeded")))
	assert.False(t, isRateLimitError(errors.New("connection reset")))
	assert.False(t, isRateLimitError(context.DeadlineExceeded))
}
