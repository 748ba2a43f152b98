package prompt

import (
	"fmt"
)

// Builder constructs prompts for the query interpreter
type Builder struct{}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildInterpretPrompt embeds the already sanitised request text
func (b *Builder) BuildInterpretPrompt(request string) string {
	return fmt.Sprintf(InterpretPrompt, request)
}
