package llm

// ContentType classifies the content carried by a stream chunk.
type ContentType string

const (
	ContentTypeThinking ContentType = "thinking" // ContentTypeThinking indicates reasoning content inside <thinking> tags.
	ContentTypeMessage  ContentType = "message"  // ContentTypeMessage indicates user-visible message content.
)

// StreamChunk is a single delta from a streaming LLM completion.
type StreamChunk struct {
	// Role is the author role, typically set on the first chunk of a stream.
	Role string

	// Content is the text delta for this chunk.
	Content string

	// Type classifies the content (thinking vs message). Providers emit
	// untyped content; the parser layer assigns types.
	Type ContentType

	// Finished is true on the terminal chunk of a successful stream.
	Finished bool

	// Error is set on chunks that report a stream-time failure.
	Error error

	// Usage carries token accounting, set on the terminal chunk when the
	// provider reports it.
	Usage *Usage
}

// Usage contains token usage reported by the provider for one completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// IsError returns true if the chunk reports a stream-time failure.
func (c *StreamChunk) IsError() bool {
	return c.Error != nil
}
