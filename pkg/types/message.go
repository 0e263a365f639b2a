package types

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // RoleSystem indicates instructions from the application.
	RoleUser      MessageRole = "user"      // RoleUser indicates input from the user.
	RoleAssistant MessageRole = "assistant" // RoleAssistant indicates a model response.
)

// Message is a single turn in an LLM conversation.
type Message struct {
	// Role identifies who authored the message.
	Role MessageRole

	// Content is the message text.
	Content string
}

// NewSystemMessage creates a system-role message.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user-role message.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant-role message.
func NewAssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}

// ModelInfo describes the model a provider is configured to use.
type ModelInfo struct {
	// Metadata holds optional provider-specific details.
	Metadata map[string]interface{}

	// Provider is the provider name (e.g. "openai").
	Provider string

	// Name is the provider-side model identifier.
	Name string

	// MaxTokens is the model's context window size in tokens.
	MaxTokens int

	// SupportsStreaming indicates whether the provider streams completions.
	SupportsStreaming bool
}
