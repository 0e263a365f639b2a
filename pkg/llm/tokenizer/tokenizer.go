// Package tokenizer provides token counting for conversation budgeting.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/loomhq/loom/pkg/types"
)

// defaultEncoding is used for all supported chat models.
const defaultEncoding = "cl100k_base"

// messageOverheadTokens approximates the per-message framing cost of the
// chat completion format (role markers and separators).
const messageOverheadTokens = 4

// Tokenizer counts tokens using the tiktoken BPE vocabulary.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer backed by the cl100k_base encoding.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", defaultEncoding, err)
	}
	return &Tokenizer{encoding: enc}, nil
}

// CountTokens returns the token count of a single text.
func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// CountMessagesTokens returns the approximate token count of a full
// conversation, including per-message framing overhead.
func (t *Tokenizer) CountMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		total += t.CountTokens(msg.Content) + messageOverheadTokens
	}
	return total
}
