// Package parser provides utilities for parsing structured content from LLM streams.
package parser

import (
	"strings"

	"github.com/loomhq/loom/pkg/llm"
)

const (
	openTag  = "<thinking>"
	closeTag = "</thinking>"
)

// ThinkingParser splits streaming content into thinking and message chunks by
// tracking <thinking> tags across chunk boundaries. A '<' starts tag
// buffering; the buffer is resolved when the matching '>' arrives, which may
// be in a later chunk.
type ThinkingParser struct {
	text       strings.Builder
	tag        strings.Builder
	inThinking bool
	inTag      bool
}

// NewThinkingParser creates a new thinking parser.
func NewThinkingParser() *ThinkingParser {
	return &ThinkingParser{}
}

// Parse consumes a content delta and returns the thinking and message content
// it completes. Either return value may be nil when the delta contributes
// nothing to that stream.
func (p *ThinkingParser) Parse(content string) (thinking, message *llm.StreamChunk) {
	if content == "" {
		return nil, nil
	}

	for _, ch := range content {
		switch {
		case ch == '<':
			// A second '<' means the buffered text was not a tag after all.
			if p.inTag {
				thinking, message = p.emit(thinking, message, p.drainTag())
			}
			thinking, message = p.emit(thinking, message, p.drainText())
			p.inTag = true
			p.tag.WriteRune(ch)

		case ch == '>' && p.inTag:
			p.tag.WriteRune(ch)
			raw := p.tag.String()
			p.tag.Reset()
			p.inTag = false

			switch raw {
			case openTag:
				p.inThinking = true
			case closeTag:
				p.inThinking = false
			default:
				// Unrecognized tags pass through as content.
				thinking, message = p.emit(thinking, message, p.typed(raw))
			}

		case p.inTag:
			p.tag.WriteRune(ch)

		default:
			p.text.WriteRune(ch)
		}
	}

	thinking, message = p.emit(thinking, message, p.drainText())
	return thinking, message
}

// Flush returns any buffered content that has not been emitted yet. Call it
// when the stream ends so an unterminated tag is not silently dropped.
func (p *ThinkingParser) Flush() (thinking, message *llm.StreamChunk) {
	if p.inTag {
		thinking, message = p.emit(thinking, message, p.drainTag())
		p.inTag = false
	}
	thinking, message = p.emit(thinking, message, p.drainText())
	return thinking, message
}

// IsInThinking returns true if currently inside a thinking block.
func (p *ThinkingParser) IsInThinking() bool {
	return p.inThinking
}

// Reset clears all parser state for a new stream.
func (p *ThinkingParser) Reset() {
	p.text.Reset()
	p.tag.Reset()
	p.inThinking = false
	p.inTag = false
}

func (p *ThinkingParser) drainText() *llm.StreamChunk {
	if p.text.Len() == 0 {
		return nil
	}
	out := p.text.String()
	p.text.Reset()
	return p.typed(out)
}

func (p *ThinkingParser) drainTag() *llm.StreamChunk {
	if p.tag.Len() == 0 {
		return nil
	}
	out := p.tag.String()
	p.tag.Reset()
	return p.typed(out)
}

// typed wraps text in a chunk classified by the current thinking state.
func (p *ThinkingParser) typed(text string) *llm.StreamChunk {
	if text == "" {
		return nil
	}
	t := llm.ContentTypeMessage
	if p.inThinking {
		t = llm.ContentTypeThinking
	}
	return &llm.StreamChunk{Content: text, Type: t}
}

// emit folds a new chunk into the per-call thinking/message accumulators.
func (p *ThinkingParser) emit(thinking, message, chunk *llm.StreamChunk) (*llm.StreamChunk, *llm.StreamChunk) {
	if chunk == nil {
		return thinking, message
	}
	if chunk.Type == llm.ContentTypeThinking {
		if thinking == nil {
			return chunk, message
		}
		thinking.Content += chunk.Content
		return thinking, message
	}
	if message == nil {
		return thinking, chunk
	}
	message.Content += chunk.Content
	return thinking, message
}
