package agent

import (
	"context"
	"fmt"

	"github.com/loomhq/loom/pkg/agent/prompts"
	"github.com/loomhq/loom/pkg/llm"
	"github.com/loomhq/loom/pkg/types"
)

// promptContext holds the prepared prompt and related metadata
type promptContext struct {
	systemPrompt string
	messages     []*types.Message
	promptTokens int
}

// llmResponse holds the accumulated response from one LLM call
type llmResponse struct {
	thinkingContent  string
	messageContent   string
	completionTokens int
}

// preparePrompt builds the system prompt and full message list from memory
func (a *DefaultAgent) preparePrompt(errorContext string) *promptContext {
	systemPrompt := prompts.NewPromptBuilder().
		WithTools(a.getToolsList()).
		WithCustomInstructions(a.customInstructions).
		Build()

	history := a.memory.GetAll()
	messages := prompts.BuildMessages(systemPrompt, history, "", errorContext)

	var promptTokens int
	if a.tokenizer != nil {
		promptTokens = a.tokenizer.CountMessagesTokens(messages)
		agentDebugLog.Printf("Prompt tokens before send: %d", promptTokens)
	}

	return &promptContext{
		systemPrompt: systemPrompt,
		messages:     messages,
		promptTokens: promptTokens,
	}
}

// callLLM sends the request to the LLM and processes the streaming response
func (a *DefaultAgent) callLLM(ctx context.Context, pctx *promptContext) (*llmResponse, error) {
	a.emitEvent(types.NewAPICallStartEvent("llm"))
	defer a.emitEvent(types.NewAPICallEndEvent("llm"))

	stream, err := a.provider.StreamCompletion(ctx, pctx.messages)
	if err != nil {
		// Check if this is a context cancellation (user stopped the agent)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Terminal error - LLM/API failures should stop the loop
		a.emitEvent(types.NewErrorEvent(fmt.Errorf("failed to start completion: %w", err)))
		return nil, err
	}

	resp := a.consumeStream(stream)

	if a.tokenizer != nil && resp.completionTokens == 0 {
		resp.completionTokens = a.tokenizer.CountTokens(resp.thinkingContent + resp.messageContent)
	}

	return resp, nil
}

// consumeStream drains the provider stream, emitting thinking and message
// events as typed content arrives and accumulating the full response.
func (a *DefaultAgent) consumeStream(stream <-chan *llm.StreamChunk) *llmResponse {
	resp := &llmResponse{}
	inThinking := false
	inMessage := false

	for chunk := range stream {
		if chunk.IsError() {
			a.emitEvent(types.NewErrorEvent(chunk.Error))
			continue
		}

		if chunk.Usage != nil {
			resp.completionTokens = chunk.Usage.CompletionTokens
		}

		if chunk.Content == "" {
			continue
		}

		switch chunk.Type {
		case llm.ContentTypeThinking:
			if inMessage {
				a.emitEvent(types.NewMessageEndEvent())
				inMessage = false
			}
			if !inThinking {
				a.emitEvent(types.NewThinkingStartEvent())
				inThinking = true
			}
			a.emitEvent(types.NewThinkingContentEvent(chunk.Content))
			resp.thinkingContent += chunk.Content

		default:
			if inThinking {
				a.emitEvent(types.NewThinkingEndEvent())
				inThinking = false
			}
			if !inMessage {
				a.emitEvent(types.NewMessageStartEvent())
				inMessage = true
			}
			a.emitEvent(types.NewMessageContentEvent(chunk.Content))
			resp.messageContent += chunk.Content
		}
	}

	if inThinking {
		a.emitEvent(types.NewThinkingEndEvent())
	}
	if inMessage {
		a.emitEvent(types.NewMessageEndEvent())
	}

	return resp
}

// recordResponse handles token usage events and adds the response to memory
func (a *DefaultAgent) recordResponse(pctx *promptContext, resp *llmResponse) {
	if pctx.promptTokens > 0 || resp.completionTokens > 0 {
		totalTokens := pctx.promptTokens + resp.completionTokens
		a.emitEvent(types.NewTokenUsageEvent(pctx.promptTokens, resp.completionTokens, totalTokens))
	}

	// Thinking is stripped before storage; only the visible response and tool
	// call are carried forward in conversation memory.
	a.memory.Add(types.NewAssistantMessage(resp.messageContent))
}
