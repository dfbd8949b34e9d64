package llmprovider

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	lastReq openai.ChatCompletionRequest
	resp    openai.ChatCompletionResponse
	err     error
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func TestOpenAIAdapter_GenerateContent(t *testing.T) {
	fake := &fakeCompleter{
		resp: openai.ChatCompletionResponse{
			Model: "gpt-4o-mini-2024",
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{
					Role: openai.ChatMessageRoleAssistant,
					ToolCalls: []openai.ToolCall{{
						ID:   "call_abc",
						Type: openai.ToolTypeFunction,
						Function: openai.FunctionCall{
							Name:      "search_available_slots",
							Arguments: `{"date_preference":"tomorrow","duration_minutes":30}`,
						},
					}},
				},
			}},
			Usage: openai.Usage{PromptTokens: 20, CompletionTokens: 5, TotalTokens: 25},
		},
	}
	adapter := NewOpenAIAdapterWithClient(ProviderOpenAI, "gpt-4o-mini", fake)

	resp, err := adapter.GenerateContent(context.Background(), &Request{
		SystemInstruction: &Message{Parts: []Part{{Text: "You schedule meetings."}}},
		Messages: []Message{
			{Role: RoleUser, Parts: []Part{{Text: "anything tomorrow?"}}},
			{Role: RoleAssistant, Parts: []Part{{FunctionCall: &FunctionCall{ID: "call_1", Name: "get_current_time_info", Args: map[string]interface{}{}}}}},
			{Role: RoleTool, Parts: []Part{{FunctionResponse: &FunctionResponse{ID: "call_1", Name: "get_current_time_info", Response: map[string]interface{}{"date": "2026-10-15"}}}}},
		},
		Tools:       []Tool{{Name: "search_available_slots", Description: "find slots", Parameters: map[string]interface{}{"type": "object"}}},
		Temperature: 0.3,
	})
	require.NoError(t, err)

	require.Len(t, fake.lastReq.Messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.lastReq.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, fake.lastReq.Messages[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, fake.lastReq.Messages[2].Role)
	require.Len(t, fake.lastReq.Messages[2].ToolCalls, 1)
	assert.Equal(t, "call_1", fake.lastReq.Messages[2].ToolCalls[0].ID)
	assert.Equal(t, openai.ChatMessageRoleTool, fake.lastReq.Messages[3].Role)
	assert.Equal(t, "call_1", fake.lastReq.Messages[3].ToolCallID)
	assert.JSONEq(t, `{"date":"2026-10-15"}`, fake.lastReq.Messages[3].Content)
	require.Len(t, fake.lastReq.Tools, 1)
	assert.Equal(t, "search_available_slots", fake.lastReq.Tools[0].Function.Name)
	assert.Equal(t, "gpt-4o-mini", fake.lastReq.Model)

	assert.Equal(t, ProviderOpenAI, resp.ProviderName)
	assert.Equal(t, "gpt-4o-mini-2024", resp.ModelName)
	assert.Equal(t, 25, resp.Usage.TotalTokens)
	require.Len(t, resp.Content.Parts, 1)
	call := resp.Content.Parts[0].FunctionCall
	require.NotNil(t, call)
	assert.Equal(t, "call_abc", call.ID)
	assert.Equal(t, "tomorrow", call.Args["date_preference"])
	assert.Equal(t, float64(30), call.Args["duration_minutes"])
}

func TestOpenAIAdapter_TextAndErrors(t *testing.T) {
	t.Run("text reply", func(t *testing.T) {
		fake := &fakeCompleter{resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "Hi there"}}},
		}}
		adapter := NewOpenAIAdapterWithClient(ProviderDeepSeek, "deepseek-chat", fake)

		resp, err := adapter.GenerateContent(context.Background(), &Request{
			Messages: []Message{{Role: RoleUser, Parts: []Part{{Text: "hello"}}}},
		})
		require.NoError(t, err)
		assert.Equal(t, "deepseek-chat", resp.ModelName)
		assert.Nil(t, fake.lastReq.Tools)
		require.Len(t, resp.Content.Parts, 1)
		assert.Equal(t, "Hi there", resp.Content.Parts[0].Text)
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		adapter := NewOpenAIAdapterWithClient(ProviderOpenAI, "m", &fakeCompleter{err: boom})

		_, err := adapter.GenerateContent(context.Background(), &Request{})
		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, ProviderOpenAI, perr.Provider)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("api status is kept", func(t *testing.T) {
		adapter := NewOpenAIAdapterWithClient(ProviderDeepSeek, "m", &fakeCompleter{
			err: &openai.APIError{HTTPStatusCode: 429, Message: "slow down"},
		})

		_, err := adapter.GenerateContent(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrProviderRateLimited)
		assert.True(t, retryable(err))
	})

	t.Run("bad tool arguments", func(t *testing.T) {
		fake := &fakeCompleter{resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{
				ToolCalls: []openai.ToolCall{{ID: "x", Function: openai.FunctionCall{Name: "t", Arguments: "{not json"}}},
			}}},
		}}
		adapter := NewOpenAIAdapterWithClient(ProviderOpenAI, "m", fake)

		_, err := adapter.GenerateContent(context.Background(), &Request{})
		assert.Error(t, err)
	})

	t.Run("nil request", func(t *testing.T) {
		adapter := NewOpenAIAdapterWithClient(ProviderOpenAI, "m", &fakeCompleter{})
		_, err := adapter.GenerateContent(context.Background(), nil)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}
