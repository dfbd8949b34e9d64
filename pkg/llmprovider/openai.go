package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultDeepSeekBaseURL is the OpenAI-compatible DeepSeek endpoint.
const DefaultDeepSeekBaseURL = "https://api.deepseek.com/v1"

// ChatCompleter is the subset of *openai.Client used by OpenAIAdapter.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAdapter adapts any OpenAI-compatible chat completions endpoint
// (OpenAI, DeepSeek) to the Provider interface.
type OpenAIAdapter struct {
	client ChatCompleter
	name   string
	model  string
}

// NewOpenAIAdapter creates an adapter for an OpenAI-compatible API.
// An empty baseURL keeps the library default.
func NewOpenAIAdapter(name, apiKey, baseURL, model string) *OpenAIAdapter {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return NewOpenAIAdapterWithClient(name, model, openai.NewClientWithConfig(clientConfig))
}

// NewOpenAIAdapterWithClient wraps an existing client.
func NewOpenAIAdapterWithClient(name, model string, client ChatCompleter) *OpenAIAdapter {
	return &OpenAIAdapter{client: client, name: name, model: model}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertToOpenAIMessages(req),
		Tools:       convertToOpenAITools(req.Tools),
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, newProviderError(a.name, err)
	}

	model := resp.Model
	if model == "" {
		model = a.model
	}

	out := &Response{
		Content:      Message{Role: RoleAssistant},
		ProviderName: a.name,
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) == 0 {
		return out, nil
	}

	msg := resp.Choices[0].Message
	if msg.Content != "" {
		out.Content.Parts = append(out.Content.Parts, Part{Text: msg.Content})
	}
	for _, tc := range msg.ToolCalls {
		args := map[string]interface{}{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("decode tool arguments for %s: %w", tc.Function.Name, err)}
			}
		}
		out.Content.Parts = append(out.Content.Parts, Part{
			FunctionCall: &FunctionCall{ID: tc.ID, Name: tc.Function.Name, Args: args},
		})
	}

	return out, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.model
}

// convertToOpenAIMessages flattens the normalized history. Function results
// become one tool message each; calls ride on the assistant message.
func convertToOpenAIMessages(req *Request) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.SystemInstruction != nil && len(req.SystemInstruction.Parts) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: joinText(req.SystemInstruction.Parts),
		})
	}

	for _, msg := range req.Messages {
		var calls []openai.ToolCall
		for _, p := range msg.Parts {
			switch {
			case p.FunctionCall != nil:
				argsJSON, _ := json.Marshal(p.FunctionCall.Args)
				calls = append(calls, openai.ToolCall{
					ID:   toolCallID(p.FunctionCall.ID, p.FunctionCall.Name),
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      p.FunctionCall.Name,
						Arguments: string(argsJSON),
					},
				})
			case p.FunctionResponse != nil:
				responseJSON, _ := json.Marshal(p.FunctionResponse.Response)
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    string(responseJSON),
					Name:       p.FunctionResponse.Name,
					ToolCallID: toolCallID(p.FunctionResponse.ID, p.FunctionResponse.Name),
				})
			}
		}

		text := joinText(msg.Parts)
		if text == "" && len(calls) == 0 {
			continue
		}

		role := openai.ChatMessageRoleUser
		if msg.Role == RoleAssistant || len(calls) > 0 {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: text, ToolCalls: calls})
	}

	return messages
}

func convertToOpenAITools(tools []Tool) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]openai.Tool, len(tools))
	for i, t := range tools {
		out[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return out
}

func toolCallID(id, name string) string {
	if id != "" {
		return id
	}
	return "call_" + name
}

func joinText(parts []Part) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
