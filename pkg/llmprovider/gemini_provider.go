package llmprovider

import (
	"context"

	"tailortalk/pkg/gemini"
)

// GeminiProvider serves requests through pkg/gemini.
type GeminiProvider struct {
	client gemini.Client
}

func NewGeminiProvider(client gemini.Client) *GeminiProvider {
	return &GeminiProvider{client: client}
}

func (p *GeminiProvider) Name() string  { return ProviderGemini }
func (p *GeminiProvider) Model() string { return p.client.Model() }

func (p *GeminiProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	in := &gemini.Request{
		Messages:    make([]gemini.Content, 0, len(req.Messages)),
		Tools:       make([]gemini.Tool, 0, len(req.Tools)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		sys := toGeminiContent(*req.SystemInstruction)
		in.SystemInstruction = &sys
	}
	for _, m := range req.Messages {
		in.Messages = append(in.Messages, toGeminiContent(m))
	}
	for _, t := range req.Tools {
		in.Tools = append(in.Tools, gemini.Tool(t))
	}

	out, err := p.client.GenerateContent(ctx, in)
	if err != nil {
		return nil, newProviderError(ProviderGemini, err)
	}

	resp := &Response{
		Content:      Message{Role: RoleAssistant, Parts: fromGeminiParts(out.Content.Parts)},
		ProviderName: ProviderGemini,
		ModelName:    p.client.Model(),
		Usage:        &Usage{},
	}
	if out.Usage != nil {
		*resp.Usage = Usage(*out.Usage)
	}
	return resp, nil
}

func toGeminiContent(m Message) gemini.Content {
	c := gemini.Content{Role: m.Role, Parts: make([]gemini.Part, 0, len(m.Parts))}
	for _, p := range m.Parts {
		gp := gemini.Part{Text: p.Text}
		if fc := p.FunctionCall; fc != nil {
			gp.FunctionCall = &gemini.FunctionCall{Name: fc.Name, Args: fc.Args}
		}
		if fr := p.FunctionResponse; fr != nil {
			gp.FunctionResponse = &gemini.FunctionResponse{Name: fr.Name, Response: fr.Response}
		}
		c.Parts = append(c.Parts, gp)
	}
	return c
}

// Gemini does not id its function calls, so FunctionCall.ID stays empty.
func fromGeminiParts(parts []gemini.Part) []Part {
	out := make([]Part, 0, len(parts))
	for _, gp := range parts {
		p := Part{Text: gp.Text}
		if gp.FunctionCall != nil {
			p.FunctionCall = &FunctionCall{Name: gp.FunctionCall.Name, Args: gp.FunctionCall.Args}
		}
		out = append(out, p)
	}
	return out
}
