package gemini

// encodeRequest maps the neutral request onto the REST payload.
func encodeRequest(req *Request) geminiRequest {
	out := geminiRequest{Contents: make([]geminiContent, 0, len(req.Messages))}

	if req.SystemInstruction != nil {
		out.SystemInstruction = &geminiContent{Parts: encodeParts(req.SystemInstruction.Parts)}
	}
	for _, m := range req.Messages {
		out.Contents = append(out.Contents, geminiContent{Role: wireRole(m.Role), Parts: encodeParts(m.Parts)})
	}

	if len(req.Tools) > 0 {
		decls := make([]geminiFunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			decls = append(decls, geminiFunctionDeclaration(t))
		}
		out.Tools = []geminiTool{{FunctionDeclarations: decls}}
	}

	if req.Temperature > 0 || req.MaxTokens > 0 {
		out.GenerationConfig = &geminiGenerationConfig{Temperature: req.Temperature, MaxOutputTokens: req.MaxTokens}
	}
	return out
}

func encodeParts(parts []Part) []geminiPart {
	out := make([]geminiPart, 0, len(parts))
	for _, p := range parts {
		wp := geminiPart{Text: p.Text}
		if fc := p.FunctionCall; fc != nil {
			wp.FunctionCall = &geminiFunctionCall{Name: fc.Name, Args: fc.Args}
		}
		if fr := p.FunctionResponse; fr != nil {
			wp.FunctionResponse = &geminiFunctionResponse{Name: fr.Name, Response: fr.Response}
		}
		out = append(out, wp)
	}
	return out
}

// decodeResponse keeps the first candidate only.
func decodeResponse(resp *geminiResponse) *Response {
	out := &Response{Usage: &Usage{}}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &Usage{InputTokens: u.PromptTokenCount, OutputTokens: u.CandidatesTokenCount, TotalTokens: u.TotalTokenCount}
	}
	if len(resp.Candidates) == 0 {
		return out
	}

	c := resp.Candidates[0].Content
	out.Content = Content{Role: c.Role, Parts: make([]Part, 0, len(c.Parts))}
	for _, wp := range c.Parts {
		p := Part{Text: wp.Text}
		if wp.FunctionCall != nil {
			p.FunctionCall = &FunctionCall{Name: wp.FunctionCall.Name, Args: wp.FunctionCall.Args}
		}
		out.Content.Parts = append(out.Content.Parts, p)
	}
	return out
}

// blockReason reports why Gemini withheld an answer, if it did.
func blockReason(resp *geminiResponse) string {
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return fb.BlockReason
	}
	if len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	switch cand.FinishReason {
	case "SAFETY", "RECITATION", "BLOCKLIST", "PROHIBITED_CONTENT":
		if len(cand.Content.Parts) == 0 {
			return cand.FinishReason
		}
	}
	return ""
}

// wireRole maps neutral roles onto the two roles Gemini accepts.
func wireRole(role string) string {
	if role == "assistant" || role == "model" {
		return "model"
	}
	return "user"
}
