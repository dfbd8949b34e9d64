package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tailortalk/internal/agent"
	"tailortalk/internal/session"
	"tailortalk/pkg/llmprovider"
)

// ProcessQuery runs the ReAct loop (Reason, Act, Observe) for one user
// message. st is the session before the message; tool effects are folded
// into the returned state. Conversation turns are left to the caller.
func (o *Orchestrator) ProcessQuery(ctx context.Context, st session.State, message string) (string, session.State, error) {
	if !o.Ready() {
		return "", st, ErrAgentUnavailable
	}

	now := o.now().In(st.Location())
	system := SystemPromptAgent + buildTimeContext(now, st.Timezone) + buildSessionContext(st)

	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{Parts: []llmprovider.Part{{Text: system}}},
		Messages:          append(historyMessages(st), textMessage(llmprovider.RoleUser, message)),
		Tools:             o.registry.Definitions(),
		Temperature:       o.temperature,
	}

	for step := 0; step < MaxAgentSteps; step++ {
		o.l.Infof(ctx, LogMsgAgentStep, step+1, MaxAgentSteps)

		// 1. Reason
		resp, err := o.llm.GenerateContent(ctx, req)
		if err != nil {
			o.l.Errorf(ctx, "%s: step %d: %v", LogPrefixProcessQuery, step+1, err)
			return "", st, fmt.Errorf("agent LLM error at step %d: %w", step+1, err)
		}

		calls := functionCalls(resp.Content)
		if len(calls) == 0 {
			text := strings.TrimSpace(textOf(resp.Content))
			if text == "" {
				return "", st, ErrEmptyResponse
			}
			o.l.Infof(ctx, LogMsgAgentFinished, step+1)
			return text, st, nil
		}

		// 2. Act
		results := make([]llmprovider.Part, 0, len(calls))
		for _, call := range calls {
			var result map[string]interface{}
			st, result = o.executeTool(ctx, st, call)
			results = append(results, llmprovider.Part{
				FunctionResponse: &llmprovider.FunctionResponse{
					ID:       call.ID,
					Name:     call.Name,
					Response: result,
				},
			})
		}

		// 3. Observe
		req.Messages = append(req.Messages,
			llmprovider.Message{Role: llmprovider.RoleAssistant, Parts: resp.Content.Parts},
			llmprovider.Message{Role: llmprovider.RoleTool, Parts: results},
		)
	}

	o.l.Warnf(ctx, LogMsgAgentMaxSteps, MaxAgentSteps)
	return ErrMsgMaxStepsExceeded, st, nil
}

// executeTool runs one call against the current state. Failures are
// reported to the model as {"error": ...} rather than aborting the loop.
func (o *Orchestrator) executeTool(ctx context.Context, st session.State, call *llmprovider.FunctionCall) (session.State, map[string]interface{}) {
	o.l.Infof(ctx, LogMsgAgentCallingTool, call.Name, call.Args)

	tool, ok := o.registry.Get(call.Name)
	if !ok {
		o.l.Errorf(ctx, "%s: tool %s not found", LogPrefixProcessQuery, call.Name)
		o.metrics.ObserveToolCall(call.Name, agent.ErrToolNotFound)
		return st, map[string]interface{}{"error": ErrMsgToolNotFound}
	}

	res, err := tool.Execute(agent.WithState(ctx, st), call.Args)
	o.metrics.ObserveToolCall(call.Name, err)
	if err != nil {
		o.l.Warnf(ctx, LogMsgToolExecutionError, call.Name, err)
		return st, map[string]interface{}{"error": err.Error()}
	}

	if eff, ok := res.(agent.Effect); ok {
		st = eff.Apply(st)
	}
	return st, toResponseMap(res)
}

func historyMessages(st session.State) []llmprovider.Message {
	msgs := make([]llmprovider.Message, 0, len(st.History)+1)
	for _, turn := range st.History {
		role := llmprovider.RoleUser
		if turn.Role == session.RoleAssistant {
			role = llmprovider.RoleAssistant
		}
		msgs = append(msgs, textMessage(role, turn.Content))
	}
	return msgs
}

func textMessage(role, text string) llmprovider.Message {
	return llmprovider.Message{Role: role, Parts: []llmprovider.Part{{Text: text}}}
}

func functionCalls(msg llmprovider.Message) []*llmprovider.FunctionCall {
	var calls []*llmprovider.FunctionCall
	for _, p := range msg.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

func textOf(msg llmprovider.Message) string {
	texts := make([]string, 0, len(msg.Parts))
	for _, p := range msg.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// toResponseMap renders a tool result as a JSON object; Gemini rejects
// function responses that are not objects.
func toResponseMap(v interface{}) map[string]interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		return obj
	}

	var value interface{}
	_ = json.Unmarshal(raw, &value)
	return map[string]interface{}{"result": value}
}
