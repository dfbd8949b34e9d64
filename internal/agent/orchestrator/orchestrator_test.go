package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tailortalk/internal/agent"
	"tailortalk/internal/session"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/llmprovider"
	pkgLog "tailortalk/pkg/log"
	"tailortalk/pkg/slotfinder"
)

// scriptedProvider replies with one response per call, in order.
type scriptedProvider struct {
	responses []*llmprovider.Response
	requests  []llmprovider.Request
}

func (p *scriptedProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	p.requests = append(p.requests, *req)
	if len(p.requests) > len(p.responses) {
		return nil, errors.New("script exhausted")
	}
	return p.responses[len(p.requests)-1], nil
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "test" }

func text(s string) *llmprovider.Response {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  llmprovider.RoleAssistant,
		Parts: []llmprovider.Part{{Text: s}},
	}}
}

func call(id, name string, args map[string]interface{}) *llmprovider.Response {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  llmprovider.RoleAssistant,
		Parts: []llmprovider.Part{{FunctionCall: &llmprovider.FunctionCall{ID: id, Name: name, Args: args}}},
	}}
}

// tzTool switches the session timezone.
type tzTool struct {
	seen session.State
	err  error
}

type tzResult struct {
	Timezone string `json:"timezone"`
}

func (r tzResult) Apply(st session.State) session.State { return st.WithTimezone(r.Timezone) }

func (t *tzTool) Name() string        { return "change_timezone" }
func (t *tzTool) Description() string { return "switch timezone" }
func (t *tzTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (t *tzTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	t.seen, _ = agent.StateFromContext(ctx)
	if t.err != nil {
		return nil, t.err
	}
	return tzResult{Timezone: params["new_timezone"].(string)}, nil
}

// listTool returns a bare array.
type listTool struct{}

func (listTool) Name() string                       { return "list" }
func (listTool) Description() string                { return "list" }
func (listTool) Parameters() map[string]interface{} { return map[string]interface{}{"type": "object"} }
func (listTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	return []string{"a", "b"}, nil
}

var thursday = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

func newTestOrchestrator(p *scriptedProvider, tools ...agent.Tool) *Orchestrator {
	registry := agent.NewToolRegistry()
	for _, t := range tools {
		registry.Register(t)
	}
	l := pkgLog.NewNop()
	manager := llmprovider.NewManager([]llmprovider.Provider{p}, &llmprovider.Config{RetryAttempts: 1}, l)
	return New(manager, registry, l, WithClock(func() time.Time { return thursday }))
}

func TestProcessQuery_Text(t *testing.T) {
	p := &scriptedProvider{responses: []*llmprovider.Response{text("Hello there!")}}
	o := newTestOrchestrator(p)

	st := session.New("s1", "UTC").WithUserMessage("hi").WithAssistantMessage("hey")
	reply, next, err := o.ProcessQuery(context.Background(), st, "what can you do?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Hello there!" {
		t.Errorf("expected 'Hello there!', got %q", reply)
	}
	if next.Step != st.Step || len(next.History) != 2 {
		t.Errorf("state should be unchanged, got %+v", next)
	}

	req := p.requests[0]
	if len(req.Messages) != 3 {
		t.Fatalf("expected history plus message, got %d messages", len(req.Messages))
	}
	if req.Messages[1].Role != llmprovider.RoleAssistant || req.Messages[2].Parts[0].Text != "what can you do?" {
		t.Errorf("unexpected messages: %+v", req.Messages)
	}
	if !strings.Contains(req.SystemInstruction.Parts[0].Text, "Today: 2026-10-15 (Thursday)") {
		t.Errorf("system prompt lacks time context: %s", req.SystemInstruction.Parts[0].Text)
	}
}

func TestProcessQuery_ToolEffect(t *testing.T) {
	p := &scriptedProvider{responses: []*llmprovider.Response{
		call("call_1", "change_timezone", map[string]interface{}{"new_timezone": "Asia/Tokyo"}),
		text("Done, you are on Tokyo time."),
	}}
	tool := &tzTool{}
	o := newTestOrchestrator(p, tool)

	reply, next, err := o.ProcessQuery(context.Background(), session.New("s1", "UTC"), "switch to JST")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Done, you are on Tokyo time." {
		t.Errorf("unexpected reply %q", reply)
	}
	if next.Timezone != "Asia/Tokyo" {
		t.Errorf("effect not applied, timezone %q", next.Timezone)
	}
	if tool.seen.SessionID != "s1" {
		t.Errorf("tool did not receive session state")
	}

	second := p.requests[1].Messages
	if len(second) != 3 {
		t.Fatalf("expected user, call and result messages, got %d", len(second))
	}
	resp := second[2].Parts[0].FunctionResponse
	if second[2].Role != llmprovider.RoleTool || resp == nil {
		t.Fatalf("expected a tool message, got %+v", second[2])
	}
	if resp.ID != "call_1" || resp.Name != "change_timezone" {
		t.Errorf("unexpected function response %+v", resp)
	}
	if got := resp.Response.(map[string]interface{})["timezone"]; got != "Asia/Tokyo" {
		t.Errorf("unexpected payload %v", resp.Response)
	}
}

func TestProcessQuery_ToolErrors(t *testing.T) {
	p := &scriptedProvider{responses: []*llmprovider.Response{
		call("", "missing_tool", nil),
		call("", "change_timezone", map[string]interface{}{"new_timezone": "x"}),
		call("", "list", nil),
		text("ok"),
	}}
	o := newTestOrchestrator(p, &tzTool{err: errors.New("bad zone")}, listTool{})

	_, next, err := o.ProcessQuery(context.Background(), session.New("s1", "UTC"), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Timezone != "UTC" {
		t.Errorf("failed tool must not change state")
	}

	payload := func(i int) map[string]interface{} {
		msgs := p.requests[i].Messages
		return msgs[len(msgs)-1].Parts[0].FunctionResponse.Response.(map[string]interface{})
	}
	if payload(1)["error"] != ErrMsgToolNotFound {
		t.Errorf("expected tool not found, got %v", payload(1))
	}
	if payload(2)["error"] != "bad zone" {
		t.Errorf("expected tool error, got %v", payload(2))
	}
	if _, ok := payload(3)["result"].([]interface{}); !ok {
		t.Errorf("expected wrapped array, got %v", payload(3))
	}
}

func TestProcessQuery_MaxSteps(t *testing.T) {
	var responses []*llmprovider.Response
	for i := 0; i < MaxAgentSteps; i++ {
		responses = append(responses, call("", "list", nil))
	}
	o := newTestOrchestrator(&scriptedProvider{responses: responses}, listTool{})

	reply, _, err := o.ProcessQuery(context.Background(), session.New("s1", "UTC"), "loop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != ErrMsgMaxStepsExceeded {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestProcessQuery_Failures(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		o := New(llmprovider.NewManager(nil, nil, pkgLog.NewNop()), agent.NewToolRegistry(), pkgLog.NewNop())
		if o.Ready() {
			t.Fatal("expected not ready")
		}
		if _, _, err := o.ProcessQuery(context.Background(), session.New("s1", "UTC"), "hi"); !errors.Is(err, ErrAgentUnavailable) {
			t.Errorf("expected ErrAgentUnavailable, got %v", err)
		}
	})

	t.Run("empty response", func(t *testing.T) {
		o := newTestOrchestrator(&scriptedProvider{responses: []*llmprovider.Response{text("  ")}})
		if _, _, err := o.ProcessQuery(context.Background(), session.New("s1", "UTC"), "hi"); !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("provider error", func(t *testing.T) {
		o := newTestOrchestrator(&scriptedProvider{})
		if _, _, err := o.ProcessQuery(context.Background(), session.New("s1", "UTC"), "hi"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestBuildSessionContext(t *testing.T) {
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	slots := []slotfinder.Slot{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), DurationMinutes: 60},
		{Start: day.Add(14 * time.Hour), End: day.Add(15 * time.Hour), DurationMinutes: 60},
	}
	st := session.New("s1", "IST").WithOffer(datemath.Window{Start: day, End: datemath.EndOfDay(day)}, slots)

	ctx := buildSessionContext(st)
	if !strings.Contains(ctx, "2. Friday, October 16, 2026 at 07:30 PM (Asia/Kolkata)") {
		t.Errorf("offered slots missing from context:\n%s", ctx)
	}

	selected, err := st.SelectSlot(1)
	if err != nil {
		t.Fatal(err)
	}
	ctx = buildSessionContext(selected)
	if !strings.Contains(ctx, "[SELECTED SLOT]") || strings.Contains(ctx, "[OFFERED SLOTS") {
		t.Errorf("unexpected selected context:\n%s", ctx)
	}

	if buildSessionContext(session.New("s2", "UTC")) != "" {
		t.Error("fresh session should add no context")
	}
}

func TestBuildTimeContext(t *testing.T) {
	// Sunday: the week started six days earlier
	sunday := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	ctx := buildTimeContext(sunday, "UTC")

	for _, want := range []string{
		"SYSTEM CONTEXT",
		"Today: 2026-10-18 (Sunday)",
		"Tomorrow: 2026-10-19",
		"This week: from 2026-10-12 to 2026-10-18",
		"YYYY-MM-DD",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context should contain %q", want)
		}
	}
}
