package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailortalk/internal/chat"
	"tailortalk/internal/session"
	pkgLog "tailortalk/pkg/log"
	"tailortalk/pkg/slotfinder"
)

type fakeUseCase struct {
	in  chat.ChatInput
	err error
}

func (f *fakeUseCase) Chat(ctx context.Context, in chat.ChatInput) (chat.ChatOutput, error) {
	f.in = in
	if f.err != nil {
		return chat.ChatOutput{}, f.err
	}
	start := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	return chat.ChatOutput{
		SessionID:      "s1",
		Reply:          "Here are some times",
		Step:           session.StepOffered,
		Timezone:       "Asia/Kolkata",
		AvailableSlots: []slotfinder.Slot{{Start: start, End: start.Add(time.Hour), DurationMinutes: 60}},
		History:        []session.Turn{{Role: session.RoleUser, Content: in.Message}},
	}, nil
}

func (f *fakeUseCase) GetSession(ctx context.Context, id string) (session.State, error) {
	if id != "s1" {
		return session.State{}, session.ErrSessionNotFound
	}
	return session.New("s1", "UTC"), nil
}

func (f *fakeUseCase) ResetSession(ctx context.Context, id string) error {
	if id != "s1" {
		return session.ErrSessionNotFound
	}
	return nil
}

func (f *fakeUseCase) Stats(ctx context.Context) (chat.StatsOutput, error) {
	return chat.StatsOutput{}, nil
}

func (f *fakeUseCase) AgentReady() bool { return false }

func setupRouter(uc chat.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(pkgLog.NewNop(), uc))
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChat(t *testing.T) {
	uc := &fakeUseCase{}
	r := setupRouter(uc)

	w := do(r, http.MethodPost, "/api/v1/chat", map[string]string{"message": "tomorrow?", "timezone": "IST"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chat.ChannelHTTP, uc.in.Channel)
	assert.Equal(t, "IST", uc.in.Timezone)

	var env struct {
		Data chatResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "s1", env.Data.SessionID)
	assert.Equal(t, "offered", env.Data.Step)
	require.Len(t, env.Data.AvailableSlots, 1)
	assert.Equal(t, "Friday, October 16, 2026 at 02:30 PM (Asia/Kolkata)", env.Data.AvailableSlots[0].Display)
	assert.Len(t, env.Data.History, 1)
}

func TestChat_Errors(t *testing.T) {
	w := do(setupRouter(&fakeUseCase{}), http.MethodPost, "/api/v1/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "too long", err: chat.ErrMessageTooLong, code: http.StatusBadRequest},
		{name: "bad timezone", err: chat.ErrInvalidTimezone, code: http.StatusBadRequest},
		{name: "store down", err: assert.AnError, code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(setupRouter(&fakeUseCase{err: tt.err}), http.MethodPost, "/api/v1/chat", map[string]string{"message": "hi"})
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestSessions(t *testing.T) {
	r := setupRouter(&fakeUseCase{})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/sessions/s1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/sessions/other", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/v1/sessions/s1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/v1/sessions/other", nil).Code)
}
