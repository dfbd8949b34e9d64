package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return fromViper(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, "environment:\n  name: test\n")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment.Name)
	assert.Equal(t, 8000, cfg.HTTPServer.Port)
	assert.Equal(t, "UTC", cfg.Scheduling.Timezone)
	assert.Equal(t, 9, cfg.Scheduling.OpenHour)
	assert.Equal(t, 17, cfg.Scheduling.CloseHour)
	assert.Equal(t, 60, cfg.Scheduling.DefaultDurationMinutes)
	assert.Equal(t, 10, cfg.Scheduling.MaxSlots)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Empty(t, cfg.HTTPServer.TrustedProxies)
	assert.Equal(t, "primary", cfg.GoogleCalendar.CalendarID)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
}

func TestLoad_Providers(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "secret")

	cfg, err := load(t, `
llm:
  providers:
    - name: openai
      enabled: true
      priority: 1
      api_key: sk-test
      model: gpt-4o-mini
    - name: gemini
      enabled: true
      priority: 2
      api_key: ${TEST_GEMINI_KEY}
      model: gemini-2.5-flash
google_calendar:
  busy_calendar_ids: [team@example.com, holidays@example.com]
`)
	require.NoError(t, err)
	require.Len(t, cfg.LLM.Providers, 2)
	assert.Equal(t, "openai", cfg.LLM.Providers[0].Name)
	assert.Equal(t, "secret", cfg.LLM.Providers[1].APIKey)
	assert.Equal(t, []string{"team@example.com", "holidays@example.com"}, cfg.GoogleCalendar.BusyCalendarIDs)
}

func TestLoad_OpenAIKeyShortcut(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := load(t, "")
	require.NoError(t, err)
	require.Len(t, cfg.LLM.Providers, 1)
	assert.Equal(t, "openai", cfg.LLM.Providers[0].Name)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Providers[0].Model)
}

func TestLoad_TrustedProxies(t *testing.T) {
	cfg, err := load(t, "http_server:\n  trusted_proxies: \"10.0.0.0/8, 192.168.1.2\"\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.2"}, cfg.HTTPServer.TrustedProxies)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "inverted hours", yaml: "scheduling:\n  open_hour: 18\n  close_hour: 9\n", want: "open_hour"},
		{name: "bad timezone", yaml: "scheduling:\n  timezone: Mars/Base\n", want: "timezone"},
		{name: "unknown backend", yaml: "session:\n  backend: etcd\n", want: "unknown backend"},
		{name: "duplicate priority", yaml: `
llm:
  providers:
    - {name: a, enabled: true, priority: 1, model: m}
    - {name: b, enabled: true, priority: 1, model: m}
`, want: "duplicate priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.yaml)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
