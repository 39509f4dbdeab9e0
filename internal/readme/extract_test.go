package readme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readmearchitect/internal/domain/entity"
)

func envelope(t *testing.T, raw string) entity.Envelope {
	t.Helper()
	env, err := entity.ParseEnvelope([]byte(raw))
	require.NoError(t, err)
	return env
}

var longText = strings.Repeat("x", 150)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		strategy string
	}{
		{
			name:     "nested outputs",
			raw:      `{"outputs":[{"outputs":[{"results":{"message":{"text":"# From nested"}}}]}]}`,
			want:     "# From nested",
			strategy: "nested_outputs",
		},
		{
			name:     "nested outputs win over text",
			raw:      `{"outputs":[{"text":"from text","outputs":[{"results":{"message":{"text":"from nested"}}}]}]}`,
			want:     "from nested",
			strategy: "nested_outputs",
		},
		{
			name:     "results",
			raw:      `{"outputs":[{"results":{"message":{"text":"from results"}}}]}`,
			want:     "from results",
			strategy: "results",
		},
		{
			name:     "empty nested outputs fall through to results",
			raw:      `{"outputs":[{"outputs":[],"results":{"message":{"text":"from results"}}}]}`,
			want:     "from results",
			strategy: "results",
		},
		{
			name:     "text",
			raw:      `{"outputs":[{"text":"from text"}]}`,
			want:     "from text",
			strategy: "text",
		},
		{
			name:     "message object",
			raw:      `{"outputs":[{"message":{"text":"from message"}}]}`,
			want:     "from message",
			strategy: "message",
		},
		{
			name:     "message string",
			raw:      `{"outputs":[{"message":"bare message"}]}`,
			want:     "bare message",
			strategy: "message",
		},
		{
			name:     "message number is stringified",
			raw:      `{"outputs":[{"message":42}]}`,
			want:     "42",
			strategy: "message",
		},
		{
			name:     "shallow scan picks long field",
			raw:      `{"outputs":[{"id":"short"},{"payload":"` + longText + `"}]}`,
			want:     longText,
			strategy: "shallow_scan",
		},
		{
			name:     "shallow scan takes first long field in document order",
			raw:      `{"outputs":[{"zeta":"` + strings.Repeat("z", 150) + `","alpha":"` + strings.Repeat("a", 150) + `"}]}`,
			want:     strings.Repeat("z", 150),
			strategy: "shallow_scan",
		},
		{
			name:     "shallow scan ignores 100 chars",
			raw:      `{"outputs":[{"payload":"` + strings.Repeat("y", 100) + `"}]}`,
			strategy: "diagnostic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strategy := ExtractWith(envelope(t, tt.raw), "demo")
			assert.Equal(t, tt.strategy, strategy)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtract_DiagnosticFallback(t *testing.T) {
	env := envelope(t, `{"session_id":"abc","outputs":[]}`)

	got := Extract(env, "demo")

	assert.True(t, strings.HasPrefix(got, "# demo\n\nLangflow Response:\n"))
	assert.Contains(t, got, `"session_id":"abc"`)
}

func TestExtract_DiagnosticShowsMarkupVerbatim(t *testing.T) {
	env := envelope(t, `{"error":"<b>flow</b> & co"}`)

	got := Extract(env, "demo")

	assert.Equal(t, "# demo\n\nLangflow Response:\n{\"error\":\"<b>flow</b> & co\"}", got)
}

func TestExtract_NeverPanics(t *testing.T) {
	inputs := []string{
		`{}`,
		`[]`,
		`null`,
		`"just a string"`,
		`123`,
		`{"outputs":null}`,
		`{"outputs":{}}`,
		`{"outputs":"nope"}`,
		`{"outputs":[null]}`,
		`{"outputs":[1,2,3]}`,
		`{"outputs":[{"outputs":"x","results":[],"message":null}]}`,
		`{"outputs":[{"outputs":[{"results":{"message":"flat"}}]}]}`,
		`{"outputs":[{"outputs":[{"results":{"message":{"text":7}}}]}]}`,
		`{"outputs":[[[[{"text":"deep"}]]]]}`,
	}
	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			var got string
			assert.NotPanics(t, func() { got = Extract(envelope(t, raw), "demo") })
			assert.NotEmpty(t, got)
		})
	}
}

func TestExtract_ZeroEnvelope(t *testing.T) {
	assert.Equal(t, "# demo\n\nLangflow Response:\n", Extract(entity.Envelope{}, "demo"))
}
