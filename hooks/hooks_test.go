package hooks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weaveworks/webhook-relay/hooks"
	"github.com/weaveworks/webhook-relay/payload"
)

// testSource is a small synthetic integration in structural-inference mode.
// Hint mode gets its own fixture in the classify tests.
func testSource() *hooks.Source {
	return hooks.NewSource(hooks.Source{
		Name: "ci",
		Rules: []hooks.Rule{
			{When: []string{"build.status", "build.url"}, Kind: "build_finished"},
			{When: []string{"build.status"}, Kind: "build_started"},
		},
		Kinds: []hooks.KindSpec{
			{
				Kind: "build_finished",
				Fields: []hooks.FieldSpec{
					{Name: "Status", Path: "build.status", Type: hooks.StringField},
					{Name: "URL", Path: "build.url", Type: hooks.StringField},
					{Name: "Private", Path: "build.private", Type: hooks.BoolField},
				},
				Topic: "builds",
				Body:  "Build {{.Status}} {{.Emoji}} ([log]({{.URL}}))",
				Statuses: &hooks.StatusTable{
					Field: "Status",
					Token: "Emoji",
					Good:  []string{"passed"},
					Bad:   []string{"failed"},
				},
				Suppress: &hooks.Gate{Field: "Private", Equals: true},
			},
			{
				Kind: "build_started",
				Fields: []hooks.FieldSpec{
					{Name: "Status", Path: "build.status", Type: hooks.StringField},
				},
				Topic: "builds",
				Body:  "Build {{.Status}}.",
			},
			{Kind: "heartbeat", Ignored: true},
		},
	})
}

func parse(t *testing.T, raw string) payload.Payload {
	t.Helper()
	p, err := payload.Parse([]byte(raw))
	require.NoError(t, err)
	return p
}
