package hooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStatusTables(t *testing.T) {
	src := testSource()

	for _, tc := range []struct {
		status string
		emoji  string
	}{
		{"passed", ":thumbs_up:"},
		{"failed", ":thumbs_down:"},
		{"hovering", "(No emoji specified for status 'hovering'.)"},
	} {
		fields, err := src.Validate("build_finished",
			parse(t, `{"build": {"status": "`+tc.status+`", "url": "u", "private": false}}`))
		require.NoError(t, err)

		msg, err := src.Render("build_finished", fields)
		require.NoError(t, err)
		assert.Equal(t, "builds", msg.Topic)
		assert.Contains(t, msg.Body, tc.emoji)
		assert.Contains(t, msg.Body, tc.status, "raw status always appears in the body")
	}
}

// Render must be total over anything Validate produced.
func TestRenderTotalOverValidatedFields(t *testing.T) {
	src := testSource()

	for _, raw := range []string{
		`{"build": {"status": "passed", "url": "u", "private": false}}`,
		`{"build": {"status": "", "url": "", "private": true}}`,
		`{"build": {"status": "with {{weird}} chars", "url": "u", "private": false}}`,
		`{"build": {"status": "started"}}`,
	} {
		p := parse(t, raw)
		res := src.Classify(p, "")
		require.True(t, res.Matched, raw)

		fields, err := src.Validate(res.Kind, p)
		require.NoError(t, err, raw)

		msg, err := src.Render(res.Kind, fields)
		require.NoError(t, err, raw)
		assert.NotEmpty(t, msg.Topic)
		assert.NotEmpty(t, msg.Body)
	}
}

func TestRenderLabelDefaultsToKind(t *testing.T) {
	src := testSource()

	fields, err := src.Validate("build_started", parse(t, `{"build": {"status": "started"}}`))
	require.NoError(t, err)

	msg, err := src.Render("build_started", fields)
	require.NoError(t, err)
	assert.Equal(t, "build_started", msg.Label)
}
