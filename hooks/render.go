package hooks

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pkg/errors"
)

// Render produces the (topic, body) pair for a validated event. It is total
// over any Fields bundle Validate produced: a status value absent from every
// lookup table renders a fallback token embedding the raw status, and
// templates only reference validated names.
func (s *Source) Render(kind EventKind, fields Fields) (*Message, error) {
	spec := s.kind(kind)
	if spec == nil {
		return nil, errors.Errorf("no render tables for kind %q", kind)
	}

	data := make(map[string]interface{}, len(fields.Values)+1)
	for k, v := range fields.Values {
		data[k] = v
	}
	if st := spec.Statuses; st != nil {
		status := fmt.Sprintf("%v", fields.Values[st.Field])
		data[st.Token] = st.emoji(status)
	}

	bodyTmpl := spec.Body
	if fields.variant >= 0 && fields.variant < len(spec.Variants) {
		bodyTmpl = spec.Variants[fields.variant].Body
	}

	topic, err := execute(spec.Topic, data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot render topic for %s", kind)
	}
	body, err := execute(bodyTmpl, data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot render body for %s", kind)
	}

	return &Message{Topic: topic, Body: body, Label: spec.Label}, nil
}

func (st *StatusTable) emoji(status string) string {
	if contains(st.Good, status) {
		return ":thumbs_up:"
	}
	if contains(st.Bad, status) {
		return ":thumbs_down:"
	}
	if contains(st.Pending, status) {
		return ":counterclockwise:"
	}
	return fmt.Sprintf("(No emoji specified for status '%s'.)", status)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func execute(tmpl string, data interface{}) (string, error) {
	t, err := template.New(tmpl).Parse(tmpl)
	if err != nil {
		return "", errors.Wrap(err, "cannot parse template")
	}

	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", errors.Wrap(err, "cannot execute template")
	}
	return b.String(), nil
}
