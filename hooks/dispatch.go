package hooks

import (
	"github.com/pkg/errors"

	"github.com/weaveworks/webhook-relay/payload"
)

// Options carries per-request dispatch overrides supplied by the caller.
type Options struct {
	// Hint is an out-of-band event type, overriding the source's hint path.
	Hint string
	// IgnoreKinds demotes the listed kinds to Ignore for this request only.
	IgnoreKinds []EventKind
}

func (o Options) ignores(kind EventKind) bool {
	for _, k := range o.IgnoreKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Dispatch applies the policy rules in order: kind-level ignored bucket and
// per-request demotions first, unknown kinds reject, a conditional-suppress
// gate may demote an otherwise supported kind, everything else forwards the
// rendered message. It is a pure function of its inputs.
func (s *Source) Dispatch(kind EventKind, fields Fields, opts Options) Decision {
	spec := s.kind(kind)
	if spec != nil && (spec.Ignored || opts.ignores(kind)) {
		return ignore()
	}
	if spec == nil {
		return reject(&UnrecognizedEventTypeError{Type: string(kind)})
	}
	if g := spec.Suppress; g != nil {
		if v, ok := fields.Values[g.Field].(bool); ok && v == g.Equals {
			return ignore()
		}
	}

	msg, err := s.Render(kind, fields)
	if err != nil {
		return reject(errors.Wrapf(err, "cannot render %s event", kind))
	}
	return forward(msg)
}

// Handle runs the whole pipeline for one raw webhook body: parse, classify,
// policy, validate, dispatch. Ignore and Forward both mean success to the
// sender; only Reject surfaces as an error.
func (s *Source) Handle(raw []byte, opts Options) Decision {
	p, err := payload.Parse(raw)
	if err != nil {
		return reject(&MalformedPayloadError{Err: err})
	}

	if s.Root != "" {
		sub, ok := p.Map(s.Root)
		if !ok {
			return reject(&ValidationError{Field: s.Root, Reason: "is missing"})
		}
		p = sub
	}

	res := s.Classify(p, opts.Hint)
	if !res.Matched {
		return reject(&UnrecognizedEventTypeError{Type: res.RawType})
	}

	// A rule may name a kind the policy file has since dropped.
	spec := s.kind(res.Kind)
	if spec == nil {
		return reject(&UnrecognizedEventTypeError{Type: string(res.Kind)})
	}

	// Ignored kinds skip validation: they carry no schema and the sender
	// must see success regardless.
	if spec.Ignored || opts.ignores(res.Kind) {
		return ignore()
	}

	fields, err := s.Validate(res.Kind, p)
	if err != nil {
		return reject(err)
	}
	return s.Dispatch(res.Kind, fields, opts)
}
