package hooks

import (
	"encoding/json"
	"fmt"

	"github.com/weaveworks/webhook-relay/payload"
)

// Fields is the validated bundle handed to the renderer: template names
// mapped to the extracted values, plus the sub-schema variant that matched.
type Fields struct {
	Values  map[string]interface{}
	variant int
}

// Validate checks presence and type of every required field for the kind, in
// schema declaration order, and fails fast on the first problem. A present
// but wrong-typed field is an error equivalent to missing; nested lookups
// fail closed on missing intermediate keys.
func (s *Source) Validate(kind EventKind, p payload.Payload) (Fields, error) {
	spec := s.kind(kind)
	if spec == nil {
		return Fields{}, &UnrecognizedEventTypeError{Type: string(kind)}
	}

	fieldSpecs := spec.Fields
	variant := -1
	for i, v := range spec.Variants {
		if matches(p, v.When) {
			fieldSpecs = append(fieldSpecs[:len(fieldSpecs):len(fieldSpecs)], v.Fields...)
			variant = i
			break
		}
	}

	values := make(map[string]interface{}, len(fieldSpecs))
	for _, f := range fieldSpecs {
		v, err := extract(p, f)
		if err != nil {
			return Fields{}, err
		}
		values[f.Name] = v
	}
	return Fields{Values: values, variant: variant}, nil
}

func extract(p payload.Payload, f FieldSpec) (interface{}, error) {
	raw, ok := p.Get(f.Path)
	if !ok {
		return nil, &ValidationError{Field: f.Path, Reason: "is missing"}
	}

	switch f.Type {
	case StringField:
		if v, ok := raw.(string); ok {
			return v, nil
		}
	case BoolField:
		if v, ok := raw.(bool); ok {
			return v, nil
		}
	case NumberField:
		if v, ok := p.Number(f.Path); ok {
			return v, nil
		}
	case MapField:
		if v, ok := raw.(map[string]interface{}); ok {
			return payload.Payload(v), nil
		}
	}
	return nil, &ValidationError{
		Field:  f.Path,
		Reason: fmt.Sprintf("is not a %s (got %s)", f.Type, typeName(raw)),
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case map[string]interface{}:
		return "mapping"
	case []interface{}:
		return "sequence"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
