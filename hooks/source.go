package hooks

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
)

// FieldType is the expected primitive type of a required field.
type FieldType int

const (
	StringField FieldType = iota
	BoolField
	NumberField
	MapField
)

func (t FieldType) String() string {
	switch t {
	case StringField:
		return "string"
	case BoolField:
		return "boolean"
	case NumberField:
		return "number"
	case MapField:
		return "mapping"
	}
	return "unknown"
}

// FieldSpec declares one required field: where to find it in the payload,
// what type it must have, and the name templates use to refer to it.
type FieldSpec struct {
	Name string
	Path string
	Type FieldType
}

// Rule is one entry of the ordered structural-inference list: if every path
// in When is present in the payload, the payload is of the given kind.
// Rules are evaluated top-down, most specific first, and are permissive to
// extra unrelated fields.
type Rule struct {
	When []string
	Kind EventKind
}

// Gate is a conditional-suppress rule within a supported kind: when the named
// validated boolean field equals the given value, the event is demoted from
// Forward to Ignore.
type Gate struct {
	Field  string
	Equals bool
}

// StatusTable maps a validated status field to an emoji token. A status
// absent from all three lists still renders deterministically; the fallback
// token embeds the raw status value.
type StatusTable struct {
	Field   string
	Token   string
	Good    []string
	Bad     []string
	Pending []string
}

// Variant is a narrower sub-schema of a kind, selected by payload shape.
// The first variant whose When paths are all present wins; a variant with an
// empty When list always matches and should come last.
type Variant struct {
	When   []string
	Fields []FieldSpec
	Body   string
}

// KindSpec holds everything declared for one event kind: the required-field
// schema, the topic and body templates, optional lookup tables and gates,
// and its policy bucket. Kinds absent from a source's table are unsupported.
type KindSpec struct {
	Kind     EventKind
	Label    string
	Fields   []FieldSpec
	Topic    string
	Body     string
	Statuses *StatusTable
	Suppress *Gate
	Variants []Variant

	// Ignored marks a kind the source emits but deliberately drops.
	Ignored bool
}

// RequestOption declares a caller-supplied boolean flag that demotes a kind
// to Ignore for a single request, e.g. Travis' ignore_pull_requests.
type RequestOption struct {
	Param   string
	Kind    EventKind
	Default bool
}

// Source is the full declarative configuration for one integration:
// classification strategy, per-kind tables, and request options. Adding a
// new integration means declaring one of these; no dispatch code changes.
type Source struct {
	Name string

	// Root, when set, is a payload path the whole pipeline descends into
	// before classification (Travis nests its message under "payload").
	Root string

	// HintPath selects explicit-hint classification: the payload path holding
	// the event type string. When empty the ordered Rules are used instead.
	HintPath string
	Rules    []Rule

	Kinds   []KindSpec
	Options []RequestOption

	kinds map[EventKind]*KindSpec
}

// NewSource indexes the kind table and returns a ready source.
func NewSource(s Source) *Source {
	s.kinds = make(map[EventKind]*KindSpec, len(s.Kinds))
	for i := range s.Kinds {
		k := &s.Kinds[i]
		if k.Label == "" {
			k.Label = string(k.Kind)
		}
		s.kinds[k.Kind] = k
	}
	return &s
}

func (s *Source) kind(k EventKind) *KindSpec {
	return s.kinds[k]
}

// KindNames returns every kind the source knows, supported or ignored.
func (s *Source) KindNames() []string {
	names := make([]string, 0, len(s.Kinds))
	for _, k := range s.Kinds {
		names = append(names, string(k.Kind))
	}
	return names
}

// Policy is a per-source override of kind buckets, loaded at startup.
type Policy struct {
	Source  string   `json:"source"`
	Ignored []string `json:"ignored"`
	Dropped []string `json:"dropped"`
}

// ApplyPolicyFile reads a JSON list of policies and applies each to the
// matching source: Ignored moves kinds into the ignored bucket, Dropped
// removes them entirely so they reject as unsupported.
func ApplyPolicyFile(sources map[string]*Source, path string) error {
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "cannot read policy file %s", path)
	}
	var policies []Policy
	if err := json.Unmarshal(contents, &policies); err != nil {
		return errors.Wrapf(err, "cannot parse policy file %s", path)
	}

	for _, pol := range policies {
		src, ok := sources[pol.Source]
		if !ok {
			return errors.Errorf("policy refers to unknown source %q", pol.Source)
		}
		for _, name := range pol.Ignored {
			spec := src.kind(EventKind(name))
			if spec == nil {
				return errors.Errorf("policy for source %q refers to unknown kind %q", pol.Source, name)
			}
			spec.Ignored = true
		}
		for _, name := range pol.Dropped {
			delete(src.kinds, EventKind(name))
		}
	}
	return nil
}
