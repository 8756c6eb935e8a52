package hooks

import "github.com/weaveworks/webhook-relay/payload"

// ClassificationResult is either a concrete event kind or a no-match
// sentinel. RawType preserves the type string an explicit hint carried so a
// rejection can name it.
type ClassificationResult struct {
	Kind    EventKind
	Matched bool
	RawType string
}

// Classify determines which event kind the payload represents.
//
// With an out-of-band hint or a configured hint path the type string is
// looked up directly against the source's kind table. Otherwise the ordered
// structural rules are walked top-down and the first rule whose fields are
// all present wins. No match in either mode means the event is unsupported.
func (s *Source) Classify(p payload.Payload, hint string) ClassificationResult {
	if hint == "" && s.HintPath != "" {
		hint, _ = p.String(s.HintPath)
	}
	if hint != "" || s.HintPath != "" {
		if s.kind(EventKind(hint)) == nil {
			return ClassificationResult{RawType: hint}
		}
		return ClassificationResult{Kind: EventKind(hint), Matched: true, RawType: hint}
	}

	for _, rule := range s.Rules {
		if matches(p, rule.When) {
			return ClassificationResult{Kind: rule.Kind, Matched: true}
		}
	}
	return ClassificationResult{}
}

func matches(p payload.Payload, paths []string) bool {
	for _, path := range paths {
		if !p.Has(path) {
			return false
		}
	}
	return true
}
