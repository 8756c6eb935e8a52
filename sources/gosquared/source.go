// Package gosquared declares the GoSquared integration. GoSquared payloads
// carry no type discriminator, so the event kind is inferred from which
// field combinations are present, most specific combination first.
package gosquared

import "github.com/weaveworks/webhook-relay/hooks"

const (
	// TrafficSpike is a traffic spike or dip alert.
	TrafficSpike hooks.EventKind = "traffic_spike"
	// ChatMessage is a live chat message.
	ChatMessage hooks.EventKind = "chat_message"
)

const (
	trafficSpikeBody = "[{{.Domain}}](https://www.gosquared.com/now/{{.Account}}) has {{.Visitors}} visitors online."
	chatMessageBody  = "The {{.Status}} **{{.Name}}** messaged:\n\n``` quote\n{{.Content}}\n```"
)

// New returns the GoSquared source tables.
func New() *hooks.Source {
	return hooks.NewSource(hooks.Source{
		Name: "gosquared",
		Rules: []hooks.Rule{
			{When: []string{"concurrents", "siteDetails"}, Kind: TrafficSpike},
			{When: []string{"message", "person"}, Kind: ChatMessage},
		},
		Kinds: []hooks.KindSpec{
			{
				Kind: TrafficSpike,
				Fields: []hooks.FieldSpec{
					{Name: "Domain", Path: "siteDetails.domain", Type: hooks.StringField},
					{Name: "Account", Path: "siteDetails.acct", Type: hooks.StringField},
					{Name: "Visitors", Path: "concurrents", Type: hooks.NumberField},
				},
				Topic: "GoSquared - {{.Domain}}",
				Body:  trafficSpikeBody,
			},
			{
				Kind: ChatMessage,
				Fields: []hooks.FieldSpec{
					{Name: "Private", Path: "message.private", Type: hooks.BoolField},
					{Name: "Title", Path: "message.session.title", Type: hooks.StringField},
					{Name: "Content", Path: "message.content", Type: hooks.StringField},
					{Name: "Status", Path: "person.status", Type: hooks.StringField},
					{Name: "Name", Path: "person._anon.name", Type: hooks.StringField},
				},
				Topic: "Live chat session - {{.Title}}",
				Body:  chatMessageBody,
				// Private chats are never surfaced.
				Suppress: &hooks.Gate{Field: "Private", Equals: true},
			},
		},
	})
}
