// Package travis declares the Travis CI integration. Travis nests its
// message under a "payload" key and labels it with an explicit "type" field.
package travis

import "github.com/weaveworks/webhook-relay/hooks"

const (
	// Push is a build triggered by a branch push.
	Push hooks.EventKind = "push"
	// PullRequest is a build triggered by a pull request.
	PullRequest hooks.EventKind = "pull_request"
)

const buildBody = "Author: {{.Author}}\nBuild status: {{.Status}} {{.Emoji}}\nDetails: [changes]({{.CompareURL}}), [build log]({{.BuildURL}})"

var buildFields = []hooks.FieldSpec{
	{Name: "Author", Path: "author_name", Type: hooks.StringField},
	{Name: "Status", Path: "status_message", Type: hooks.StringField},
	{Name: "CompareURL", Path: "compare_url", Type: hooks.StringField},
	{Name: "BuildURL", Path: "build_url", Type: hooks.StringField},
}

var statuses = hooks.StatusTable{
	Field:   "Status",
	Token:   "Emoji",
	Good:    []string{"Passed", "Fixed"},
	Bad:     []string{"Failed", "Broken", "Still Failing", "Errored", "Canceled"},
	Pending: []string{"Pending"},
}

// New returns the Travis source tables.
func New() *hooks.Source {
	return hooks.NewSource(hooks.Source{
		Name:     "travis",
		Root:     "payload",
		HintPath: "type",
		Kinds: []hooks.KindSpec{
			{
				Kind:     Push,
				Fields:   buildFields,
				Topic:    "builds",
				Body:     buildBody,
				Statuses: &statuses,
			},
			{
				Kind:     PullRequest,
				Fields:   buildFields,
				Topic:    "builds",
				Body:     buildBody,
				Statuses: &statuses,
			},
		},
		Options: []hooks.RequestOption{
			// Pull request builds duplicate push builds on active repos, so
			// they are dropped unless the caller opts in.
			{Param: "ignore_pull_requests", Kind: PullRequest, Default: true},
		},
	})
}
