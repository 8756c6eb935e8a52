// Package trello declares the Trello integration. Every Trello payload
// carries an explicit action type under "action.type"; messages thread by
// board name. Checklist item churn is deliberately dropped.
package trello

import "github.com/weaveworks/webhook-relay/hooks"

// Card actions.
const (
	CreateCard           hooks.EventKind = "createCard"
	UpdateCard           hooks.EventKind = "updateCard"
	CommentCard          hooks.EventKind = "commentCard"
	AddMemberToCard      hooks.EventKind = "addMemberToCard"
	RemoveMemberFromCard hooks.EventKind = "removeMemberFromCard"
)

// Board actions.
const (
	AddMemberToBoard      hooks.EventKind = "addMemberToBoard"
	RemoveMemberFromBoard hooks.EventKind = "removeMemberFromBoard"
	CreateList            hooks.EventKind = "createList"
	UpdateBoard           hooks.EventKind = "updateBoard"
)

const (
	boardTopic = "{{.Board}}"
	cardLink   = "[{{.Card}}](https://trello.com/c/{{.ShortLink}})"
)

var (
	memberField = hooks.FieldSpec{Name: "Member", Path: "action.memberCreator.fullName", Type: hooks.StringField}
	boardField  = hooks.FieldSpec{Name: "Board", Path: "action.data.board.name", Type: hooks.StringField}

	cardFields = []hooks.FieldSpec{
		memberField,
		boardField,
		{Name: "Card", Path: "action.data.card.name", Type: hooks.StringField},
		{Name: "ShortLink", Path: "action.data.card.shortLink", Type: hooks.StringField},
	}

	boardFields = []hooks.FieldSpec{memberField, boardField}
)

// New returns the Trello source tables.
func New() *hooks.Source {
	return hooks.NewSource(hooks.Source{
		Name:     "trello",
		HintPath: "action.type",
		Kinds: []hooks.KindSpec{
			{
				Kind:   CreateCard,
				Fields: cardFields,
				Topic:  boardTopic,
				Body:   "{{.Member}} created " + cardLink + ".",
			},
			{
				Kind:   UpdateCard,
				Fields: cardFields,
				Topic:  boardTopic,
				Body:   "{{.Member}} updated " + cardLink + ".",
				Variants: []hooks.Variant{
					{
						When: []string{"action.data.listBefore", "action.data.listAfter"},
						Fields: []hooks.FieldSpec{
							{Name: "Before", Path: "action.data.listBefore.name", Type: hooks.StringField},
							{Name: "After", Path: "action.data.listAfter.name", Type: hooks.StringField},
						},
						Body: "{{.Member}} moved " + cardLink + " from {{.Before}} to {{.After}}.",
					},
					{
						When: []string{"action.data.old.closed"},
						Fields: []hooks.FieldSpec{
							{Name: "Closed", Path: "action.data.card.closed", Type: hooks.BoolField},
						},
						Body: "{{.Member}} {{if .Closed}}archived{{else}}unarchived{{end}} " + cardLink + ".",
					},
				},
			},
			{
				Kind: CommentCard,
				Fields: append(cardFields[:len(cardFields):len(cardFields)],
					hooks.FieldSpec{Name: "Text", Path: "action.data.text", Type: hooks.StringField}),
				Topic: boardTopic,
				Body:  "{{.Member}} commented on " + cardLink + ":\n\n``` quote\n{{.Text}}\n```",
			},
			{
				Kind: AddMemberToCard,
				Fields: append(cardFields[:len(cardFields):len(cardFields)],
					hooks.FieldSpec{Name: "Added", Path: "member.fullName", Type: hooks.StringField}),
				Topic: boardTopic,
				Body:  "{{.Member}} added {{.Added}} to " + cardLink + ".",
			},
			{
				Kind: RemoveMemberFromCard,
				Fields: append(cardFields[:len(cardFields):len(cardFields)],
					hooks.FieldSpec{Name: "Removed", Path: "member.fullName", Type: hooks.StringField}),
				Topic: boardTopic,
				Body:  "{{.Member}} removed {{.Removed}} from " + cardLink + ".",
			},

			{Kind: "createCheckItem", Ignored: true},
			{Kind: "updateCheckItem", Ignored: true},
			{Kind: "updateCheckItemStateOnCard", Ignored: true},

			{
				Kind: AddMemberToBoard,
				Fields: append(boardFields[:len(boardFields):len(boardFields)],
					hooks.FieldSpec{Name: "Added", Path: "member.fullName", Type: hooks.StringField}),
				Topic: boardTopic,
				Body:  "{{.Member}} added {{.Added}} to {{.Board}}.",
			},
			{
				Kind: RemoveMemberFromBoard,
				Fields: append(boardFields[:len(boardFields):len(boardFields)],
					hooks.FieldSpec{Name: "Removed", Path: "member.fullName", Type: hooks.StringField}),
				Topic: boardTopic,
				Body:  "{{.Member}} removed {{.Removed}} from {{.Board}}.",
			},
			{
				Kind: CreateList,
				Fields: append(boardFields[:len(boardFields):len(boardFields)],
					hooks.FieldSpec{Name: "List", Path: "action.data.list.name", Type: hooks.StringField}),
				Topic: boardTopic,
				Body:  "{{.Member}} added the list {{.List}} to {{.Board}}.",
			},
			{
				Kind:   UpdateBoard,
				Fields: boardFields,
				Topic:  boardTopic,
				Body:   "{{.Member}} updated the board {{.Board}}.",
				Variants: []hooks.Variant{
					{
						When: []string{"action.data.old.name"},
						Body: "{{.Member}} renamed the board to {{.Board}}.",
					},
				},
			},
		},
	})
}
