package trello_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaveworks/webhook-relay/hooks"
	"github.com/weaveworks/webhook-relay/sources/trello"
)

func cardPayload(actionType, extra string) []byte {
	if extra != "" {
		extra = ", " + extra
	}
	return []byte(`{
		"action": {
			"type": "` + actionType + `",
			"memberCreator": {"fullName": "Pat"},
			"data": {
				"board": {"name": "Roadmap"},
				"card": {"name": "Ship it", "shortLink": "cAbC123"}` + extra + `
			}
		}
	}`)
}

func TestCreateCard(t *testing.T) {
	src := trello.New()

	d := src.Handle(cardPayload("createCard", ""), hooks.Options{})
	require.Equal(t, hooks.Forward, d.Outcome)
	assert.Equal(t, "Roadmap", d.Message.Topic)
	assert.Equal(t, "Pat created [Ship it](https://trello.com/c/cAbC123).", d.Message.Body)
	assert.Equal(t, "createCard", d.Message.Label)
}

func TestCommentCard(t *testing.T) {
	src := trello.New()

	d := src.Handle(cardPayload("commentCard", `"text": "Looks good"`), hooks.Options{})
	require.Equal(t, hooks.Forward, d.Outcome)
	assert.Contains(t, d.Message.Body, "commented on [Ship it]")
	assert.Contains(t, d.Message.Body, "``` quote\nLooks good\n```")
}

func TestUpdateCardVariants(t *testing.T) {
	src := trello.New()

	// list move
	d := src.Handle(cardPayload("updateCard",
		`"listBefore": {"name": "Doing"}, "listAfter": {"name": "Done"}`), hooks.Options{})
	require.Equal(t, hooks.Forward, d.Outcome)
	assert.Equal(t, "Pat moved [Ship it](https://trello.com/c/cAbC123) from Doing to Done.", d.Message.Body)

	// archive toggle
	archived := []byte(`{
		"action": {
			"type": "updateCard",
			"memberCreator": {"fullName": "Pat"},
			"data": {
				"board": {"name": "Roadmap"},
				"card": {"name": "Ship it", "shortLink": "cAbC123", "closed": true},
				"old": {"closed": false}
			}
		}
	}`)
	d = src.Handle(archived, hooks.Options{})
	require.Equal(t, hooks.Forward, d.Outcome)
	assert.Contains(t, d.Message.Body, "archived [Ship it]")

	// anything else falls back to the generic line
	d = src.Handle(cardPayload("updateCard", `"old": {"desc": "old text"}`), hooks.Options{})
	require.Equal(t, hooks.Forward, d.Outcome)
	assert.Equal(t, "Pat updated [Ship it](https://trello.com/c/cAbC123).", d.Message.Body)
}

func TestCheckItemActionsAreIgnored(t *testing.T) {
	src := trello.New()

	for _, actionType := range []string{"createCheckItem", "updateCheckItem", "updateCheckItemStateOnCard"} {
		d := src.Handle(cardPayload(actionType, ""), hooks.Options{})
		assert.Equal(t, hooks.Ignore, d.Outcome, actionType)
	}
}

func TestBoardActions(t *testing.T) {
	src := trello.New()

	addMember := []byte(`{
		"action": {
			"type": "addMemberToBoard",
			"memberCreator": {"fullName": "Pat"},
			"data": {"board": {"name": "Roadmap"}}
		},
		"member": {"fullName": "Sam"}
	}`)
	d := src.Handle(addMember, hooks.Options{})
	require.Equal(t, hooks.Forward, d.Outcome)
	assert.Equal(t, "Roadmap", d.Message.Topic)
	assert.Equal(t, "Pat added Sam to Roadmap.", d.Message.Body)

	createList := []byte(`{
		"action": {
			"type": "createList",
			"memberCreator": {"fullName": "Pat"},
			"data": {"board": {"name": "Roadmap"}, "list": {"name": "Blocked"}}
		}
	}`)
	d = src.Handle(createList, hooks.Options{})
	require.Equal(t, hooks.Forward, d.Outcome)
	assert.Equal(t, "Pat added the list Blocked to Roadmap.", d.Message.Body)

	renameBoard := []byte(`{
		"action": {
			"type": "updateBoard",
			"memberCreator": {"fullName": "Pat"},
			"data": {"board": {"name": "Roadmap 2026"}, "old": {"name": "Roadmap"}}
		}
	}`)
	d = src.Handle(renameBoard, hooks.Options{})
	require.Equal(t, hooks.Forward, d.Outcome)
	assert.Equal(t, "Pat renamed the board to Roadmap 2026.", d.Message.Body)
}

func TestUnknownActionTypeRejects(t *testing.T) {
	src := trello.New()

	d := src.Handle(cardPayload("voteOnCard", ""), hooks.Options{})
	require.Equal(t, hooks.Reject, d.Outcome)
	assert.Contains(t, d.Reason.Error(), "voteOnCard")
}
