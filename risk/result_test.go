package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionForScore(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		score  int
		action Action
	}{
		{score: 0, action: ActionApprove},
		{score: 49, action: ActionApprove},
		{score: 50, action: ActionManual},
		{score: 79, action: ActionManual},
		{score: 80, action: ActionReject},
		{score: 90, action: ActionReject},
		{score: 100, action: ActionReject},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.action, ActionForScore(fix.score), "score=%d", fix.score)
	}
}

func TestParseAction(t *testing.T) {
	assert := assert.New(t)

	for _, raw := range []string{"approve", "manual", "reject"} {
		a, err := ParseAction(raw)
		assert.NoError(err)
		assert.Equal(raw, a.String())
	}

	_, err := ParseAction("block")
	assert.Error(err)
	_, err = ParseAction("")
	assert.Error(err)
}

func TestActionStatus(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(StatusApproved, ActionApprove.Status())
	assert.Equal(StatusRejected, ActionReject.Status())
	assert.Equal(StatusPending, ActionManual.Status())
}
