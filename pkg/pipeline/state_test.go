package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMergesOnlySetFields(t *testing.T) {
	state := &State{Question: "q", SessionID: "s"}

	require.NoError(t, state.apply(StageRetrieve, &Update{Context: ptr("ctx")}))
	require.NoError(t, state.apply(StageGenerate, &Update{Answer: ptr("ans")}))

	assert.Equal(t, "ctx", state.ContextText())
	assert.Equal(t, "ans", state.AnswerText())
	assert.Nil(t, state.Summary)
	assert.Nil(t, state.FollowUps)
}

func TestApplyRejectsRewrite(t *testing.T) {
	state := &State{Question: "q", SessionID: "s"}

	require.NoError(t, state.apply(StageRetrieve, &Update{Context: ptr("first")}))
	err := state.apply(StageGenerate, &Update{Context: ptr("second")})

	require.Error(t, err)
	assert.Equal(t, "first", state.ContextText())
}

func TestApplyNilUpdateIsNoop(t *testing.T) {
	state := &State{Question: "q", SessionID: "s"}
	require.NoError(t, state.apply(StageRetrieve, nil))
	assert.Nil(t, state.Context)
}

func TestEmptyStringIsPresence(t *testing.T) {
	state := &State{Question: "q", SessionID: "s"}

	// An empty context is a written value, not absence: a later write
	// must still be rejected.
	require.NoError(t, state.apply(StageRetrieve, &Update{Context: ptr("")}))
	assert.Error(t, state.apply(StageGenerate, &Update{Context: ptr("real")}))
}

func TestFollowUpTextRoundTrip(t *testing.T) {
	state := &State{FollowUps: []string{"first?", "second?"}}
	assert.Equal(t, "first?\nsecond?", state.FollowUpText())

	empty := &State{}
	assert.Equal(t, "", empty.FollowUpText())
}
