package prompt_test

import (
	"testing"

	"github.com/getcodekit/codekit/pkg/prompt"
	"github.com/getcodekit/codekit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonInteractiveIsDeterministic(t *testing.T) {
	yes := prompt.NewNonInteractive(true)
	for i := 0; i < 3; i++ {
		ok, err := yes.Confirm("overwrite?", false)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	no := prompt.NewNonInteractive(false)
	ok, err := no.Confirm("overwrite?", true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNonInteractiveChoosePicksFirst(t *testing.T) {
	p := prompt.NewNonInteractive(true)

	choice, err := p.Choose("resolve conflict", []string{"keep", "overwrite"})
	require.NoError(t, err)
	assert.Equal(t, "keep", choice)

	empty, err := p.Choose("resolve conflict", nil)
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestScriptedReplaysThenCancels(t *testing.T) {
	p := &prompt.Scripted{Confirms: []bool{true, false}}

	ok, err := p.Confirm("first", false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm("second", false)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = p.Confirm("third", false)
	assert.ErrorIs(t, err, types.ErrPromptCancelled)
}
