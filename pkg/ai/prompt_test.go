package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchPrompt(t *testing.T) {
	prompt := BuildSearchPrompt("Beatles", 5)

	assert.Contains(t, prompt, `search query "Beatles"`)
	assert.Contains(t, prompt, "suggest exactly 5 songs")
	assert.Contains(t, prompt, "Return exactly 5 songs")
	assert.Contains(t, prompt, "relevance_score")
	assert.Contains(t, prompt, "valid JSON array")
}

func TestBuildSearchPromptIsDeterministic(t *testing.T) {
	assert.Equal(t, BuildSearchPrompt("queen", 10), BuildSearchPrompt("queen", 10))
	assert.NotEqual(t, BuildSearchPrompt("queen", 10), BuildSearchPrompt("queen", 11))
}

func TestCompleterFuncAdapts(t *testing.T) {
	var seen string
	var completer Completer = CompleterFunc(func(_ context.Context, prompt string) (string, error) {
		seen = prompt
		return "[]", nil
	})

	out, err := completer.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Equal(t, "hello", seen)
}
