package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	digest, err := HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", digest)

	assert.True(t, CheckPassword("supersecret", digest))
	assert.False(t, CheckPassword("wrong", digest))
	assert.False(t, CheckPassword("supersecret", "not-a-digest"))
}
