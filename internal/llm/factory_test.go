package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_DeterministicReturnsNilDrafter(t *testing.T) {
	d, err := Build("deterministic", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = Build("", "")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestBuild_MockReturnsAcceptingMock(t *testing.T) {
	d, err := Build("mock", "")
	require.NoError(t, err)
	require.NotNil(t, d)
	_, ok := d.(*Mock)
	assert.True(t, ok)
}

func TestBuild_OpenAIWithoutAPIKeyErrors(t *testing.T) {
	_, err := Build("openai", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key is required")
}

func TestBuild_OpenAIWithAPIKeyReturnsAnthropic(t *testing.T) {
	d, err := Build("openai", "sk-test")
	require.NoError(t, err)
	require.NotNil(t, d)
	_, ok := d.(*Anthropic)
	assert.True(t, ok)
}

func TestBuild_UnknownProviderErrors(t *testing.T) {
	_, err := Build("not-a-real-provider", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
