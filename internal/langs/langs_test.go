package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize(" FR ")
	require.NoError(t, err)
	assert.Equal(t, "fr", got)

	got, err = Normalize("zh-hans")
	require.NoError(t, err)
	assert.Equal(t, "zh-Hans", got)

	_, err = Normalize("not-a-language-code")
	assert.Error(t, err)
}

func TestNormalizeAll_DropsDuplicates(t *testing.T) {
	got, err := NormalizeAll([]string{"fr", "de", "FR", "ja"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fr", "de", "ja"}, got)
}

func TestName(t *testing.T) {
	assert.Equal(t, "French", Name("fr"))
	assert.Equal(t, "Japanese", Name("ja"))
	assert.Equal(t, "German", Name("de"))
	// Unknown codes fall back to the code itself.
	assert.Equal(t, "??", Name("??"))
}
