package subtitle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDetectLanguage_MajorityVote(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\nこんにちは、世界!\n\n" +
		"2\n00:00:03,000 --> 00:00:04,000\nこんにちは、世界!\n\n" +
		"3\n00:00:05,000 --> 00:00:06,000\nHello, world!\n"

	doc, err := Parse(raw)
	require.NoError(t, err)

	lang := DetectLanguage(doc)
	require.Equal(t, language.Japanese, lang)
}
