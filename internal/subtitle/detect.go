package subtitle

import (
	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// DetectLanguage guesses the document language by majority vote over the
// per-line detections. Short cue lines confuse single-line detection, so
// the vote smooths it out.
func DetectLanguage(d *Document) language.Tag {
	lines := d.ExtractText()
	if len(lines) == 0 {
		return language.Und
	}

	votes := make(map[string]int)
	for _, line := range lines {
		iso := whatlanggo.DetectLang(line).Iso6391()
		votes[iso]++
	}

	var topLang string
	var topCount int
	for lang, count := range votes {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}

	if topLang == "" {
		return language.Und
	}
	return language.Make(topLang)
}
