// Package script reads speaker structure out of role-play scripts written as
// "**Name:** dialogue" lines with "(stage directions)" between them.
package script

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	speakerLine = regexp.MustCompile(`^\s*\**(.+?)\**\s*:`)
	boldSpeaker = regexp.MustCompile(`\*\*(.*?):\*\*`)
	lineBreaks  = regexp.MustCompile(`\r\n|\n|\r`)
)

// DialogueLines returns the non-blank lines that are not stage directions.
func DialogueLines(script string) []string {
	return lo.Filter(strings.Split(script, "\n"), func(line string, _ int) bool {
		trimmed := strings.TrimSpace(line)
		return trimmed != "" && !strings.HasPrefix(trimmed, "(")
	})
}

// Speakers lists the distinct speaker names in first-seen order.
func Speakers(script string) []string {
	names := lo.FilterMap(DialogueLines(script), func(line string, _ int) (string, bool) {
		m := speakerLine.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		name := strings.TrimSpace(m[1])
		return name, name != ""
	})
	return lo.Uniq(names)
}

// MultiSpeakerText normalises line endings and strips the bold markers from speaker prefixes so
// the speech model sees plain "Name: dialogue" turns.
func MultiSpeakerText(script string) string {
	return boldSpeaker.ReplaceAllString(lineBreaks.ReplaceAllString(script, "\n"), "$1:")
}

// SingleSpeakerText flattens the script into one paragraph for a single narrator voice.
func SingleSpeakerText(script string) string {
	return lineBreaks.ReplaceAllString(boldSpeaker.ReplaceAllString(script, "$1:"), " ")
}

// Assignment pairs a speaker with a prebuilt voice.
type Assignment struct {
	Speaker string `json:"speaker"`
	Voice   string `json:"voice"`
}

// AssignVoices gives each speaker a voice, cycling through voices in order.
func AssignVoices(speakers []string, voices []string) []Assignment {
	if len(voices) == 0 {
		return nil
	}
	return lo.Map(speakers, func(s string, i int) Assignment {
		return Assignment{Speaker: s, Voice: voices[i%len(voices)]}
	})
}
