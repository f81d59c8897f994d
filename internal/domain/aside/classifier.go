// Package aside detects tangential remarks in conversational text and
// proposes whether each should become a deferred project task or a
// someday item.
package aside

import (
	"regexp"
	"strings"
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Checked in order; the first hit wins.
var triggerPhrases = compile(
	`\balso\b`,
	`\boh\b`,
	`\bby the way\b`,
	`\breminds me of\b`,
	`\bspeaking of\b`,
	`\bshould look into\b`,
	`\bcould explore\b`,
	`\bmight want to\b`,
	`\bwe should\b`,
	`\bon a side note\b`,
	`\btangentially\b`,
	`\bon a related note\b`,
	`\bwhile we're at it\b`,
	`\bwhile i'm thinking\b`,
	// Colon forms match at the colon with no trailing \b, so "idea:x" counts.
	`\bidea:`,
	`\bthought:`,
)

// A match suppresses the sentence even when a trigger also matches.
var ignorePatterns = compile(
	`\balso\b.*?(but|however|although)`,
	`\bspeaking of.*?we were\b`,
)

var immediateCues = compile(
	`\bneed to\b`,
	`\bmust\b`,
	`\bhave to\b`,
	`\bstart\b`,
	`\bbegin\b`,
)

var projectRef = regexp.MustCompile(`\bP\d+\b`)

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// Detect returns the asides in text in sentence order, at most one per sentence.
func Detect(text string) []Aside {
	var asides []Aside
	for _, sentence := range Sentences(text) {
		if matchesAny(ignorePatterns, sentence) {
			continue
		}
		for _, trigger := range triggerPhrases {
			m := trigger.FindString(sentence)
			if m == "" {
				continue
			}
			asides = append(asides, Aside{
				Text:    sentence,
				Type:    Classify(sentence),
				Trigger: strings.ToLower(m),
			})
			break
		}
	}
	return asides
}

// Sentences splits text on terminal punctuation, dropping empty fragments.
func Sentences(text string) []string {
	var out []string
	for _, part := range sentenceBreak.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Classify infers the aside type of a single sentence.
func Classify(sentence string) Type {
	if projectRef.MatchString(sentence) || matchesAny(immediateCues, sentence) {
		return TypeDeferProject
	}
	return TypeLaterStandalone
}

// ProjectRef returns the first project identifier mentioned in sentence.
func ProjectRef(sentence string) string {
	return projectRef.FindString(sentence)
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
