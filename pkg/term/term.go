// Package term provides a structured term type for tag clouds and the
// [tagcloud.TermCapability] that reads it from table cells.
//
// A term is display text plus a set of tags, such as part-of-speech or entity
// types. In text form a term is written as the text followed by an optional
// bracketed tag list:
//
//	go
//	run[VB]
//	new york[NNP,LOC]
//
// Words are split on whitespace and normalised to Unicode NFC so that
// visually identical words from different sources compare equal.
package term

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

// Term is a text with its tags.
type Term struct {
	Text string   `json:"text" bson:"text"`
	Tags []string `json:"tags,omitempty" bson:"tags,omitempty"`
}

// New returns a term with normalised text and trimmed tags.
func New(text string, tags ...string) Term {
	t := Term{Text: strings.Join(Words(text), " ")}
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			t.Tags = append(t.Tags, tag)
		}
	}
	return t
}

// Words splits text on whitespace and NFC-normalises each word.
func Words(text string) []string {
	words := strings.Fields(norm.NFC.String(text))
	if len(words) == 0 {
		return nil
	}
	return words
}

// String renders the term in the text[TAG,...] form accepted by [Parse].
func (t Term) String() string {
	if len(t.Tags) == 0 {
		return t.Text
	}
	return t.Text + "[" + strings.Join(t.Tags, ",") + "]"
}

// Parse reads a term in text[TAG,...] form. Empty tags are dropped. The text
// must be non-empty and the tag list, if any, must close the string.
func Parse(s string) (Term, error) {
	s = strings.TrimSpace(s)
	text, tagList := s, ""
	if open := strings.IndexByte(s, '['); open >= 0 {
		if !strings.HasSuffix(s, "]") {
			return Term{}, errors.New(errors.ErrCodeInvalidFormat, "term %q: unterminated tag list", s)
		}
		text, tagList = s[:open], s[open+1:len(s)-1]
		if strings.ContainsAny(tagList, "[]") {
			return Term{}, errors.New(errors.ErrCodeInvalidFormat, "term %q: nested brackets", s)
		}
	} else if strings.IndexByte(s, ']') >= 0 {
		return Term{}, errors.New(errors.ErrCodeInvalidFormat, "term %q: unbalanced bracket", s)
	}

	var tags []string
	if tagList != "" {
		tags = strings.Split(tagList, ",")
	}
	t := New(text, tags...)
	if t.Text == "" {
		return Term{}, errors.New(errors.ErrCodeInvalidFormat, "term %q: empty text", s)
	}
	return t, nil
}

// Label converts t to the engine's term representation.
func (t Term) Label() tagcloud.Term {
	return tagcloud.Term{Text: t.Text, Words: Words(t.Text), Tags: t.Tags}
}
