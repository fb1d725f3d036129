package ics

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Maximum lengths of the free text properties, counted in user visible
// characters (extended grapheme clusters).
const (
	MaxSummaryLength     = 255
	MaxLocationLength    = 255
	MaxDescriptionLength = 3000
)

// textLength counts characters the way a user sees them: a flag, an emoji
// ZWJ sequence or a letter with combining accents is one character.
func textLength(s string) int {
	return uniseg.GraphemeClusterCount(norm.NFC.String(s))
}

type textLimit struct {
	max int
	err error
}

var textLimits = map[ComponentProperty]textLimit{
	ComponentPropertySummary:     {MaxSummaryLength, ErrSummaryTooLong},
	ComponentPropertyLocation:    {MaxLocationLength, ErrLocationTooLong},
	ComponentPropertyDescription: {MaxDescriptionLength, ErrDescriptionTooLong},
}

func checkTextLength(property ComponentProperty, s string) error {
	limit, ok := textLimits[property]
	if !ok {
		return nil
	}
	if n := textLength(s); n > limit.max {
		return newWriteError(property, limit.err, "%d characters, at most %d allowed", n, limit.max)
	}
	return nil
}
