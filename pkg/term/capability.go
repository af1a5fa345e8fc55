package term

import (
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

// Capability reads terms from cells of [tagcloud.TypeTerm] columns.
//
// Cells may hold a [Term], a *[Term], a [tagcloud.Term] or a string in the
// form accepted by [Parse]. Anything else is an extraction error, which makes
// the engine fall back to the cell's plain text.
type Capability struct{}

var _ tagcloud.TermCapability = Capability{}

// Supports reports whether t is the term column type.
func (Capability) Supports(t tagcloud.ColumnType) bool { return t == tagcloud.TypeTerm }

// Extract reads the term held by c.
func (Capability) Extract(c tagcloud.Cell) (tagcloud.Term, error) {
	switch v := c.Value().(type) {
	case Term:
		return checked(v)
	case *Term:
		if v == nil {
			return tagcloud.Term{}, errors.New(errors.ErrCodeInvalidInput, "nil term")
		}
		return checked(*v)
	case tagcloud.Term:
		if len(v.Words) == 0 {
			v.Words = Words(v.Text)
		}
		if len(v.Words) == 0 {
			return tagcloud.Term{}, errors.New(errors.ErrCodeInvalidInput, "empty term")
		}
		return v, nil
	case string:
		t, err := Parse(v)
		if err != nil {
			return tagcloud.Term{}, err
		}
		return t.Label(), nil
	default:
		return tagcloud.Term{}, errors.New(errors.ErrCodeUnsupported, "cell of type %T is not a term", v)
	}
}

func checked(t Term) (tagcloud.Term, error) {
	l := t.Label()
	if len(l.Words) == 0 {
		return tagcloud.Term{}, errors.New(errors.ErrCodeInvalidInput, "empty term")
	}
	return l, nil
}
