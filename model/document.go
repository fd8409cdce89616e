package model

import (
	"time"

	"golang.org/x/text/language"
)

// Document is the root entity handed to renderers.
//
// CreationDate is the only time source any renderer may consult; rendering
// the same document twice yields byte-identical output regardless of
// wall-clock time. The date must carry an explicit location.
type Document struct {
	LanguageCode  string
	Title         InlineElement
	Subject       InlineElement
	Author        InlineElement
	Creator       InlineElement
	CreationDate  time.Time
	CreationPlace InlineElement
	Body          BlockElement
}

// CreationPlaceAndDate returns the plain text of the creation place joined
// with the date component (no time of day) of the creation date.
func (d Document) CreationPlaceAndDate() string {
	place := ""
	if d.CreationPlace != nil {
		place = d.CreationPlace.PlainString()
	}
	return place + ", " + d.CreationDate.Format("2006-01-02")
}

// LanguageTag parses LanguageCode as a BCP 47 tag. The second result is
// false when the code does not parse; renderers still emit the raw code in
// that case, callers may surface a warning.
func (d Document) LanguageTag() (language.Tag, bool) {
	tag, err := language.Parse(d.LanguageCode)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// Normalized returns a copy of the document whose metadata fields and body
// contain only canonical element variants. The receiver is not modified, so
// callers may keep references to pre-normalization fragments.
func (d Document) Normalized() (Document, error) {
	out := d
	var err error
	if out.Title, err = NormalizeInline(d.Title); err != nil {
		return Document{}, err
	}
	if out.Subject, err = NormalizeInline(d.Subject); err != nil {
		return Document{}, err
	}
	if out.Author, err = NormalizeInline(d.Author); err != nil {
		return Document{}, err
	}
	if out.Creator, err = NormalizeInline(d.Creator); err != nil {
		return Document{}, err
	}
	if out.CreationPlace, err = NormalizeInline(d.CreationPlace); err != nil {
		return Document{}, err
	}
	if out.Body, err = NormalizeBlock(d.Body); err != nil {
		return Document{}, err
	}
	return out, nil
}
