package model

import "io"

// Text is the leaf inline element.
type Text struct {
	Content string
}

func (t Text) blockElement()       {}
func (t Text) inlineElement()      {}
func (t Text) cellElement()        {}
func (t Text) PlainString() string { return t.Content }

// InlineSequence is an order-significant concatenation of inline content.
type InlineSequence struct {
	Items []InlineElement
}

func (s InlineSequence) blockElement()  {}
func (s InlineSequence) inlineElement() {}
func (s InlineSequence) cellElement()   {}

func (s InlineSequence) PlainString() string {
	var out string
	for _, item := range s.Items {
		if item != nil {
			out += item.PlainString()
		}
	}
	return out
}

// Strong wraps inline content with emphasis.
type Strong struct {
	Content InlineElement
}

func (s Strong) blockElement()  {}
func (s Strong) inlineElement() {}
func (s Strong) cellElement()   {}

func (s Strong) PlainString() string {
	if s.Content == nil {
		return ""
	}
	return s.Content.PlainString()
}

// Attachment is an inline link to embedded binary content. Textually the
// attachment is represented only by its label. The payload reader must be
// seekable: every renderer rewinds it before reading, so one tree can be
// rendered by several backends against the same value.
type Attachment struct {
	Content  io.ReadSeeker
	Basename string
	Label    InlineElement
}

func (a Attachment) blockElement()  {}
func (a Attachment) inlineElement() {}
func (a Attachment) cellElement()   {}

func (a Attachment) PlainString() string {
	if a.Label == nil {
		return ""
	}
	return a.Label.PlainString()
}
