package model

import "errors"

// ErrUnrecognizedElement is reported by normalization when a value's type
// matches none of the sugar or canonical variants for its position. It
// signals a programming error in caller code; no partial tree is returned.
var ErrUnrecognizedElement = errors.New("unrecognized document element")

// ErrUnsupportedElement is reported by a renderer when it receives a
// canonical variant it has no handler for. It signals contract drift
// between the element model and that renderer.
var ErrUnsupportedElement = errors.New("unsupported document element")

// BlockElement is the interface for all structural (flow-level) elements.
// The set of implementations is closed: the canonical blocks, the block
// sugar values, and every inline element (which stands for a paragraph
// wrapping it).
type BlockElement interface {
	blockElement()
}

// InlineElement is the interface for all elements that render within
// running text. Every inline element may also stand in block position and
// serve as a table cell.
type InlineElement interface {
	BlockElement
	Cell

	// PlainString returns the flattened, styling-stripped text content.
	PlainString() string

	inlineElement()
}

// Cell is a single slot of an [ElementaryTable] row: either an inline
// element or a span marker.
type Cell interface {
	cellElement()
}

// Plain is a bare string. In inline position it is sugar for [Text]; in
// block position it is sugar for a [Paragraph]; as a cell it is sugar for
// a [Text] cell.
type Plain string

func (p Plain) blockElement()       {}
func (p Plain) inlineElement()      {}
func (p Plain) cellElement()        {}
func (p Plain) PlainString() string { return string(p) }

// Blocks is a bare ordered list of blocks, sugar for [Sequence].
type Blocks []BlockElement

func (b Blocks) blockElement() {}

// Inlines is a bare ordered list of inline content, sugar for
// [InlineSequence].
type Inlines []InlineElement

func (i Inlines) blockElement()  {}
func (i Inlines) inlineElement() {}
func (i Inlines) cellElement()   {}

func (i Inlines) PlainString() string {
	var s string
	for _, item := range i {
		if item != nil {
			s += item.PlainString()
		}
	}
	return s
}

// Definitions is a bare ordered list of term/definition pairs, sugar for
// [DefinitionList]. Go maps do not preserve insertion order, so the ordered
// mapping is spelled as a pair slice.
type Definitions []DefinitionItem

func (d Definitions) blockElement() {}
