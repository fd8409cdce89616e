package model

import "io"

// Paragraph is a standalone unit of running text. An empty-text paragraph
// is still a paragraph: it occupies a distinguishable unit of output and is
// never dropped by normalization.
type Paragraph struct {
	Text InlineElement
}

func (p Paragraph) blockElement() {}

// Section is a titled subtree. Sections nest without bound; each level of
// nesting renders one heading level deeper.
type Section struct {
	Title InlineElement
	Body  BlockElement
}

func (s Section) blockElement() {}

// Sequence is an order-significant juxtaposition of blocks. Normalization
// flattens nested sequences, splices away empty ones and unwraps a
// single-item sequence to its sole item.
type Sequence struct {
	Items []BlockElement
}

func (s Sequence) blockElement() {}

// UnorderedList is a bulleted list. An item may be any block, including a
// nested list or a multi-paragraph sequence; renderers keep follow-on
// blocks under the same bullet.
type UnorderedList struct {
	Items []BlockElement
}

func (l UnorderedList) blockElement() {}

// DefinitionItem is one term/definition pair of a [DefinitionList].
type DefinitionItem struct {
	Term       InlineElement
	Definition BlockElement
}

// DefinitionList renders as repeated term/definition pairs in insertion
// order. It is semantically an unordered list of Sequence(Paragraph(term),
// definition) and backends may render it that way.
type DefinitionList struct {
	Items []DefinitionItem
}

func (l DefinitionList) blockElement() {}

// ImageFormat identifies the encoding of an [Image] payload.
type ImageFormat int

const (
	ImageFormatUnknown ImageFormat = iota
	ImageFormatPNG
	ImageFormatJPEG
	ImageFormatGIF
)

func (f ImageFormat) String() string {
	switch f {
	case ImageFormatPNG:
		return "png"
	case ImageFormatJPEG:
		return "jpeg"
	case ImageFormatGIF:
		return "gif"
	default:
		return "unknown"
	}
}

// MediaType returns the MIME type for the format, or an empty string for
// ImageFormatUnknown.
func (f ImageFormat) MediaType() string {
	switch f {
	case ImageFormatPNG:
		return "image/png"
	case ImageFormatJPEG:
		return "image/jpeg"
	case ImageFormatGIF:
		return "image/gif"
	default:
		return ""
	}
}

// ParseImageFormat maps a format name to an [ImageFormat]. Both "jpg" and
// "jpeg" name the JPEG format.
func ParseImageFormat(name string) (ImageFormat, bool) {
	switch name {
	case "png":
		return ImageFormatPNG, true
	case "jpg", "jpeg":
		return ImageFormatJPEG, true
	case "gif":
		return ImageFormatGIF, true
	default:
		return ImageFormatUnknown, false
	}
}

// Image embeds a picture with a caption. The payload reader must be
// seekable; renderers rewind it before reading.
type Image struct {
	Content io.ReadSeeker
	Format  ImageFormat
	Caption InlineElement
}

func (i Image) blockElement() {}
