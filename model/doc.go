// Package model provides the abstract document tree that all renderers
// consume.
//
// This package defines the user-facing data structures that represent the
// semantic structure of a document. Callers assemble a [Document] from block
// and inline elements, normalize it once, and hand the canonical tree to any
// number of renderers.
//
// # Element universes
//
// Content is split into two disjoint universes. Block elements carry
// structure:
//
//   - [Paragraph] - a standalone unit of running text
//   - [Section] - a titled subtree; nesting depth drives heading levels
//   - [Sequence] - ordered juxtaposition of blocks
//   - [UnorderedList] - bulleted list whose items may be any block
//   - [DefinitionList] - ordered term/definition pairs
//   - [Table] - header and body grids with row/column spanning
//   - [Image] - embedded picture with a caption
//
// Inline elements carry text and implement PlainString:
//
//   - [Text] - a text leaf
//   - [InlineSequence] - ordered concatenation of inline content
//   - [Strong] - emphasis wrapper
//   - [Attachment] - a link to embedded binary content
//
// # Sugar
//
// Constructors accept shorthand values anywhere an element is expected:
// [Plain] stands for a text leaf (or a paragraph in block position),
// [Blocks] for a [Sequence], [Inlines] for an [InlineSequence], and
// [Definitions] for a [DefinitionList]. Any inline element may stand in
// block position and is read as a paragraph wrapping it.
//
// # Normalization
//
// [Document.Normalized] rewrites the tree into canonical form: all sugar is
// eliminated, nested sequences are flattened, empty sequences are spliced
// away and single-item sequences are unwrapped. The input tree is never
// mutated. Normalization is idempotent: normalizing a canonical tree yields
// a structurally identical tree. Renderers may therefore assume the absence
// of sugar and never collapse sequences themselves.
package model
