// Package yamldoc loads document descriptions written in YAML.
//
// The top level is a mapping with the document metadata (title, subject,
// author, creator, language, date, place) and a body. Body nodes map onto
// the document model directly: scalars are paragraphs, sequences are
// block sequences and mappings are definition lists, preserving key order.
// Local tags select the remaining element kinds:
//
//	!section  mapping with title and body
//	!list     sequence of items
//	!strong   emphasized inline content
//	!table    mapping with head and body rows; !colspan and !rowspan
//	          cells extend the cell to their left or above
//	!image    mapping with path and caption
//	!attach   mapping with path and optional name and label
//
// File paths in !image and !attach nodes are resolved against the
// directory passed to Load.
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/scribe/format"
	"github.com/tsawler/scribe/model"
)

// ErrInvalidDocument reports a YAML document that does not describe a
// valid document tree.
var ErrInvalidDocument = errors.New("invalid document description")

// Load parses a YAML document description from r. dir is the base
// directory for !image and !attach file paths.
func Load(r io.Reader, dir string) (*model.Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("yamldoc: parsing: %w", err)
	}
	l := &loader{dir: dir}
	return l.document(&root)
}

// LoadFile parses the YAML document at path, resolving referenced files
// against its directory.
func LoadFile(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("yamldoc: opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, filepath.Dir(path))
}

type loader struct {
	dir string
}

func (l *loader) document(n *yaml.Node) (*model.Document, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yamldoc: line %d: top level must be a mapping: %w", n.Line, ErrInvalidDocument)
	}
	doc := &model.Document{}
	var err error
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "language":
			doc.LanguageCode = val.Value
		case "title":
			doc.Title, err = l.inline(val)
		case "subject":
			doc.Subject, err = l.inline(val)
		case "author":
			doc.Author, err = l.inline(val)
		case "creator":
			doc.Creator, err = l.inline(val)
		case "place":
			doc.CreationPlace, err = l.inline(val)
		case "date":
			doc.CreationDate, err = parseDate(val)
		case "body":
			doc.Body, err = l.block(val)
		default:
			return nil, fmt.Errorf("yamldoc: line %d: unknown document key %q: %w", key.Line, key.Value, ErrInvalidDocument)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func parseDate(n *yaml.Node) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, n.Value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("yamldoc: line %d: date %q must be YYYY-MM-DD or RFC 3339: %w", n.Line, n.Value, ErrInvalidDocument)
}

func resolve(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		return resolve(n.Content[0])
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return resolve(n.Alias)
	}
	return n
}

// block decodes a node in block position.
func (l *loader) block(n *yaml.Node) (model.BlockElement, error) {
	n = resolve(n)
	switch n.Tag {
	case "!section":
		return l.section(n)
	case "!list":
		return l.list(n)
	case "!table":
		return l.table(n)
	case "!image":
		return l.image(n)
	case "!strong", "!attach":
		return l.inline(n)
	}
	if localTag(n) {
		return nil, fmt.Errorf("yamldoc: line %d: unknown tag %s: %w", n.Line, n.Tag, ErrInvalidDocument)
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return model.Plain(n.Value), nil
	case yaml.SequenceNode:
		items := make(model.Blocks, 0, len(n.Content))
		for _, item := range n.Content {
			block, err := l.block(item)
			if err != nil {
				return nil, err
			}
			items = append(items, block)
		}
		return items, nil
	case yaml.MappingNode:
		items := make(model.Definitions, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			term, err := l.inline(n.Content[i])
			if err != nil {
				return nil, err
			}
			definition, err := l.block(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			items = append(items, model.DefinitionItem{Term: term, Definition: definition})
		}
		return items, nil
	default:
		return nil, fmt.Errorf("yamldoc: line %d: unexpected node: %w", n.Line, ErrInvalidDocument)
	}
}

// inline decodes a node in inline position.
func (l *loader) inline(n *yaml.Node) (model.InlineElement, error) {
	n = resolve(n)
	switch n.Tag {
	case "!strong":
		content, err := l.inlineContent(n)
		if err != nil {
			return nil, err
		}
		return model.Strong{Content: content}, nil
	case "!attach":
		return l.attachment(n)
	}
	if localTag(n) {
		return nil, fmt.Errorf("yamldoc: line %d: tag %s not allowed in inline position: %w", n.Line, n.Tag, ErrInvalidDocument)
	}
	return l.inlineContent(n)
}

func (l *loader) inlineContent(n *yaml.Node) (model.InlineElement, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return model.Plain(n.Value), nil
	case yaml.SequenceNode:
		items := make(model.Inlines, 0, len(n.Content))
		for _, item := range n.Content {
			inline, err := l.inline(item)
			if err != nil {
				return nil, err
			}
			items = append(items, inline)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("yamldoc: line %d: expected inline content: %w", n.Line, ErrInvalidDocument)
	}
}

func (l *loader) section(n *yaml.Node) (model.BlockElement, error) {
	var s model.Section
	var haveTitle, haveBody bool
	err := l.eachPair(n, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "title":
			s.Title, err = l.inline(val)
			haveTitle = true
		case "body":
			s.Body, err = l.block(val)
			haveBody = true
		default:
			return fmt.Errorf("yamldoc: line %d: unknown section key %q: %w", val.Line, key, ErrInvalidDocument)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !haveTitle || !haveBody {
		return nil, fmt.Errorf("yamldoc: line %d: section needs title and body: %w", n.Line, ErrInvalidDocument)
	}
	return s, nil
}

func (l *loader) list(n *yaml.Node) (model.BlockElement, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("yamldoc: line %d: !list must be a sequence: %w", n.Line, ErrInvalidDocument)
	}
	list := model.UnorderedList{}
	for _, item := range n.Content {
		block, err := l.block(item)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, block)
	}
	return list, nil
}

func (l *loader) table(n *yaml.Node) (model.BlockElement, error) {
	var t model.Table
	err := l.eachPair(n, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "head":
			t.Head, err = l.elementaryTable(val)
		case "body":
			t.Body, err = l.elementaryTable(val)
		default:
			return fmt.Errorf("yamldoc: line %d: unknown table key %q: %w", val.Line, key, ErrInvalidDocument)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (l *loader) elementaryTable(n *yaml.Node) (model.ElementaryTable, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return model.ElementaryTable{}, fmt.Errorf("yamldoc: line %d: table rows must be a sequence: %w", n.Line, ErrInvalidDocument)
	}
	var t model.ElementaryTable
	for _, rowNode := range n.Content {
		rowNode = resolve(rowNode)
		if rowNode.Kind != yaml.SequenceNode {
			return model.ElementaryTable{}, fmt.Errorf("yamldoc: line %d: table row must be a sequence: %w", rowNode.Line, ErrInvalidDocument)
		}
		var row []model.Cell
		for _, cellNode := range rowNode.Content {
			cell, err := l.cell(cellNode)
			if err != nil {
				return model.ElementaryTable{}, err
			}
			row = append(row, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (l *loader) cell(n *yaml.Node) (model.Cell, error) {
	n = resolve(n)
	switch n.Tag {
	case "!colspan":
		return model.ColumnSpan, nil
	case "!rowspan":
		return model.RowSpan, nil
	}
	return l.inline(n)
}

func (l *loader) image(n *yaml.Node) (model.BlockElement, error) {
	var img model.Image
	var path string
	err := l.eachPair(n, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "path":
			path = val.Value
		case "caption":
			img.Caption, err = l.inline(val)
		default:
			return fmt.Errorf("yamldoc: line %d: unknown image key %q: %w", val.Line, key, ErrInvalidDocument)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("yamldoc: line %d: image needs a path: %w", n.Line, ErrInvalidDocument)
	}
	img.Format = format.Detect(path)
	if img.Format == model.ImageFormatUnknown {
		return nil, fmt.Errorf("yamldoc: line %d: cannot tell image format of %s: %w", n.Line, path, ErrInvalidDocument)
	}
	data, err := os.ReadFile(filepath.Join(l.dir, path))
	if err != nil {
		return nil, fmt.Errorf("yamldoc: reading image: %w", err)
	}
	img.Content = bytes.NewReader(data)
	if img.Caption == nil {
		img.Caption = model.Plain("")
	}
	return img, nil
}

func (l *loader) attachment(n *yaml.Node) (model.InlineElement, error) {
	var att model.Attachment
	var path string
	err := l.eachPair(n, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "path":
			path = val.Value
		case "name":
			att.Basename = val.Value
		case "label":
			att.Label, err = l.inline(val)
		default:
			return fmt.Errorf("yamldoc: line %d: unknown attachment key %q: %w", val.Line, key, ErrInvalidDocument)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("yamldoc: line %d: attachment needs a path: %w", n.Line, ErrInvalidDocument)
	}
	data, err := os.ReadFile(filepath.Join(l.dir, path))
	if err != nil {
		return nil, fmt.Errorf("yamldoc: reading attachment: %w", err)
	}
	att.Content = bytes.NewReader(data)
	if att.Basename == "" {
		att.Basename = filepath.Base(path)
	}
	if att.Label == nil {
		att.Label = model.Plain(att.Basename)
	}
	return att, nil
}

func (l *loader) eachPair(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("yamldoc: line %d: expected a mapping: %w", n.Line, ErrInvalidDocument)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// localTag reports whether the node carries an application-specific tag
// (single leading "!"), as opposed to a resolved core tag like !!str.
func localTag(n *yaml.Node) bool {
	return strings.HasPrefix(n.Tag, "!") && !strings.HasPrefix(n.Tag, "!!")
}
