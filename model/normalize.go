package model

import "fmt"

// NormalizeBlock rewrites a possibly sugared block element into canonical
// form. The input is never mutated; composite results are new values whose
// element-typed fields are themselves canonical. A nil element or a value
// outside the closed variant set fails with [ErrUnrecognizedElement].
func NormalizeBlock(el BlockElement) (BlockElement, error) {
	switch el := el.(type) {
	case Plain:
		return Paragraph{Text: Text{Content: string(el)}}, nil
	case Blocks:
		return normalizeSequence(Sequence{Items: el})
	case Definitions:
		return normalizeDefinitionList(DefinitionList{Items: el})
	case Sequence:
		return normalizeSequence(el)
	case Paragraph:
		text, err := NormalizeInline(el.Text)
		if err != nil {
			return nil, err
		}
		return Paragraph{Text: text}, nil
	case Section:
		title, err := NormalizeInline(el.Title)
		if err != nil {
			return nil, err
		}
		body, err := NormalizeBlock(el.Body)
		if err != nil {
			return nil, err
		}
		return Section{Title: title, Body: body}, nil
	case UnorderedList:
		items := make([]BlockElement, len(el.Items))
		for i, item := range el.Items {
			n, err := NormalizeBlock(item)
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return UnorderedList{Items: items}, nil
	case DefinitionList:
		return normalizeDefinitionList(el)
	case Table:
		head, err := normalizeElementaryTable(el.Head)
		if err != nil {
			return nil, err
		}
		body, err := normalizeElementaryTable(el.Body)
		if err != nil {
			return nil, err
		}
		return Table{Head: head, Body: body}, nil
	case Image:
		caption, err := NormalizeInline(el.Caption)
		if err != nil {
			return nil, err
		}
		return Image{Content: el.Content, Format: el.Format, Caption: caption}, nil
	case InlineElement:
		// An inline element directly in block position stands for a
		// paragraph wrapping it.
		text, err := NormalizeInline(el)
		if err != nil {
			return nil, err
		}
		return Paragraph{Text: text}, nil
	case nil:
		return nil, fmt.Errorf("block position: %w (nil)", ErrUnrecognizedElement)
	default:
		return nil, fmt.Errorf("block position: %w (%T)", ErrUnrecognizedElement, el)
	}
}

// NormalizeInline rewrites a possibly sugared inline element into canonical
// form under the same rules as [NormalizeBlock].
func NormalizeInline(el InlineElement) (InlineElement, error) {
	switch el := el.(type) {
	case Plain:
		return Text{Content: string(el)}, nil
	case Inlines:
		return normalizeInlineSequence(InlineSequence{Items: el})
	case Text:
		return el, nil
	case InlineSequence:
		return normalizeInlineSequence(el)
	case Strong:
		content, err := NormalizeInline(el.Content)
		if err != nil {
			return nil, err
		}
		return Strong{Content: content}, nil
	case Attachment:
		label, err := NormalizeInline(el.Label)
		if err != nil {
			return nil, err
		}
		return Attachment{Content: el.Content, Basename: el.Basename, Label: label}, nil
	case nil:
		return nil, fmt.Errorf("inline position: %w (nil)", ErrUnrecognizedElement)
	default:
		return nil, fmt.Errorf("inline position: %w (%T)", ErrUnrecognizedElement, el)
	}
}

// NormalizeCell canonicalizes one table cell. Span markers pass through
// unchanged; everything else is inline content.
func NormalizeCell(c Cell) (Cell, error) {
	switch c := c.(type) {
	case CellSpan:
		return c, nil
	case InlineElement:
		return NormalizeInline(c)
	case nil:
		return nil, fmt.Errorf("cell position: %w (nil)", ErrUnrecognizedElement)
	default:
		return nil, fmt.Errorf("cell position: %w (%T)", ErrUnrecognizedElement, c)
	}
}

// normalizeSequence flattens nested sequences, splices away empty ones and
// unwraps a singleton to its sole item. Items of other kinds keep their
// relative order. An empty result stays an empty Sequence; it renders to
// nothing.
func normalizeSequence(s Sequence) (BlockElement, error) {
	items := make([]BlockElement, 0, len(s.Items))
	for _, item := range s.Items {
		n, err := NormalizeBlock(item)
		if err != nil {
			return nil, err
		}
		if nested, ok := n.(Sequence); ok {
			// Already canonical, so at most one level deep.
			items = append(items, nested.Items...)
		} else {
			items = append(items, n)
		}
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return Sequence{Items: items}, nil
}

func normalizeInlineSequence(s InlineSequence) (InlineElement, error) {
	items := make([]InlineElement, 0, len(s.Items))
	for _, item := range s.Items {
		n, err := NormalizeInline(item)
		if err != nil {
			return nil, err
		}
		if nested, ok := n.(InlineSequence); ok {
			items = append(items, nested.Items...)
		} else {
			items = append(items, n)
		}
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return InlineSequence{Items: items}, nil
}

func normalizeDefinitionList(l DefinitionList) (BlockElement, error) {
	items := make([]DefinitionItem, len(l.Items))
	for i, item := range l.Items {
		term, err := NormalizeInline(item.Term)
		if err != nil {
			return nil, err
		}
		def, err := NormalizeBlock(item.Definition)
		if err != nil {
			return nil, err
		}
		items[i] = DefinitionItem{Term: term, Definition: def}
	}
	return DefinitionList{Items: items}, nil
}

func normalizeElementaryTable(t ElementaryTable) (ElementaryTable, error) {
	if t.Rows == nil {
		return ElementaryTable{}, nil
	}
	rows := make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]Cell, len(row))
		for j, cell := range row {
			n, err := NormalizeCell(cell)
			if err != nil {
				return ElementaryTable{}, err
			}
			rows[i][j] = n
		}
	}
	return ElementaryTable{Rows: rows}, nil
}
