package model

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeBlockSugar(t *testing.T) {
	tests := []struct {
		name string
		in   BlockElement
		want BlockElement
	}{
		{
			"bare string becomes paragraph",
			Plain("hello"),
			Paragraph{Text: Text{Content: "hello"}},
		},
		{
			"bare block list becomes sequence",
			Blocks{Plain("a"), Plain("b")},
			Sequence{Items: []BlockElement{
				Paragraph{Text: Text{Content: "a"}},
				Paragraph{Text: Text{Content: "b"}},
			}},
		},
		{
			"bare pair list becomes definition list",
			Definitions{{Term: Plain("term"), Definition: Plain("def")}},
			DefinitionList{Items: []DefinitionItem{{
				Term:       Text{Content: "term"},
				Definition: Paragraph{Text: Text{Content: "def"}},
			}}},
		},
		{
			"inline element in block position becomes paragraph",
			Strong{Content: Plain("loud")},
			Paragraph{Text: Strong{Content: Text{Content: "loud"}}},
		},
		{
			"inline list in block position becomes paragraph",
			Inlines{Plain("a"), Plain("b")},
			Paragraph{Text: InlineSequence{Items: []InlineElement{
				Text{Content: "a"},
				Text{Content: "b"},
			}}},
		},
		{
			"section recurses into title and body",
			Section{Title: Plain("t"), Body: Plain("b")},
			Section{
				Title: Text{Content: "t"},
				Body:  Paragraph{Text: Text{Content: "b"}},
			},
		},
		{
			"list items normalized independently",
			UnorderedList{Items: []BlockElement{Plain("a"), Blocks{Plain("b"), Plain("c")}}},
			UnorderedList{Items: []BlockElement{
				Paragraph{Text: Text{Content: "a"}},
				Sequence{Items: []BlockElement{
					Paragraph{Text: Text{Content: "b"}},
					Paragraph{Text: Text{Content: "c"}},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBlock(tt.in)
			if err != nil {
				t.Fatalf("NormalizeBlock() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeBlock() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalizeSequenceFlattening(t *testing.T) {
	a := Paragraph{Text: Text{Content: "A"}}
	b := Paragraph{Text: Text{Content: "B"}}
	c := Paragraph{Text: Text{Content: "C"}}

	tests := []struct {
		name string
		in   BlockElement
		want BlockElement
	}{
		{
			"nested sequences flatten",
			Sequence{Items: []BlockElement{Sequence{Items: []BlockElement{a, b}}, c}},
			Sequence{Items: []BlockElement{a, b, c}},
		},
		{
			"flattening is associative",
			Sequence{Items: []BlockElement{a, Sequence{Items: []BlockElement{b, c}}}},
			Sequence{Items: []BlockElement{a, b, c}},
		},
		{
			"singleton unwraps",
			Sequence{Items: []BlockElement{a}},
			a,
		},
		{
			"empty members splice away",
			Sequence{Items: []BlockElement{Sequence{}, a, Sequence{}, b}},
			Sequence{Items: []BlockElement{a, b}},
		},
		{
			"empty plus one item unwraps",
			Sequence{Items: []BlockElement{Sequence{}, a}},
			a,
		},
		{
			"empty paragraphs survive",
			Sequence{Items: []BlockElement{Paragraph{Text: Plain("")}, a}},
			Sequence{Items: []BlockElement{Paragraph{Text: Text{}}, a}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBlock(tt.in)
			if err != nil {
				t.Fatalf("NormalizeBlock() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeBlock() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalizeInlineSequenceFlattening(t *testing.T) {
	a := Text{Content: "A"}
	b := Text{Content: "B"}
	c := Text{Content: "C"}

	tests := []struct {
		name string
		in   InlineElement
		want InlineElement
	}{
		{
			"nested inline sequences flatten",
			InlineSequence{Items: []InlineElement{InlineSequence{Items: []InlineElement{a, b}}, c}},
			InlineSequence{Items: []InlineElement{a, b, c}},
		},
		{
			"singleton unwraps",
			InlineSequence{Items: []InlineElement{a}},
			a,
		},
		{
			"empty members splice away",
			InlineSequence{Items: []InlineElement{InlineSequence{}, a}},
			a,
		},
		{
			"empty text is kept",
			InlineSequence{Items: []InlineElement{Text{}, a}},
			InlineSequence{Items: []InlineElement{Text{}, a}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeInline(tt.in)
			if err != nil {
				t.Fatalf("NormalizeInline() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeInline() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// Normalizing an already-normalized tree must be a no-op. Renderers rely on
// this: they only ever see canonical trees.
func TestNormalizeIdempotent(t *testing.T) {
	payload := bytes.NewReader([]byte{1, 2, 3})
	trees := []struct {
		name string
		in   BlockElement
	}{
		{"plain string", Plain("x")},
		{"deep nesting", Sequence{Items: []BlockElement{
			Sequence{Items: []BlockElement{Plain("a"), Plain("b")}},
			Section{Title: Plain("s"), Body: Blocks{Plain("c"), UnorderedList{Items: []BlockElement{Plain("d")}}}},
		}}},
		{"definition list", Definitions{
			{Term: Plain("t1"), Definition: Plain("d1")},
			{Term: Inlines{Plain("t"), Strong{Content: Plain("2")}}, Definition: Blocks{Plain("d2a"), Plain("d2b")}},
		}},
		{"table with spans", Table{
			Head: ElementaryTable{Rows: [][]Cell{{Plain("H"), ColumnSpan}}},
			Body: ElementaryTable{Rows: [][]Cell{{Plain("a"), Plain("b")}, {RowSpan, Plain("c")}}},
		}},
		{"attachment and image", Blocks{
			Paragraph{Text: Attachment{Content: payload, Basename: "f.bin", Label: Plain("file")}},
			Image{Content: payload, Format: ImageFormatPNG, Caption: Plain("pic")},
		}},
		{"empty sequence", Sequence{}},
		{"empty paragraph", Paragraph{Text: Plain("")}},
	}

	for _, tt := range trees {
		t.Run(tt.name, func(t *testing.T) {
			once, err := NormalizeBlock(tt.in)
			if err != nil {
				t.Fatalf("first NormalizeBlock() error = %v", err)
			}
			twice, err := NormalizeBlock(once)
			if err != nil {
				t.Fatalf("second NormalizeBlock() error = %v", err)
			}
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("normalization not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
			}
		})
	}
}

func TestNormalizeRejectsNil(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"nil block", func() error { _, err := NormalizeBlock(nil); return err }()},
		{"nil inline", func() error { _, err := NormalizeInline(nil); return err }()},
		{"nil cell", func() error { _, err := NormalizeCell(nil); return err }()},
		{"nil paragraph text", func() error { _, err := NormalizeBlock(Paragraph{}); return err }()},
		{"nil section body", func() error { _, err := NormalizeBlock(Section{Title: Plain("t")}); return err }()},
		{"nil strong content", func() error { _, err := NormalizeInline(Strong{}); return err }()},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrUnrecognizedElement) {
				t.Errorf("error = %v, want ErrUnrecognizedElement", tt.err)
			}
		})
	}
}

func TestDocumentNormalized(t *testing.T) {
	doc := Document{
		LanguageCode:  "en",
		Title:         Plain("The Title"),
		Subject:       Plain("The Subject"),
		Author:        Plain("The Author"),
		Creator:       Plain("The Creator"),
		CreationPlace: Plain("The Place"),
		Body: Blocks{
			Section{Title: Plain("One"), Body: Blocks{Plain("p1"), Plain("p2")}},
		},
	}
	got, err := doc.Normalized()
	if err != nil {
		t.Fatalf("Normalized() error = %v", err)
	}
	if _, ok := got.Title.(Text); !ok {
		t.Errorf("Title = %#v, want Text", got.Title)
	}
	sec, ok := got.Body.(Section)
	if !ok {
		t.Fatalf("Body = %#v, want the singleton-unwrapped Section", got.Body)
	}
	seq, ok := sec.Body.(Sequence)
	if !ok || len(seq.Items) != 2 {
		t.Fatalf("Section body = %#v, want a two-item Sequence", sec.Body)
	}
	// Original must be untouched.
	if _, ok := doc.Body.(Blocks); !ok {
		t.Errorf("input document mutated: body is %#v", doc.Body)
	}
}
