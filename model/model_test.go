package model

import (
	"bytes"
	"testing"
	"time"
)

// ============================================================================
// PlainString Tests
// ============================================================================

func TestPlainString(t *testing.T) {
	payload := bytes.NewReader([]byte("binary"))
	tests := []struct {
		name string
		el   InlineElement
		want string
	}{
		{"text", Text{Content: "abc"}, "abc"},
		{"empty text", Text{}, ""},
		{"plain sugar", Plain("abc"), "abc"},
		{"inline sequence concatenates", InlineSequence{Items: []InlineElement{
			Text{Content: "a"}, Text{Content: "b"}, Text{Content: "c"},
		}}, "abc"},
		{"strong is transparent", Strong{Content: Text{Content: "x"}}, "x"},
		{"attachment projects its label", Attachment{
			Content:  payload,
			Basename: "report.bin",
			Label:    Text{Content: "the report"},
		}, "the report"},
		{"nested mix", InlineSequence{Items: []InlineElement{
			Strong{Content: Plain("a")},
			Attachment{Content: payload, Basename: "f", Label: Plain("b")},
			Inlines{Plain("c"), Plain("d")},
		}}, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.PlainString(); got != tt.want {
				t.Errorf("PlainString() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestElementaryTableSpans(t *testing.T) {
	// [[A, COLSPAN], [B, C]]
	et := ElementaryTable{Rows: [][]Cell{
		{Text{Content: "A"}, ColumnSpan},
		{Text{Content: "B"}, Text{Content: "C"}},
	}}

	if got := et.ColumnSpanAt(0, 0); got != 2 {
		t.Errorf("ColumnSpanAt(0,0) = %d, want 2", got)
	}
	if got := et.ColumnSpanAt(1, 0); got != 1 {
		t.Errorf("ColumnSpanAt(1,0) = %d, want 1", got)
	}
	if got := et.CellAt(0, 1); got != ColumnSpan {
		t.Errorf("CellAt(0,1) = %v, want ColumnSpan", got)
	}
	if got := et.CellAt(5, 5); got != nil {
		t.Errorf("CellAt(5,5) = %v, want nil (absent)", got)
	}
}

func TestElementaryTableRowSpans(t *testing.T) {
	et := ElementaryTable{Rows: [][]Cell{
		{Text{Content: "A"}, Text{Content: "B"}},
		{RowSpan, Text{Content: "C"}},
		{RowSpan, Text{Content: "D"}},
	}}

	if got := et.RowSpanAt(0, 0); got != 3 {
		t.Errorf("RowSpanAt(0,0) = %d, want 3", got)
	}
	if got := et.RowSpanAt(0, 1); got != 1 {
		t.Errorf("RowSpanAt(0,1) = %d, want 1", got)
	}
	if got := et.ColumnCount(); got != 2 {
		t.Errorf("ColumnCount() = %d, want 2", got)
	}
}

func TestFlatTable(t *testing.T) {
	tbl := FlatTable(
		[]Cell{Plain("Heading 1"), Plain("Heading 2")},
		[][]Cell{
			{Plain("A1"), Plain("A2")},
			{Plain("B1"), Plain("B2")},
		},
	)
	if len(tbl.Head.Rows) != 1 || len(tbl.Head.Rows[0]) != 2 {
		t.Errorf("head shape = %v, want 1x2", tbl.Head.Rows)
	}
	if len(tbl.Body.Rows) != 2 {
		t.Errorf("body rows = %d, want 2", len(tbl.Body.Rows))
	}

	empty := FlatTable(nil, nil)
	if len(empty.Head.Rows) != 0 {
		t.Errorf("FlatTable(nil, nil).Head.Rows = %v, want none", empty.Head.Rows)
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func TestCreationPlaceAndDate(t *testing.T) {
	doc := Document{
		CreationPlace: Text{Content: "The Place"},
		CreationDate:  time.Date(2020, 1, 1, 12, 33, 45, 0, time.UTC),
	}
	want := "The Place, 2020-01-01"
	if got := doc.CreationPlaceAndDate(); got != want {
		t.Errorf("CreationPlaceAndDate() = %q, want %q", got, want)
	}
}

func TestLanguageTag(t *testing.T) {
	tests := []struct {
		code string
		ok   bool
	}{
		{"en", true},
		{"pl-PL", true},
		{"not a tag!", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			doc := Document{LanguageCode: tt.code}
			if _, ok := doc.LanguageTag(); ok != tt.ok {
				t.Errorf("LanguageTag() ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		in   string
		want ImageFormat
		ok   bool
	}{
		{"png", ImageFormatPNG, true},
		{"jpg", ImageFormatJPEG, true},
		{"jpeg", ImageFormatJPEG, true},
		{"gif", ImageFormatGIF, true},
		{"tiff", ImageFormatUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseImageFormat(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseImageFormat(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
