package pdf

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/scribe/model"
)

func testDocument(t *testing.T, body model.BlockElement) *model.Document {
	t.Helper()
	doc := model.Document{
		LanguageCode:  "en",
		Title:         model.Plain("Test Document"),
		Subject:       model.Plain("Test Subject"),
		Author:        model.Plain("Test Author"),
		Creator:       model.Plain("Test Creator"),
		CreationDate:  time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
		CreationPlace: model.Plain("Test Place"),
		Body:          body,
	}
	norm, err := doc.Normalized()
	if err != nil {
		t.Fatalf("Normalized() error = %v", err)
	}
	return &norm
}

func render(t *testing.T, doc *model.Document, pageNumbers bool) []byte {
	t.Helper()
	r, err := NewRenderer(doc, pageNumbers)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	var buf bytes.Buffer
	if err := r.RenderTo(&buf); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}
	return buf.Bytes()
}

func TestFileStructure(t *testing.T) {
	out := render(t, testDocument(t, model.Plain("hello")), true)
	if !bytes.HasPrefix(out, []byte("%PDF-1.4\n")) {
		t.Error("output does not start with a PDF header")
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Error("output has no end-of-file marker")
	}
	if !bytes.Contains(out, []byte("/BaseFont /Helvetica")) {
		t.Error("output has no Helvetica font dictionary")
	}
	// Cover plus body page.
	if !bytes.Contains(out, []byte("/Count 2")) {
		t.Error("output does not have two pages")
	}
}

func TestDeterministicOutput(t *testing.T) {
	build := func() *model.Document {
		return testDocument(t, model.Blocks{
			model.Section{Title: model.Plain("S"), Body: model.Plain(strings.Repeat("word ", 100))},
			model.Paragraph{Text: model.Attachment{
				Content:  bytes.NewReader([]byte("payload")),
				Basename: "f.bin",
				Label:    model.Plain("f"),
			}},
		})
	}
	first := render(t, build(), true)
	second := render(t, build(), true)
	if !bytes.Equal(first, second) {
		t.Error("two renders of the same document differ")
	}
}

func TestContentIndependentOfWallClock(t *testing.T) {
	// Same creation date must mean same bytes regardless of when the
	// renderer runs; the only date in the file comes from the document.
	out := render(t, testDocument(t, model.Plain("x")), true)
	if !bytes.Contains(out, []byte("(D:20170101000000Z)")) {
		t.Error("creation date not taken from the document")
	}
	if n := bytes.Count(out, []byte("(D:")); n != 1 {
		t.Errorf("found %d date strings, want exactly 1", n)
	}
}

func TestSectionOutline(t *testing.T) {
	out := render(t, testDocument(t, model.Section{
		Title: model.Plain("Outer"),
		Body: model.Section{
			Title: model.Plain("Inner"),
			Body:  model.Plain("deep"),
		},
	}), false)
	for _, want := range []string{"/Outlines", "(Outer)", "(Inner)", "/PageMode /UseOutlines"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestAttachmentAnnotation(t *testing.T) {
	out := render(t, testDocument(t, model.Paragraph{
		Text: model.Attachment{
			Content:  bytes.NewReader([]byte("hello")),
			Basename: "test.txt",
			Label:    model.Plain("Download"),
		},
	}), false)
	for _, want := range []string{
		"/Subtype /FileAttachment",
		"/Type /EmbeddedFile",
		"(test.txt)",
		"stream\nhello\nendstream",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestStrongUsesBoldFace(t *testing.T) {
	out := render(t, testDocument(t, model.Paragraph{
		Text: model.Inlines{
			model.Plain("normal "),
			model.Strong{Content: model.Plain("bold")},
		},
	}), false)
	if !bytes.Contains(out, []byte("/F2 10.00 Tf (bold) Tj")) {
		t.Error("strong text not set in the bold face")
	}
	if !bytes.Contains(out, []byte("/BaseFont /Helvetica-Bold")) {
		t.Error("bold font dictionary missing")
	}
}

func TestTableGrid(t *testing.T) {
	out := render(t, testDocument(t, model.Table{
		Head: model.ElementaryTable{Rows: [][]model.Cell{
			{model.Plain("Wide"), model.ColumnSpan},
		}},
		Body: model.ElementaryTable{Rows: [][]model.Cell{
			{model.Plain("a"), model.Plain("b")},
		}},
	}), false)
	// One header rect spanning both columns, two body rects.
	if got := bytes.Count(out, []byte(" re S\n")); got != 3 {
		t.Errorf("drew %d cell rects, want 3", got)
	}
	if !bytes.Contains(out, []byte("(Wide) Tj")) {
		t.Error("header cell text missing")
	}
}

func TestPageNumbersOptional(t *testing.T) {
	doc := func() *model.Document { return testDocument(t, model.Plain("x")) }
	with := render(t, doc(), true)
	without := render(t, doc(), false)
	if !bytes.Contains(with, []byte("(Page 1 of 2) Tj")) {
		t.Error("footer missing with page numbers enabled")
	}
	if bytes.Contains(without, []byte("(Page 1 of 2) Tj")) {
		t.Error("footer present with page numbers disabled")
	}
}

func TestLongContentBreaksPages(t *testing.T) {
	var blocks model.Blocks
	for i := 0; i < 200; i++ {
		blocks = append(blocks, model.Plain("A paragraph that takes up a line."))
	}
	out := render(t, testDocument(t, blocks), true)
	if bytes.Contains(out, []byte("/Count 2")) {
		t.Error("long content did not spill onto further pages")
	}
	if !bytes.Contains(out, []byte("(Page 3 of ")) {
		t.Error("no third-page footer in long document")
	}
}

// An empty paragraph draws no text but still separates its neighbours,
// so a leading or interior empty paragraph shifts the content after it.
func TestLeadingEmptyParagraphVisible(t *testing.T) {
	withEmpty := render(t, testDocument(t, model.Blocks{
		model.Paragraph{Text: model.Plain("")},
		model.Plain("A"),
	}), false)
	without := render(t, testDocument(t, model.Plain("A")), false)
	if bytes.Equal(withEmpty, without) {
		t.Error("leading empty paragraph is not observable")
	}
}

// The output of a fixed document is pinned byte for byte, so encoding
// changes that would break reproducibility across versions show up here.
func TestFileFixture(t *testing.T) {
	out := render(t, testDocument(t, model.Plain("hello")), false)
	prefix := "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n" +
		"1 0 obj\n<</Lang (en)/Pages 2 0 R/Type /Catalog>>\nendobj\n" +
		"2 0 obj\n<</Count 2/Kids [7 0 R 8 0 R]/Type /Pages>>\nendobj\n" +
		"3 0 obj\n<</Author (Test Author)/CreationDate (D:20170101000000Z)/Creator (Test Creator)/Subject (Test Subject)/Title (Test Document)>>\nendobj\n" +
		"4 0 obj\n<</BaseFont /Helvetica/Encoding /WinAnsiEncoding/Subtype /Type1/Type /Font>>\nendobj\n" +
		"5 0 obj\n<</BaseFont /Helvetica-Bold/Encoding /WinAnsiEncoding/Subtype /Type1/Type /Font>>\nendobj\n" +
		"6 0 obj\n<</Font <</F1 4 0 R/F2 5 0 R>>>>\nendobj\n" +
		"7 0 obj\n<</Contents 9 0 R/MediaBox [0 0 595.28 841.89]/Parent 2 0 R/Resources 6 0 R/Type /Page>>\nendobj\n" +
		"8 0 obj\n<</Contents 10 0 R/MediaBox [0 0 595.28 841.89]/Parent 2 0 R/Resources 6 0 R/Type /Page>>\nendobj\n"
	if !bytes.HasPrefix(out, []byte(prefix)) {
		end := len(prefix)
		if end > len(out) {
			end = len(out)
		}
		t.Errorf("file prefix =\n%q\nwant\n%q", out[:end], prefix)
	}
	bodyStream := "stream\nBT\n1 0 0 1 56.69 775.20 Tm\n/F1 10.00 Tf (hello) Tj\nET\n\nendstream"
	if !bytes.Contains(out, []byte(bodyStream)) {
		t.Errorf("output missing body content stream %q", bodyStream)
	}
}

func TestImageEmbedding(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.White)
	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	out := render(t, testDocument(t, model.Image{
		Content: bytes.NewReader(payload.Bytes()),
		Format:  model.ImageFormatPNG,
		Caption: model.Plain("a picture"),
	}), false)
	for _, want := range []string{
		"/Subtype /Image",
		"/Filter /FlateDecode",
		"/Width 2",
		"/Height 1",
		"/Im1 Do",
		"(a picture) Tj",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestUnknownImageFormat(t *testing.T) {
	doc := testDocument(t, model.Plain("x"))
	doc.Body = model.Image{
		Content: bytes.NewReader(nil),
		Format:  model.ImageFormatUnknown,
		Caption: model.Text{Content: "c"},
	}
	_, err := NewRenderer(doc, false)
	if !errors.Is(err, model.ErrUnsupportedElement) {
		t.Errorf("error = %v, want ErrUnsupportedElement", err)
	}
}

func TestDictKeysSorted(t *testing.T) {
	var buf bytes.Buffer
	Dict{"Zeta": Int(1), "Alpha": Int(2), "Mid": Name("x")}.encode(&buf)
	want := "<</Alpha 2/Mid /x/Zeta 1>>"
	if got := buf.String(); got != want {
		t.Errorf("encoded dict = %q, want %q", got, want)
	}
}

func TestStringEscaping(t *testing.T) {
	var buf bytes.Buffer
	String(`a(b)c\d`).encode(&buf)
	want := `(a\(b\)c\\d)`
	if got := buf.String(); got != want {
		t.Errorf("encoded string = %q, want %q", got, want)
	}
}

func TestWordWrap(t *testing.T) {
	// At 10pt the body column fits about 60 characters; a 30-word
	// sentence must wrap onto multiple lines, none wider than the column.
	text := strings.Repeat("hello world ", 15)
	lines := wrapPlain(strings.TrimSpace(text), 170, bodySize, faceRegular)
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want wrapping", len(lines))
	}
	for _, line := range lines {
		if w := stringWidth(line, faceRegular, bodySize) / ptPerMM; w > 170 {
			t.Errorf("line %q is %.1fmm wide, over the 170mm column", line, w)
		}
	}
}
