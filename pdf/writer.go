package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/scribe/model"
)

// Page geometry and layout constants. Distances are millimetres unless
// noted; font sizes are points.
const (
	ptPerMM = 72.0 / 25.4

	pageW = 210.0
	pageH = 297.0

	marginLeft   = 20.0
	marginRight  = 20.0
	marginTop    = 20.0
	marginBottom = 20.0

	bodySize         = 10.0
	lineHeightFactor = 1.5

	sequenceSpace = 7.0
	listItemSpace = 7.0
	bulletSpace   = 5.0
	bulletGlyph   = "-"

	cellPadding = 2.0

	footerSize   = 8.0
	footerOffset = 15.0

	imageWidth = 100.0

	coverX         = 60.0
	coverY         = 140.0
	coverTitleSize = 24.0
	coverMetaSize  = 12.0

	maxTitleDepth = 3
)

var (
	titleSizes       = [maxTitleDepth]float64{18, 14, 10}
	titleSpaceBefore = [maxTitleDepth]float64{6, 4, 3}
)

const titleSpaceAfter = 5.0

// fragment is a run of same-face text within a line.
type fragment struct {
	text   string
	face   fontFace
	attach int
}

type attachmentAnnot struct {
	basename string
	payload  []byte
	page     int
	rect     [4]float64
}

type imageXObject struct {
	width  int
	height int
	filter Name
	data   []byte
}

type pageBuf struct {
	content bytes.Buffer
}

type outlineEntry struct {
	title string
	level int
	page  int
	top   float64
}

// Renderer lays out a document on A4 pages and writes the result as a PDF
// file. The document must be normalized; the renderer never mutates it.
//
// The only time source is the document's creation date, so the same
// document always renders to the same bytes.
type Renderer struct {
	doc         *model.Document
	pageNumbers bool

	pages       []*pageBuf
	images      []imageXObject
	attachments []*attachmentAnnot
	outline     []outlineEntry

	y          float64
	leftMargin float64
}

// NewRenderer lays out doc. When pageNumbers is true every page gets a
// centered "Page N of M" footer.
func NewRenderer(doc *model.Document, pageNumbers bool) (*Renderer, error) {
	r := &Renderer{doc: doc, pageNumbers: pageNumbers, leftMargin: marginLeft}
	if err := r.addCover(); err != nil {
		return nil, err
	}
	r.newPage()
	if _, err := r.addElement(doc.Body, 0); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) page() *pageBuf {
	return r.pages[len(r.pages)-1]
}

func (r *Renderer) newPage() {
	r.pages = append(r.pages, &pageBuf{})
	r.y = marginTop
}

func (r *Renderer) ensureRoom(h float64) {
	if r.y+h > pageH-marginBottom {
		r.newPage()
	}
}

func (r *Renderer) contentWidth() float64 {
	return pageW - marginRight - r.leftMargin
}

func lineHeight(size float64) float64 {
	return size * lineHeightFactor / ptPerMM
}

func (r *Renderer) addCover() error {
	r.newPage()
	r.y = coverY
	coverWidth := pageW - marginRight - coverX
	write := func(el model.InlineElement, size float64) error {
		lines, err := r.layoutInline(el, coverWidth, size, faceRegular)
		if err != nil {
			return err
		}
		for _, line := range lines {
			r.drawLine(coverX, line, size)
			r.y += lineHeight(size)
		}
		return nil
	}
	if err := write(r.doc.Title, coverTitleSize); err != nil {
		return err
	}
	if err := write(r.doc.Subject, coverMetaSize); err != nil {
		return err
	}
	if err := write(r.doc.Author, coverMetaSize); err != nil {
		return err
	}
	return write(model.Text{Content: r.doc.CreationPlaceAndDate()}, coverMetaSize)
}

// addElement renders one canonical block element and reports whether it
// produced any output. level is the section nesting depth, 0 at the top.
func (r *Renderer) addElement(el model.BlockElement, level int) (bool, error) {
	switch el := el.(type) {
	case model.Section:
		return r.addSection(el, level)
	case model.Paragraph:
		// A paragraph counts as generated content even when its text is
		// empty, so a following sequence item still gets its gap. Only a
		// trailing empty paragraph leaves no trace.
		if _, err := r.addInline(el.Text); err != nil {
			return false, err
		}
		return true, nil
	case model.Table:
		return r.addTable(el)
	case model.UnorderedList:
		return r.addUnorderedList(el, level)
	case model.DefinitionList:
		return r.addDefinitionList(el, level)
	case model.Sequence:
		generated := false
		spaceDue := false
		for _, item := range el.Items {
			if spaceDue {
				r.y += sequenceSpace
			}
			g, err := r.addElement(item, level)
			if err != nil {
				return false, err
			}
			spaceDue = g
			if g {
				generated = true
			}
		}
		return generated, nil
	case model.Image:
		return r.addImage(el)
	default:
		return false, fmt.Errorf("pdf: %w (%T)", model.ErrUnsupportedElement, el)
	}
}

func (r *Renderer) addSection(s model.Section, level int) (bool, error) {
	depth := level
	if depth >= maxTitleDepth {
		depth = maxTitleDepth - 1
	}
	size := titleSizes[depth]

	lines, err := r.layoutInline(s.Title, r.contentWidth(), size, faceRegular)
	if err != nil {
		return false, err
	}
	needed := titleSpaceBefore[depth] + float64(len(lines))*lineHeight(size)
	if r.y+needed > pageH-marginBottom {
		r.newPage()
	}
	r.y += titleSpaceBefore[depth]
	r.outline = append(r.outline, outlineEntry{
		title: s.Title.PlainString(),
		level: level,
		page:  len(r.pages) - 1,
		top:   (pageH - r.y) * ptPerMM,
	})
	for _, line := range lines {
		r.drawLine(r.leftMargin, line, size)
		r.y += lineHeight(size)
	}
	r.y += titleSpaceAfter

	if _, err := r.addElement(s.Body, level+1); err != nil {
		return false, err
	}
	return true, nil
}

// addInline renders wrapped inline content at the current position.
func (r *Renderer) addInline(el model.InlineElement) (bool, error) {
	lines, err := r.layoutInline(el, r.contentWidth(), bodySize, faceRegular)
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		r.ensureRoom(lineHeight(bodySize))
		r.drawLine(r.leftMargin, line, bodySize)
		r.y += lineHeight(bodySize)
	}
	return len(lines) > 0, nil
}

func (r *Renderer) addUnorderedList(l model.UnorderedList, level int) (bool, error) {
	orig := r.leftMargin
	r.leftMargin = orig + bulletSpace
	defer func() { r.leftMargin = orig }()
	for i, item := range l.Items {
		if i > 0 {
			r.y += listItemSpace
		}
		r.ensureRoom(lineHeight(bodySize))
		r.drawLine(orig, []fragment{{text: bulletGlyph, face: faceRegular, attach: -1}}, bodySize)
		if _, err := r.addElement(item, level); err != nil {
			return false, err
		}
	}
	return len(l.Items) > 0, nil
}

// addDefinitionList renders definitions as bulleted term/definition pairs.
func (r *Renderer) addDefinitionList(l model.DefinitionList, level int) (bool, error) {
	items := make([]model.BlockElement, len(l.Items))
	for i, item := range l.Items {
		items[i] = model.Sequence{Items: []model.BlockElement{
			model.Paragraph{Text: item.Term},
			item.Definition,
		}}
	}
	return r.addUnorderedList(model.UnorderedList{Items: items}, level)
}

func (r *Renderer) addTable(t model.Table) (bool, error) {
	cols := t.Head.ColumnCount()
	if c := t.Body.ColumnCount(); c > cols {
		cols = c
	}
	if cols == 0 {
		return false, nil
	}
	colW := r.contentWidth() / float64(cols)

	type cellBox struct {
		lines   []string
		col     int
		colspan int
		rowspan int
		face    fontFace
	}
	type rowBox struct {
		cells  []cellBox
		height float64
	}
	var rows []rowBox
	measure := func(et model.ElementaryTable, face fontFace) {
		for ri, row := range et.Rows {
			rb := rowBox{height: lineHeight(bodySize) + 2*cellPadding}
			for ci, cell := range row {
				inline, ok := cell.(model.InlineElement)
				if !ok {
					// Span marker; covered by its anchor cell.
					continue
				}
				cs := et.ColumnSpanAt(ri, ci)
				rs := et.RowSpanAt(ri, ci)
				width := float64(cs)*colW - 2*cellPadding
				lines := wrapPlain(inline.PlainString(), width, bodySize, face)
				if rs == 1 {
					if h := float64(len(lines))*lineHeight(bodySize) + 2*cellPadding; h > rb.height {
						rb.height = h
					}
				}
				rb.cells = append(rb.cells, cellBox{lines: lines, col: ci, colspan: cs, rowspan: rs, face: face})
			}
			rows = append(rows, rb)
		}
	}
	measure(t.Head, faceBold)
	measure(t.Body, faceRegular)

	for ri, rb := range rows {
		r.ensureRoom(rb.height)
		for _, cb := range rb.cells {
			x := r.leftMargin + float64(cb.col)*colW
			w := float64(cb.colspan) * colW
			h := rb.height
			for n := 1; n < cb.rowspan && ri+n < len(rows); n++ {
				h += rows[ri+n].height
			}
			r.drawRect(x, r.y, w, h)
			ty := r.y + cellPadding
			for _, line := range cb.lines {
				appendTextLine(&r.page().content, x+cellPadding, ty,
					[]fragment{{text: line, face: cb.face, attach: -1}}, bodySize)
				ty += lineHeight(bodySize)
			}
		}
		r.y += rb.height
	}
	return true, nil
}

func (r *Renderer) addImage(img model.Image) (bool, error) {
	payload, err := readPayload(img.Content)
	if err != nil {
		return false, fmt.Errorf("pdf: reading image payload: %w", err)
	}
	xo, err := buildImageXObject(payload, img.Format)
	if err != nil {
		return false, err
	}
	r.images = append(r.images, xo)
	name := "Im" + strconv.Itoa(len(r.images))

	displayH := imageWidth * float64(xo.height) / float64(xo.width)
	if r.y+displayH > pageH-marginBottom {
		r.newPage()
	}
	fmt.Fprintf(&r.page().content, "q\n%.2f 0 0 %.2f %.2f %.2f cm\n/%s Do\nQ\n",
		imageWidth*ptPerMM, displayH*ptPerMM,
		r.leftMargin*ptPerMM, (pageH-r.y-displayH)*ptPerMM, name)
	r.y += displayH

	if _, err := r.addInline(img.Caption); err != nil {
		return false, err
	}
	return true, nil
}

func buildImageXObject(payload []byte, format model.ImageFormat) (imageXObject, error) {
	switch format {
	case model.ImageFormatJPEG:
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(payload))
		if err != nil {
			return imageXObject{}, fmt.Errorf("pdf: decoding image: %w", err)
		}
		return imageXObject{width: cfg.Width, height: cfg.Height, filter: "DCTDecode", data: payload}, nil
	case model.ImageFormatPNG, model.ImageFormatGIF:
		var src image.Image
		var err error
		if format == model.ImageFormatPNG {
			src, err = png.Decode(bytes.NewReader(payload))
		} else {
			src, err = gif.Decode(bytes.NewReader(payload))
		}
		if err != nil {
			return imageXObject{}, fmt.Errorf("pdf: decoding image: %w", err)
		}
		return flattenToRGB(src)
	default:
		return imageXObject{}, fmt.Errorf("pdf: image format %v: %w", format, model.ErrUnsupportedElement)
	}
}

// flattenToRGB converts any decoded image to raw RGB samples behind a
// Flate filter.
func flattenToRGB(src image.Image) (imageXObject, error) {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)

	rgb := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := 0; y < b.Dy(); y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+b.Dx()*4]
		for x := 0; x < b.Dx(); x++ {
			rgb = append(rgb, row[x*4], row[x*4+1], row[x*4+2])
		}
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(rgb); err != nil {
		return imageXObject{}, fmt.Errorf("pdf: compressing image: %w", err)
	}
	if err := zw.Close(); err != nil {
		return imageXObject{}, fmt.Errorf("pdf: compressing image: %w", err)
	}
	return imageXObject{width: b.Dx(), height: b.Dy(), filter: "FlateDecode", data: buf.Bytes()}, nil
}

// layoutInline flattens el and wraps it to lines of at most maxWidth mm.
func (r *Renderer) layoutInline(el model.InlineElement, maxWidth, size float64, face fontFace) ([][]fragment, error) {
	frags, err := r.flattenInline(el, face)
	if err != nil {
		return nil, err
	}
	return wrapLines(splitWords(frags, size), maxWidth, size), nil
}

func (r *Renderer) flattenInline(el model.InlineElement, face fontFace) ([]fragment, error) {
	switch el := el.(type) {
	case model.Text:
		if el.Content == "" {
			return nil, nil
		}
		return []fragment{{text: el.Content, face: face, attach: -1}}, nil
	case model.InlineSequence:
		var out []fragment
		for _, item := range el.Items {
			frags, err := r.flattenInline(item, face)
			if err != nil {
				return nil, err
			}
			out = append(out, frags...)
		}
		return out, nil
	case model.Strong:
		return r.flattenInline(el.Content, faceBold)
	case model.Attachment:
		payload, err := readPayload(el.Content)
		if err != nil {
			return nil, fmt.Errorf("pdf: reading attachment payload: %w", err)
		}
		idx := len(r.attachments)
		r.attachments = append(r.attachments, &attachmentAnnot{basename: el.Basename, payload: payload, page: -1})
		frags, err := r.flattenInline(el.Label, face)
		if err != nil {
			return nil, err
		}
		if len(frags) == 0 {
			// Labelless attachment still needs an anchor position.
			frags = []fragment{{text: "", face: face, attach: idx}}
		} else {
			frags[0].attach = idx
		}
		return frags, nil
	default:
		return nil, fmt.Errorf("pdf: %w (%T)", model.ErrUnsupportedElement, el)
	}
}

type word struct {
	frags []fragment
	width float64
}

// splitWords tokenizes fragments into space-separated words, keeping face
// and attachment anchors per piece.
func splitWords(frags []fragment, size float64) []word {
	var words []word
	var cur word
	flush := func() {
		if len(cur.frags) > 0 {
			words = append(words, cur)
		}
		cur = word{}
	}
	for _, f := range frags {
		if f.text == "" {
			cur.frags = append(cur.frags, f)
			continue
		}
		attach := f.attach
		for i, piece := range strings.Split(f.text, " ") {
			if i > 0 {
				flush()
			}
			if piece == "" {
				continue
			}
			cur.frags = append(cur.frags, fragment{text: piece, face: f.face, attach: attach})
			cur.width += stringWidth(piece, f.face, size) / ptPerMM
			attach = -1
		}
	}
	flush()
	return words
}

func wrapLines(words []word, maxWidth, size float64) [][]fragment {
	spaceW := stringWidth(" ", faceRegular, size) / ptPerMM
	var lines [][]fragment
	var line []fragment
	width := 0.0
	for _, w := range words {
		if len(line) > 0 && width+spaceW+w.width > maxWidth {
			lines = append(lines, line)
			line = nil
			width = 0
		}
		if len(line) > 0 {
			line = append(line, fragment{text: " ", face: faceRegular, attach: -1})
			width += spaceW
		}
		line = append(line, w.frags...)
		width += w.width
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// wrapPlain wraps single-face text and joins each line back to a string.
func wrapPlain(text string, maxWidth, size float64, face fontFace) []string {
	lines := wrapLines(splitWords([]fragment{{text: text, face: face, attach: -1}}, size), maxWidth, size)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var sb strings.Builder
		for _, f := range line {
			sb.WriteString(f.text)
		}
		out = append(out, sb.String())
	}
	return out
}

// drawLine writes one text line with its top edge at the current y and
// records attachment anchor rectangles as they are placed.
func (r *Renderer) drawLine(x float64, frags []fragment, size float64) {
	penX := x
	for _, f := range frags {
		if f.attach >= 0 {
			r.placeAttachment(f.attach, penX, size)
		}
		penX += stringWidth(f.text, f.face, size) / ptPerMM
	}
	appendTextLine(&r.page().content, x, r.y, frags, size)
}

func appendTextLine(buf *bytes.Buffer, x, yTop float64, frags []fragment, size float64) {
	baseline := (pageH - yTop) * ptPerMM
	baseline -= size // one em below the top edge
	fmt.Fprintf(buf, "BT\n1 0 0 1 %.2f %.2f Tm\n", x*ptPerMM, baseline)
	for _, f := range frags {
		if f.text == "" {
			continue
		}
		fmt.Fprintf(buf, "/%s %.2f Tf (", f.face.resourceName(), size)
		buf.Write(encodeText(f.text))
		buf.WriteString(") Tj\n")
	}
	buf.WriteString("ET\n")
}

func (r *Renderer) placeAttachment(idx int, x, size float64) {
	a := r.attachments[idx]
	if a.page >= 0 {
		return
	}
	a.page = len(r.pages) - 1
	h := size / ptPerMM
	a.rect = [4]float64{
		x * ptPerMM,
		(pageH - r.y - h) * ptPerMM,
		(x + h) * ptPerMM,
		(pageH - r.y) * ptPerMM,
	}
}

func (r *Renderer) drawRect(x, y, w, h float64) {
	fmt.Fprintf(&r.page().content, "%.2f %.2f %.2f %.2f re S\n",
		x*ptPerMM, (pageH-y-h)*ptPerMM, w*ptPerMM, h*ptPerMM)
}

func readPayload(rs io.ReadSeeker) ([]byte, error) {
	if rs == nil {
		return nil, nil
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(rs)
}

// RenderTo assembles the laid-out pages into a PDF file and writes it to w.
func (r *Renderer) RenderTo(w io.Writer) error {
	f := &file{}
	catalogRef := f.reserve()
	pagesRef := f.reserve()
	infoRef := f.reserve()

	fontRegular := f.add(fontDict(faceRegular))
	fontBold := f.add(fontDict(faceBold))
	resources := Dict{
		"Font": Dict{
			faceRegular.resourceName(): fontRegular,
			faceBold.resourceName():    fontBold,
		},
	}
	if len(r.images) > 0 {
		xobjects := Dict{}
		for i, img := range r.images {
			xobjects["Im"+strconv.Itoa(i+1)] = f.add(&Stream{
				Dict: Dict{
					"Type":             Name("XObject"),
					"Subtype":          Name("Image"),
					"Width":            Int(img.width),
					"Height":           Int(img.height),
					"ColorSpace":       Name("DeviceRGB"),
					"BitsPerComponent": Int(8),
					"Filter":           img.filter,
				},
				Data: img.data,
			})
		}
		resources["XObject"] = xobjects
	}
	resourcesRef := f.add(resources)

	pageRefs := make([]Ref, len(r.pages))
	for i := range r.pages {
		pageRefs[i] = f.reserve()
	}
	for i, p := range r.pages {
		content := p.content.Bytes()
		if r.pageNumbers {
			content = append(content, footerOps(i+1, len(r.pages))...)
		}
		contentRef := f.add(&Stream{Dict: Dict{}, Data: content})

		var annots Array
		for _, a := range r.attachments {
			if a.page != i {
				continue
			}
			embedded := f.add(&Stream{Dict: Dict{"Type": Name("EmbeddedFile")}, Data: a.payload})
			filespec := f.add(Dict{
				"Type": Name("Filespec"),
				"F":    String(a.basename),
				"UF":   String(a.basename),
				"EF":   Dict{"F": embedded},
			})
			annots = append(annots, f.add(Dict{
				"Type":     Name("Annot"),
				"Subtype":  Name("FileAttachment"),
				"Rect":     Array{Real(a.rect[0]), Real(a.rect[1]), Real(a.rect[2]), Real(a.rect[3])},
				"FS":       filespec,
				"Name":     Name("Paperclip"),
				"Contents": String(a.basename),
			}))
		}

		pageDict := Dict{
			"Type":      Name("Page"),
			"Parent":    pagesRef,
			"MediaBox":  Array{Int(0), Int(0), Real(pageW * ptPerMM), Real(pageH * ptPerMM)},
			"Contents":  contentRef,
			"Resources": resourcesRef,
		}
		if len(annots) > 0 {
			pageDict["Annots"] = annots
		}
		f.set(pageRefs[i], pageDict)
	}
	kids := make(Array, len(pageRefs))
	for i, ref := range pageRefs {
		kids[i] = ref
	}
	f.set(pagesRef, Dict{"Type": Name("Pages"), "Kids": kids, "Count": Int(len(pageRefs))})

	catalog := Dict{"Type": Name("Catalog"), "Pages": pagesRef}
	if r.doc.LanguageCode != "" {
		catalog["Lang"] = String(r.doc.LanguageCode)
	}
	if outlinesRef, ok := r.buildOutline(f, pageRefs); ok {
		catalog["Outlines"] = outlinesRef
		catalog["PageMode"] = Name("UseOutlines")
	}
	f.set(catalogRef, catalog)

	f.set(infoRef, Dict{
		"Title":        String(r.doc.Title.PlainString()),
		"Subject":      String(r.doc.Subject.PlainString()),
		"Author":       String(r.doc.Author.PlainString()),
		"Creator":      String(r.doc.Creator.PlainString()),
		"CreationDate": String("D:" + r.doc.CreationDate.UTC().Format("20060102150405") + "Z"),
	})

	if err := f.writeTo(w, catalogRef, infoRef); err != nil {
		return fmt.Errorf("pdf: writing file: %w", err)
	}
	return nil
}

func fontDict(face fontFace) Dict {
	return Dict{
		"Type":     Name("Font"),
		"Subtype":  Name("Type1"),
		"BaseFont": Name(face.baseFont()),
		"Encoding": Name("WinAnsiEncoding"),
	}
}

func footerOps(pageNo, total int) []byte {
	text := fmt.Sprintf("Page %d of %d", pageNo, total)
	width := stringWidth(text, faceRegular, footerSize) / ptPerMM
	var buf bytes.Buffer
	appendTextLine(&buf, (pageW-width)/2, pageH-footerOffset,
		[]fragment{{text: text, face: faceRegular, attach: -1}}, footerSize)
	return buf.Bytes()
}

// buildOutline emits the document outline tree built from section titles.
func (r *Renderer) buildOutline(f *file, pageRefs []Ref) (Ref, bool) {
	entries := r.outline
	if len(entries) == 0 {
		return Ref{}, false
	}
	rootRef := f.reserve()
	refs := make([]Ref, len(entries))
	for i := range entries {
		refs[i] = f.reserve()
	}

	parents := make([]int, len(entries))
	for i, e := range entries {
		parents[i] = -1
		for j := i - 1; j >= 0; j-- {
			if entries[j].level < e.level {
				parents[i] = j
				break
			}
		}
	}

	dicts := make([]Dict, len(entries))
	for i, e := range entries {
		parent := rootRef
		if parents[i] >= 0 {
			parent = refs[parents[i]]
		}
		dicts[i] = Dict{
			"Title":  String(e.title),
			"Parent": parent,
			"Dest":   Array{pageRefs[e.page], Name("XYZ"), Int(0), Real(e.top), Null{}},
		}
	}

	rootFirst, rootLast := -1, -1
	for i := range entries {
		count := 0
		for j := i + 1; j < len(entries); j++ {
			if parents[j] == i {
				count++
				if _, ok := dicts[i]["First"]; !ok {
					dicts[i]["First"] = refs[j]
				}
				dicts[i]["Last"] = refs[j]
			}
		}
		if count > 0 {
			dicts[i]["Count"] = Int(count)
		}
		for j := i + 1; j < len(entries); j++ {
			if parents[j] == parents[i] {
				dicts[i]["Next"] = refs[j]
				dicts[j]["Prev"] = refs[i]
				break
			}
			if parents[j] < parents[i] {
				// Left this entry's parent; no more siblings.
				break
			}
		}
		if parents[i] == -1 {
			if rootFirst < 0 {
				rootFirst = i
			}
			rootLast = i
		}
	}
	for i := range entries {
		f.set(refs[i], dicts[i])
	}
	f.set(rootRef, Dict{
		"Type":  Name("Outlines"),
		"First": refs[rootFirst],
		"Last":  refs[rootLast],
		"Count": Int(len(entries)),
	})
	return rootRef, true
}
