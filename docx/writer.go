// Package docx renders a canonical document tree to a DOCX (Office Open
// XML) package.
//
// Output is reproducible: part bytes depend only on the document value and
// ZIP member headers carry no modification times, so rendering the same
// document twice yields identical archives.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"

	"github.com/tsawler/scribe/model"
)

// Page geometry in twips (letter, 1in margins, 1.25in body left margin).
const (
	pageWidth     = 12240
	pageHeight    = 15840
	contentWidth  = 9000
	emuPerInch    = 914400
	imageWidthEMU = 6 * emuPerInch
)

// Fixed relationship IDs; image and hyperlink relationships are allocated
// after these.
const (
	relIDStyles    = "rId1"
	relIDNumbering = "rId2"
	relIDHeader    = "rId3"
	relIDFooter    = "rId4"
	firstDynamicID = 5
)

type mediaFile struct {
	name string
	data []byte
}

// Renderer renders one document to DOCX. The document must be normalized;
// the renderer never mutates it.
type Renderer struct {
	doc     *model.Document
	content []interface{}
	rels    []relationshipXML
	media   []mediaFile
	nextRel int
	nextPic int
}

// NewRenderer builds all document parts for doc in memory.
func NewRenderer(doc *model.Document) (*Renderer, error) {
	r := &Renderer{
		doc:     doc,
		nextRel: firstDynamicID,
		nextPic: 1,
		rels: []relationshipXML{
			{ID: relIDStyles, Type: relTypeStyles, Target: "styles.xml"},
			{ID: relIDNumbering, Type: relTypeNumbering, Target: "numbering.xml"},
			{ID: relIDHeader, Type: relTypeHeader, Target: "header1.xml"},
			{ID: relIDFooter, Type: relTypeFooter, Target: "footer1.xml"},
		},
	}
	if err := r.addCover(); err != nil {
		return nil, err
	}
	if err := r.addElement(r.doc.Body, 1, 0, false); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) addRel(relType, target, mode string) string {
	id := "rId" + strconv.Itoa(r.nextRel)
	r.nextRel++
	r.rels = append(r.rels, relationshipXML{ID: id, Type: relType, Target: target, TargetMode: mode})
	return id
}

// addCover emits the cover page and its section break. The cover section
// uses wide margins and no header or footer.
func (r *Renderer) addCover() error {
	title, err := r.runs(r.doc.Title, false)
	if err != nil {
		return err
	}
	r.content = append(r.content, paragraphXML{
		Props:   &paragraphPropsXML{Style: &valXML{Val: "Title"}},
		Content: title,
	})
	subject, err := r.runs(r.doc.Subject, false)
	if err != nil {
		return err
	}
	r.content = append(r.content, paragraphXML{Content: subject})

	author, err := r.runs(r.doc.Author, false)
	if err != nil {
		return err
	}
	line := []interface{}{runXML{Content: []interface{}{text("Author: ")}}}
	line = append(line, author...)
	line = append(line, runXML{Content: []interface{}{breakXML{}}})
	line = append(line, runXML{Content: []interface{}{text(r.doc.CreationPlaceAndDate())}})
	r.content = append(r.content, paragraphXML{Content: line})

	r.content = append(r.content, paragraphXML{
		Props: &paragraphPropsXML{
			SectPr: &sectPrXML{
				PageSize: pageSizeXML{W: strconv.Itoa(pageWidth), H: strconv.Itoa(pageHeight)},
				Margins: pageMarXML{
					Top: "5760", Right: "1440", Bottom: "1440", Left: "4320",
					Header: "720", Footer: "720",
				},
			},
		},
	})
	return nil
}

// bodySectPr closes the body section and attaches the running header and
// footer.
func (r *Renderer) bodySectPr() *sectPrXML {
	return &sectPrXML{
		HeaderRef: &headerRefXML{Type: "default", RelID: relIDHeader},
		FooterRef: &footerRefXML{Type: "default", RelID: relIDFooter},
		PageSize:  pageSizeXML{W: strconv.Itoa(pageWidth), H: strconv.Itoa(pageHeight)},
		Margins: pageMarXML{
			Top: "1440", Right: "1440", Bottom: "1440", Left: "1800",
			Header: "720", Footer: "720",
		},
	}
}

// addElement dispatches one canonical block element. sectionLevel is the
// heading level for the next section (base 1); listLevel is the current
// bullet nesting depth (0 outside lists); firstInItem marks the paragraph
// that carries the bullet.
func (r *Renderer) addElement(el model.BlockElement, sectionLevel, listLevel int, firstInItem bool) error {
	switch el := el.(type) {
	case model.Section:
		return r.addSection(el, sectionLevel)
	case model.Paragraph:
		return r.addParagraph(el, listLevel, firstInItem)
	case model.Table:
		return r.addTable(el)
	case model.UnorderedList:
		for _, item := range el.Items {
			if err := r.addElement(item, sectionLevel, listLevel+1, true); err != nil {
				return err
			}
		}
		return nil
	case model.DefinitionList:
		return r.addDefinitionList(el, sectionLevel, listLevel)
	case model.Sequence:
		for _, item := range el.Items {
			if err := r.addElement(item, sectionLevel, listLevel, firstInItem); err != nil {
				return err
			}
			firstInItem = false
		}
		return nil
	case model.Image:
		return r.addImage(el)
	default:
		return fmt.Errorf("docx: %w (%T)", model.ErrUnsupportedElement, el)
	}
}

func (r *Renderer) addSection(s model.Section, level int) error {
	if level > 6 {
		level = 6
	}
	title, err := r.runs(s.Title, false)
	if err != nil {
		return err
	}
	r.content = append(r.content, paragraphXML{
		Props:   &paragraphPropsXML{Style: &valXML{Val: "Heading" + strconv.Itoa(level)}},
		Content: title,
	})
	return r.addElement(s.Body, level+1, 0, false)
}

func paragraphStyle(listLevel int, firstInItem bool) string {
	clamped := listLevel
	if clamped > 3 {
		clamped = 3
	}
	switch {
	case listLevel == 0:
		return "BodyText"
	case firstInItem && clamped == 1:
		return "ListBullet"
	case firstInItem:
		return "ListBullet" + strconv.Itoa(clamped)
	case clamped == 1:
		return "ListContinue"
	default:
		return "ListContinue" + strconv.Itoa(clamped)
	}
}

func (r *Renderer) addParagraph(p model.Paragraph, listLevel int, firstInItem bool) error {
	runs, err := r.runs(p.Text, false)
	if err != nil {
		return err
	}
	r.content = append(r.content, paragraphXML{
		Props:   &paragraphPropsXML{Style: &valXML{Val: paragraphStyle(listLevel, firstInItem)}},
		Content: runs,
	})
	return nil
}

// addDefinitionList renders the list as bulleted term/definition pairs: the
// term is the bullet paragraph, the definition continues under the same
// bullet.
func (r *Renderer) addDefinitionList(l model.DefinitionList, sectionLevel, listLevel int) error {
	items := make([]model.BlockElement, len(l.Items))
	for i, item := range l.Items {
		items[i] = model.Sequence{Items: []model.BlockElement{
			model.Paragraph{Text: item.Term},
			item.Definition,
		}}
	}
	return r.addElement(model.UnorderedList{Items: items}, sectionLevel, listLevel, false)
}

func (r *Renderer) addTable(t model.Table) error {
	cols := t.Head.ColumnCount()
	if c := t.Body.ColumnCount(); c > cols {
		cols = c
	}
	if cols == 0 {
		return nil
	}
	table := tableXML{
		Props: tablePropsXML{Style: &valXML{Val: "TableGrid"}},
	}
	colWidth := strconv.Itoa(contentWidth / cols)
	for i := 0; i < cols; i++ {
		table.Grid.Cols = append(table.Grid.Cols, gridColXML{W: colWidth})
	}
	if err := r.addElementaryTable(&table, t.Head, true); err != nil {
		return err
	}
	if err := r.addElementaryTable(&table, t.Body, false); err != nil {
		return err
	}
	r.content = append(r.content, table)
	return nil
}

func (r *Renderer) addElementaryTable(table *tableXML, t model.ElementaryTable, header bool) error {
	for ri, row := range t.Rows {
		tr := tableRowXML{}
		if header {
			tr.Props = &tableRowPrXML{Header: &nothingXML{}}
		}
		for ci, cell := range row {
			switch cell := cell.(type) {
			case model.CellSpan:
				if cell == model.ColumnSpan {
					// Covered by the anchor's gridSpan.
					continue
				}
				// Row-merge continuation slot.
				tc := tableCellXML{
					Props:   &tableCellPrXML{VMerge: &vMergeXML{}},
					Content: []interface{}{paragraphXML{}},
				}
				if span := t.ColumnSpanAt(ri, ci); span > 1 {
					tc.Props.GridSpan = &valXML{Val: strconv.Itoa(span)}
				}
				tr.Cells = append(tr.Cells, tc)
			case model.InlineElement:
				runs, err := r.runs(cell, false)
				if err != nil {
					return err
				}
				tc := tableCellXML{Content: []interface{}{paragraphXML{Content: runs}}}
				var props tableCellPrXML
				if span := t.ColumnSpanAt(ri, ci); span > 1 {
					props.GridSpan = &valXML{Val: strconv.Itoa(span)}
				}
				if t.RowSpanAt(ri, ci) > 1 {
					props.VMerge = &vMergeXML{Val: "restart"}
				}
				if props.GridSpan != nil || props.VMerge != nil {
					tc.Props = &props
				}
				tr.Cells = append(tr.Cells, tc)
			default:
				return fmt.Errorf("docx: table cell: %w (%T)", model.ErrUnsupportedElement, cell)
			}
		}
		table.Rows = append(table.Rows, tr)
	}
	return nil
}

func (r *Renderer) addImage(img model.Image) error {
	payload, err := readPayload(img.Content)
	if err != nil {
		return fmt.Errorf("docx: reading image payload: %w", err)
	}
	width, height, err := imageSize(payload, img.Format)
	if err != nil {
		return fmt.Errorf("docx: decoding image: %w", err)
	}

	name := "image" + strconv.Itoa(r.nextPic) + "." + img.Format.String()
	relID := r.addRel(relTypeImage, "media/"+name, "")
	r.media = append(r.media, mediaFile{name: name, data: payload})

	cx := int64(imageWidthEMU)
	cy := cx * int64(height) / int64(width)
	picName := "Picture " + strconv.Itoa(r.nextPic)
	drawing := drawingXML{Inline: inlineXML{
		DistT: "0", DistB: "0", DistL: "0", DistR: "0",
		Extent: extentXML{CX: cx, CY: cy},
		DocPr:  docPrXML{ID: r.nextPic, Name: picName},
		Graphic: graphicXML{Data: graphicDataXML{
			URI: nsPic,
			Pic: picXML{
				NvPicPr:  nvPicPrXML{CNvPr: docPrXML{ID: r.nextPic, Name: picName}},
				BlipFill: blipFillXML{Blip: blipXML{Embed: relID}},
				SpPr: spPrXML{
					Xfrm:     xfrmXML{Ext: extentAXML{CX: cx, CY: cy}},
					PrstGeom: prstGeomXML{Prst: "rect"},
				},
			},
		}},
	}}
	r.nextPic++

	r.content = append(r.content, paragraphXML{
		Content: []interface{}{runXML{Content: []interface{}{drawing}}},
	})
	caption, err := r.runs(img.Caption, false)
	if err != nil {
		return err
	}
	r.content = append(r.content, paragraphXML{
		Props:   &paragraphPropsXML{Style: &valXML{Val: "BodyText"}},
		Content: caption,
	})
	return nil
}

func imageSize(payload []byte, f model.ImageFormat) (int, int, error) {
	rd := bytes.NewReader(payload)
	switch f {
	case model.ImageFormatPNG:
		cfg, err := png.DecodeConfig(rd)
		return cfg.Width, cfg.Height, err
	case model.ImageFormatJPEG:
		cfg, err := jpeg.DecodeConfig(rd)
		return cfg.Width, cfg.Height, err
	case model.ImageFormatGIF:
		cfg, err := gif.DecodeConfig(rd)
		return cfg.Width, cfg.Height, err
	default:
		return 0, 0, fmt.Errorf("image format %v: %w", f, model.ErrUnsupportedElement)
	}
}

// runs flattens inline content to a run list. Emphasis is carried downward
// so nested Strong content stays bold.
func (r *Renderer) runs(el model.InlineElement, bold bool) ([]interface{}, error) {
	switch el := el.(type) {
	case model.Text:
		if el.Content == "" {
			return nil, nil
		}
		run := runXML{Content: []interface{}{text(el.Content)}}
		if bold {
			run.Props = &runPropsXML{Bold: &nothingXML{}}
		}
		return []interface{}{run}, nil
	case model.InlineSequence:
		var out []interface{}
		for _, item := range el.Items {
			runs, err := r.runs(item, bold)
			if err != nil {
				return nil, err
			}
			out = append(out, runs...)
		}
		return out, nil
	case model.Strong:
		return r.runs(el.Content, true)
	case model.Attachment:
		payload, err := readPayload(el.Content)
		if err != nil {
			return nil, fmt.Errorf("docx: reading attachment payload: %w", err)
		}
		target := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(payload)
		relID := r.addRel(relTypeHyperlink, target, "External")
		label, err := r.runs(el.Label, bold)
		if err != nil {
			return nil, err
		}
		return []interface{}{hyperlinkXML{RelID: relID, Content: label}}, nil
	default:
		return nil, fmt.Errorf("docx: %w (%T)", model.ErrUnsupportedElement, el)
	}
}

func text(s string) textXML {
	return textXML{Space: "preserve", Value: s}
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

// RenderTo writes the DOCX package to w. Part order and ZIP headers are
// fixed so output bytes are stable across renders.
func (r *Renderer) RenderTo(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		data func() ([]byte, error)
	}{
		{"[Content_Types].xml", r.contentTypes},
		{"_rels/.rels", r.packageRels},
		{"docProps/core.xml", r.coreProps},
		{"docProps/app.xml", r.appProps},
		{"word/document.xml", r.documentPart},
		{"word/styles.xml", staticPart(stylesXML)},
		{"word/numbering.xml", staticPart(numberingXML)},
		{"word/header1.xml", r.headerPart},
		{"word/footer1.xml", r.footerPart},
		{"word/_rels/document.xml.rels", r.documentRels},
	}
	for _, part := range parts {
		data, err := part.data()
		if err != nil {
			return fmt.Errorf("docx: building %s: %w", part.name, err)
		}
		if err := writeMember(zw, part.name, data); err != nil {
			return err
		}
	}
	for _, m := range r.media {
		if err := writeMember(zw, "word/media/"+m.name, m.data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("docx: closing archive: %w", err)
	}
	return nil
}

// writeMember adds a ZIP member with no timestamp, the DOCX analogue of
// rendering with a pinned clock.
func writeMember(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("docx: creating member %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("docx: writing member %s: %w", name, err)
	}
	return nil
}

func staticPart(s string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(s), nil }
}

func marshalPart(v interface{}) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), data...), nil
}

func (r *Renderer) documentPart() ([]byte, error) {
	return marshalPart(documentXML{
		NSW: nsW, NSR: nsR, NSWP: nsWP, NSA: nsA, NSPic: nsPic,
		Body: &bodyXML{Content: r.content, SectPr: r.bodySectPr()},
	})
}

func (r *Renderer) headerPart() ([]byte, error) {
	title, err := r.runs(r.doc.Title, false)
	if err != nil {
		return nil, err
	}
	subject, err := r.runs(r.doc.Subject, false)
	if err != nil {
		return nil, err
	}
	content := append(title, runXML{Content: []interface{}{breakXML{}}})
	content = append(content, subject...)
	return marshalPart(headerXML{
		NSW: nsW, NSR: nsR,
		Content: []interface{}{paragraphXML{
			Props:   &paragraphPropsXML{Style: &valXML{Val: "Header"}},
			Content: content,
		}},
	})
}

func (r *Renderer) footerPart() ([]byte, error) {
	author, err := r.runs(r.doc.Author, false)
	if err != nil {
		return nil, err
	}
	content := append(author, runXML{Content: []interface{}{breakXML{}}})
	content = append(content, runXML{Content: []interface{}{text(r.doc.CreationPlaceAndDate())}})
	return marshalPart(footerXML{
		NSW: nsW, NSR: nsR,
		Content: []interface{}{paragraphXML{
			Props:   &paragraphPropsXML{Style: &valXML{Val: "Footer"}},
			Content: content,
		}},
	})
}

func (r *Renderer) coreProps() ([]byte, error) {
	return marshalPart(corePropertiesXML{
		NSCP: nsCP, NSDC: nsDC, NSDCT: nsDCT, NSXSI: nsXSI,
		Title:    r.doc.Title.PlainString(),
		Subject:  r.doc.Subject.PlainString(),
		Creator:  r.doc.Author.PlainString(),
		Language: r.doc.LanguageCode,
		Created:  w3cDate(r.doc.CreationDate),
		Modified: w3cDate(r.doc.CreationDate),
	})
}

func (r *Renderer) appProps() ([]byte, error) {
	return marshalPart(appPropertiesXML{
		NS:          nsEP,
		Application: r.doc.Creator.PlainString(),
	})
}

func (r *Renderer) packageRels() ([]byte, error) {
	return marshalPart(relationshipsXML{
		NS: nsRel,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relTypeOfficeDocument, Target: "word/document.xml"},
			{ID: "rId2", Type: relTypeCoreProps, Target: "docProps/core.xml"},
			{ID: "rId3", Type: relTypeExtendedProps, Target: "docProps/app.xml"},
		},
	})
}

func (r *Renderer) documentRels() ([]byte, error) {
	return marshalPart(relationshipsXML{NS: nsRel, Relationships: r.rels})
}

func (r *Renderer) contentTypes() ([]byte, error) {
	return marshalPart(contentTypesXML{
		NS: nsCT,
		Defaults: []defaultTypeXML{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
			{Extension: "png", ContentType: "image/png"},
			{Extension: "jpeg", ContentType: "image/jpeg"},
			{Extension: "gif", ContentType: "image/gif"},
		},
		Overrides: []overrideTypeXML{
			{PartName: "/word/document.xml", ContentType: ctDocument},
			{PartName: "/word/styles.xml", ContentType: ctStyles},
			{PartName: "/word/numbering.xml", ContentType: ctNumbering},
			{PartName: "/word/header1.xml", ContentType: ctHeader},
			{PartName: "/word/footer1.xml", ContentType: ctFooter},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctAppProps},
		},
	})
}
