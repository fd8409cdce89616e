// Package htmldoc renders a canonical document tree to HTML.
//
// The renderer builds a golang.org/x/net/html node tree and serializes it
// with html.Render, so output bytes depend only on the document value.
package htmldoc

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"

	"github.com/tsawler/scribe/model"
)

// DefaultStylesheet is the stylesheet linked from the document head unless
// the caller configures another one.
const DefaultStylesheet = "https://edwardtufte.github.io/tufte-css/tufte.css"

// Sections inside the body start at h2; h1 is the cover title.
const baseHeadingLevel = 2

// Renderer renders one document to HTML. The document must be normalized;
// the renderer never mutates it.
type Renderer struct {
	doc  *model.Document
	root *html.Node
}

// NewRenderer builds the HTML node tree for doc. An empty stylesheet URL
// omits the stylesheet link.
func NewRenderer(doc *model.Document, stylesheet string) (*Renderer, error) {
	r := &Renderer{
		doc:  doc,
		root: elem("html", attr("lang", doc.LanguageCode)),
	}
	r.addHead(stylesheet)
	if err := r.addBody(); err != nil {
		return nil, err
	}
	return r, nil
}

// RenderTo serializes the document tree to w.
func (r *Renderer) RenderTo(w io.Writer) error {
	if err := html.Render(w, r.root); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

func (r *Renderer) addHead(stylesheet string) {
	head := elem("head")
	r.root.AppendChild(head)

	head.AppendChild(elem("meta", attr("charset", "utf-8")))
	title := elem("title")
	title.AppendChild(text(r.doc.Title.PlainString()))
	head.AppendChild(title)
	head.AppendChild(elem("meta", attr("name", "description"), attr("content", r.doc.Subject.PlainString())))
	head.AppendChild(elem("meta", attr("name", "author"), attr("content", r.doc.Author.PlainString())))
	head.AppendChild(elem("meta", attr("name", "generator"), attr("content", r.doc.Creator.PlainString())))
	head.AppendChild(elem("meta", attr("name", "created"), attr("content", r.doc.CreationDate.Format("2006-01-02T15:04:05Z07:00"))))
	head.AppendChild(elem("meta", attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")))
	if stylesheet != "" {
		head.AppendChild(elem("link", attr("rel", "stylesheet"), attr("href", stylesheet)))
	}
}

func (r *Renderer) addBody() error {
	body := elem("body")
	r.root.AppendChild(body)
	article := elem("article")
	body.AppendChild(article)
	if err := r.addCover(article); err != nil {
		return err
	}
	return r.addElement(article, r.doc.Body, baseHeadingLevel)
}

func (r *Renderer) addCover(parent *html.Node) error {
	h1 := elem("h1")
	parent.AppendChild(h1)
	if err := r.addInlineElement(h1, r.doc.Title); err != nil {
		return err
	}

	subtitle := elem("p", attr("class", "subtitle"))
	parent.AppendChild(subtitle)
	if err := r.addInlineElement(subtitle, r.doc.Subject); err != nil {
		return err
	}
	subtitle.AppendChild(elem("br"))
	if err := r.addInlineElement(subtitle, r.doc.Author); err != nil {
		return err
	}
	subtitle.AppendChild(elem("br"))
	span := elem("span")
	span.AppendChild(text(r.doc.CreationPlaceAndDate()))
	subtitle.AppendChild(span)
	return nil
}

func (r *Renderer) addElement(parent *html.Node, el model.BlockElement, headingLevel int) error {
	switch el := el.(type) {
	case model.Section:
		return r.addSection(parent, el, headingLevel)
	case model.Paragraph:
		return r.addParagraph(parent, el)
	case model.Table:
		return r.addTable(parent, el)
	case model.UnorderedList:
		return r.addUnorderedList(parent, el, headingLevel)
	case model.DefinitionList:
		return r.addDefinitionList(parent, el, headingLevel)
	case model.Sequence:
		for _, item := range el.Items {
			if err := r.addElement(parent, item, headingLevel); err != nil {
				return err
			}
		}
		return nil
	case model.Image:
		return r.addImage(parent, el)
	default:
		return fmt.Errorf("htmldoc: %w (%T)", model.ErrUnsupportedElement, el)
	}
}

func (r *Renderer) addSection(parent *html.Node, s model.Section, headingLevel int) error {
	if headingLevel == baseHeadingLevel {
		section := elem("section")
		parent.AppendChild(section)
		parent = section
	}
	heading := elem("h" + strconv.Itoa(headingLevel))
	parent.AppendChild(heading)
	if err := r.addInlineElement(heading, s.Title); err != nil {
		return err
	}
	return r.addElement(parent, s.Body, headingLevel+1)
}

func (r *Renderer) addParagraph(parent *html.Node, p model.Paragraph) error {
	node := elem("p")
	parent.AppendChild(node)
	return r.addInlineElement(node, p.Text)
}

func (r *Renderer) addTable(parent *html.Node, t model.Table) error {
	table := elem("table")
	parent.AppendChild(table)
	thead := elem("thead")
	table.AppendChild(thead)
	if err := r.addElementaryTable(thead, t.Head, "th"); err != nil {
		return err
	}
	tbody := elem("tbody")
	table.AppendChild(tbody)
	return r.addElementaryTable(tbody, t.Body, "td")
}

func (r *Renderer) addElementaryTable(parent *html.Node, t model.ElementaryTable, cellTag string) error {
	for ri, row := range t.Rows {
		tr := elem("tr")
		parent.AppendChild(tr)
		for ci, cell := range row {
			inline, ok := cell.(model.InlineElement)
			if !ok {
				// Span markers produce no cell of their own.
				continue
			}
			td := elem(cellTag)
			if colSpan := t.ColumnSpanAt(ri, ci); colSpan > 1 {
				td.Attr = append(td.Attr, attr("colspan", strconv.Itoa(colSpan)))
			}
			if rowSpan := t.RowSpanAt(ri, ci); rowSpan > 1 {
				td.Attr = append(td.Attr, attr("rowspan", strconv.Itoa(rowSpan)))
			}
			tr.AppendChild(td)
			if err := r.addInlineElement(td, inline); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) addUnorderedList(parent *html.Node, l model.UnorderedList, headingLevel int) error {
	ul := elem("ul")
	parent.AppendChild(ul)
	for _, item := range l.Items {
		li := elem("li")
		ul.AppendChild(li)
		if err := r.addElement(li, item, headingLevel); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) addDefinitionList(parent *html.Node, l model.DefinitionList, headingLevel int) error {
	dl := elem("dl")
	parent.AppendChild(dl)
	for _, item := range l.Items {
		dt := elem("dt")
		dl.AppendChild(dt)
		if err := r.addInlineElement(dt, item.Term); err != nil {
			return err
		}
		dd := elem("dd")
		dl.AppendChild(dd)
		if err := r.addElement(dd, item.Definition, headingLevel); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) addImage(parent *html.Node, img model.Image) error {
	mediaType := img.Format.MediaType()
	if mediaType == "" {
		return fmt.Errorf("htmldoc: image format %v: %w", img.Format, model.ErrUnsupportedElement)
	}
	payload, err := readPayload(img.Content)
	if err != nil {
		return fmt.Errorf("htmldoc: reading image payload: %w", err)
	}
	figure := elem("figure")
	parent.AppendChild(figure)
	src := "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(payload)
	figure.AppendChild(elem("img",
		attr("src", src),
		attr("alt", img.Caption.PlainString()),
	))
	return nil
}

func (r *Renderer) addInlineElement(parent *html.Node, el model.InlineElement) error {
	switch el := el.(type) {
	case model.Text:
		span := elem("span")
		if el.Content != "" {
			span.AppendChild(text(el.Content))
		}
		parent.AppendChild(span)
		return nil
	case model.InlineSequence:
		for _, item := range el.Items {
			if err := r.addInlineElement(parent, item); err != nil {
				return err
			}
		}
		return nil
	case model.Strong:
		strong := elem("strong")
		parent.AppendChild(strong)
		return r.addInlineElement(strong, el.Content)
	case model.Attachment:
		return r.addAttachment(parent, el)
	default:
		return fmt.Errorf("htmldoc: %w (%T)", model.ErrUnsupportedElement, el)
	}
}

func (r *Renderer) addAttachment(parent *html.Node, a model.Attachment) error {
	payload, err := readPayload(a.Content)
	if err != nil {
		return fmt.Errorf("htmldoc: reading attachment payload: %w", err)
	}
	link := elem("a",
		attr("download", a.Basename),
		attr("target", "_blank"),
		attr("rel", "noopener noreferrer"),
		attr("type", "application/octet-stream"),
		attr("href", "data:application/octet-stream;base64,"+base64.StdEncoding.EncodeToString(payload)),
	)
	parent.AppendChild(link)
	return r.addInlineElement(link, a.Label)
}

// readPayload rewinds the stream and reads it fully. The same value may be
// rendered by several backends, so the cursor position is never trusted.
func readPayload(rs io.ReadSeeker) ([]byte, error) {
	if rs == nil {
		return nil, nil
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(rs)
}

func elem(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
