package docx

import "encoding/xml"

// XML namespaces used in DOCX parts.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsDC  = "http://purl.org/dc/elements/1.1/"
	nsCP  = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDCT = "http://purl.org/dc/terms/"
	nsXSI = "http://www.w3.org/2001/XMLSchema-instance"
	nsCT  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsEP  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n"

// documentXML represents word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	NSWP    string   `xml:"xmlns:wp,attr"`
	NSA     string   `xml:"xmlns:a,attr"`
	NSPic   string   `xml:"xmlns:pic,attr"`
	Body    *bodyXML `xml:"w:body"`
}

// bodyXML holds paragraphs, tables and the closing section properties in
// document order.
type bodyXML struct {
	Content []interface{}
	SectPr  *sectPrXML `xml:"w:sectPr,omitempty"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName xml.Name           `xml:"w:p"`
	Props   *paragraphPropsXML `xml:"w:pPr,omitempty"`
	Content []interface{}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>). Field order
// follows the CT_PPr schema sequence.
type paragraphPropsXML struct {
	Style     *valXML     `xml:"w:pStyle,omitempty"`
	PageBreak *nothingXML `xml:"w:pageBreakBefore,omitempty"`
	SectPr    *sectPrXML  `xml:"w:sectPr,omitempty"`
}

// valXML is the generic single-attribute property element.
type valXML struct {
	Val string `xml:"w:val,attr"`
}

// nothingXML marshals to an empty element; used for boolean toggles.
type nothingXML struct{}

// runXML represents a text run (<w:r>).
type runXML struct {
	XMLName xml.Name     `xml:"w:r"`
	Props   *runPropsXML `xml:"w:rPr,omitempty"`
	Content []interface{}
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold *nothingXML `xml:"w:b,omitempty"`
}

// textXML represents literal run text (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// breakXML represents a line break (<w:br>).
type breakXML struct {
	XMLName xml.Name `xml:"w:br"`
}

// hyperlinkXML represents an external hyperlink (<w:hyperlink>).
type hyperlinkXML struct {
	XMLName xml.Name `xml:"w:hyperlink"`
	RelID   string   `xml:"r:id,attr"`
	Content []interface{}
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName xml.Name      `xml:"w:tbl"`
	Props   tablePropsXML `xml:"w:tblPr"`
	Grid    tableGridXML  `xml:"w:tblGrid"`
	Rows    []tableRowXML
}

type tablePropsXML struct {
	Style *valXML `xml:"w:tblStyle,omitempty"`
}

type tableGridXML struct {
	Cols []gridColXML
}

type gridColXML struct {
	XMLName xml.Name `xml:"w:gridCol"`
	W       string   `xml:"w:w,attr"`
}

type tableRowXML struct {
	XMLName xml.Name        `xml:"w:tr"`
	Props   *tableRowPrXML  `xml:"w:trPr,omitempty"`
	Cells   []tableCellXML
}

type tableRowPrXML struct {
	Header *nothingXML `xml:"w:tblHeader,omitempty"`
}

type tableCellXML struct {
	XMLName xml.Name        `xml:"w:tc"`
	Props   *tableCellPrXML `xml:"w:tcPr,omitempty"`
	Content []interface{}
}

type tableCellPrXML struct {
	GridSpan *valXML    `xml:"w:gridSpan,omitempty"`
	VMerge   *vMergeXML `xml:"w:vMerge,omitempty"`
}

type vMergeXML struct {
	Val string `xml:"w:val,attr,omitempty"`
}

// sectPrXML represents section properties (<w:sectPr>).
type sectPrXML struct {
	HeaderRef *headerRefXML `xml:"w:headerReference,omitempty"`
	FooterRef *footerRefXML `xml:"w:footerReference,omitempty"`
	PageSize  pageSizeXML   `xml:"w:pgSz"`
	Margins   pageMarXML    `xml:"w:pgMar"`
}

type headerRefXML struct {
	Type  string `xml:"w:type,attr"`
	RelID string `xml:"r:id,attr"`
}

type footerRefXML struct {
	Type  string `xml:"w:type,attr"`
	RelID string `xml:"r:id,attr"`
}

type pageSizeXML struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type pageMarXML struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
}

// headerXML represents word/header1.xml; footerXML word/footer1.xml.
type headerXML struct {
	XMLName xml.Name `xml:"w:hdr"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Content []interface{}
}

type footerXML struct {
	XMLName xml.Name `xml:"w:ftr"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Content []interface{}
}

// drawingXML represents an inline picture (<w:drawing>).
type drawingXML struct {
	XMLName xml.Name  `xml:"w:drawing"`
	Inline  inlineXML `xml:"wp:inline"`
}

type inlineXML struct {
	DistT   string     `xml:"distT,attr"`
	DistB   string     `xml:"distB,attr"`
	DistL   string     `xml:"distL,attr"`
	DistR   string     `xml:"distR,attr"`
	Extent  extentXML  `xml:"wp:extent"`
	DocPr   docPrXML   `xml:"wp:docPr"`
	Graphic graphicXML `xml:"a:graphic"`
}

type extentXML struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type docPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type graphicXML struct {
	Data graphicDataXML `xml:"a:graphicData"`
}

type graphicDataXML struct {
	URI string `xml:"uri,attr"`
	Pic picXML `xml:"pic:pic"`
}

type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"pic:nvPicPr"`
	BlipFill blipFillXML `xml:"pic:blipFill"`
	SpPr     spPrXML     `xml:"pic:spPr"`
}

type nvPicPrXML struct {
	CNvPr    docPrXML   `xml:"pic:cNvPr"`
	CNvPicPr nothingXML `xml:"pic:cNvPicPr"`
}

type blipFillXML struct {
	Blip    blipXML    `xml:"a:blip"`
	Stretch stretchXML `xml:"a:stretch"`
}

type blipXML struct {
	Embed string `xml:"r:embed,attr"`
}

type stretchXML struct {
	FillRect nothingXML `xml:"a:fillRect"`
}

type spPrXML struct {
	Xfrm     xfrmXML     `xml:"a:xfrm"`
	PrstGeom prstGeomXML `xml:"a:prstGeom"`
}

type xfrmXML struct {
	Off offXML    `xml:"a:off"`
	Ext extentAXML `xml:"a:ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extentAXML struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type prstGeomXML struct {
	Prst  string     `xml:"prst,attr"`
	AvLst nothingXML `xml:"a:avLst"`
}
