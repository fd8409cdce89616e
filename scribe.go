// Package scribe provides a fluent API for composing structured documents
// and publishing them as HTML, DOCX, or PDF.
//
// Basic usage:
//
//	doc := model.Document{
//	    Title: model.Plain("Report"),
//	    // ...
//	}
//	warnings, err := scribe.New(doc).PDF(f)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", scribe.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := scribe.New(doc).
//	    Stylesheet("style.css").
//	    PageNumbers().
//	    HTML(f)
//
// The document is normalized once per Publisher; all backends render the
// same canonical tree, so structurally equivalent documents produce
// byte-identical output in every format. For direct control over the
// backends, the htmldoc, docx, and pdf packages are also available.
package scribe

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tsawler/scribe/docx"
	"github.com/tsawler/scribe/htmldoc"
	"github.com/tsawler/scribe/model"
	"github.com/tsawler/scribe/pdf"
)

// Warning describes a non-fatal issue found while publishing.
type Warning struct {
	Message string
}

// FormatWarnings joins warnings into a single printable string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.Message
	}
	return strings.Join(parts, "; ")
}

// Publisher renders one document to the supported output formats.
// Each configuration method returns a new Publisher instance, making it
// safe for concurrent use and allowing method chaining.
type Publisher struct {
	doc     model.Document
	options PublishOptions

	// mu guards the lazily computed fields below.
	mu         sync.Mutex
	normalized *model.Document
	normDone   bool
	normErr    error
	warnings   []Warning
}

// New creates a Publisher for doc.
func New(doc model.Document) *Publisher {
	return &Publisher{
		doc:     doc,
		options: defaultOptions(),
	}
}

// clone creates a shallow copy of the Publisher with a copy of options,
// so each chain method returns an independent instance.
func (p *Publisher) clone() *Publisher {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &Publisher{
		doc:        p.doc,
		options:    p.options.clone(),
		normalized: p.normalized,
		normDone:   p.normDone,
		normErr:    p.normErr,
		warnings:   append([]Warning(nil), p.warnings...),
	}
}

// Stylesheet sets the stylesheet URL referenced by HTML output.
//
// Example:
//
//	warnings, err := scribe.New(doc).Stylesheet("local.css").HTML(f)
func (p *Publisher) Stylesheet(url string) *Publisher {
	np := p.clone()
	np.options.stylesheet = url
	return np
}

// PageNumbers enables "Page N of M" footers in PDF output.
func (p *Publisher) PageNumbers() *Publisher {
	np := p.clone()
	np.options.pageNumbers = true
	return np
}

// ensureNormalized normalizes the document on first use.
func (p *Publisher) ensureNormalized() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.normDone {
		return p.normErr
	}
	p.normDone = true
	norm, err := p.doc.Normalized()
	if err != nil {
		p.normErr = fmt.Errorf("normalizing document: %w", err)
		return p.normErr
	}
	p.normalized = &norm
	if norm.LanguageCode != "" {
		if _, ok := norm.LanguageTag(); !ok {
			p.warnings = append(p.warnings, Warning{
				Message: fmt.Sprintf("language code %q is not a well-formed BCP 47 tag", norm.LanguageCode),
			})
		}
	}
	return nil
}

// Normalized returns the canonical form of the document.
func (p *Publisher) Normalized() (model.Document, error) {
	if err := p.ensureNormalized(); err != nil {
		return model.Document{}, err
	}
	return *p.normalized, nil
}

// Warnings returns the warnings accumulated so far.
func (p *Publisher) Warnings() []Warning {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Warning(nil), p.warnings...)
}

// HTML renders the document as a standalone HTML page.
func (p *Publisher) HTML(w io.Writer) ([]Warning, error) {
	if err := p.ensureNormalized(); err != nil {
		return p.Warnings(), err
	}
	r, err := htmldoc.NewRenderer(p.normalized, p.options.stylesheet)
	if err != nil {
		return p.Warnings(), err
	}
	return p.Warnings(), r.RenderTo(w)
}

// DOCX renders the document as an Office Open XML package.
func (p *Publisher) DOCX(w io.Writer) ([]Warning, error) {
	if err := p.ensureNormalized(); err != nil {
		return p.Warnings(), err
	}
	r, err := docx.NewRenderer(p.normalized)
	if err != nil {
		return p.Warnings(), err
	}
	return p.Warnings(), r.RenderTo(w)
}

// PDF renders the document as a PDF file.
func (p *Publisher) PDF(w io.Writer) ([]Warning, error) {
	if err := p.ensureNormalized(); err != nil {
		return p.Warnings(), err
	}
	r, err := pdf.NewRenderer(p.normalized, p.options.pageNumbers)
	if err != nil {
		return p.Warnings(), err
	}
	return p.Warnings(), r.RenderTo(w)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
