// Package pdf renders a canonical document tree to a PDF file.
//
// The writer targets A4 pages with the built-in Helvetica faces and keeps
// the output reproducible: dictionary keys are sorted, content streams are
// uncompressed, object numbers are assigned in a fixed order and the only
// time source is the document's creation date. Rendering the same document
// twice yields identical bytes.
//
// Sections become outline entries, attachments become FileAttachment
// annotations with embedded file streams, and images are embedded as
// XObjects (JPEG data pass through untouched, PNG and GIF are re-encoded
// as Flate-compressed RGB).
package pdf
