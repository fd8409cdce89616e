package pdf

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Object is a PDF object that can encode itself into file syntax.
type Object interface {
	encode(buf *bytes.Buffer)
}

// Null represents a PDF null object.
type Null struct{}

func (Null) encode(buf *bytes.Buffer) { buf.WriteString("null") }

// Bool represents a PDF boolean.
type Bool bool

func (b Bool) encode(buf *bytes.Buffer) {
	if b {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
}

// Int represents a PDF integer.
type Int int64

func (i Int) encode(buf *bytes.Buffer) {
	buf.WriteString(strconv.FormatInt(int64(i), 10))
}

// Real represents a PDF real number, written with two decimal places so
// output bytes do not depend on float formatting quirks.
type Real float64

func (r Real) encode(buf *bytes.Buffer) {
	buf.WriteString(strconv.FormatFloat(float64(r), 'f', 2, 64))
}

// String represents a PDF literal string. Runes outside Latin-1 are
// replaced, matching the WinAnsi encoding of the built-in fonts.
type String string

func (s String) encode(buf *bytes.Buffer) {
	buf.WriteByte('(')
	buf.Write(encodeText(string(s)))
	buf.WriteByte(')')
}

func encodeText(s string) []byte {
	var out []byte
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			out = append(out, '\\', byte(r))
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			if r < 256 {
				out = append(out, byte(r))
			} else {
				out = append(out, '?')
			}
		}
	}
	return out
}

// Name represents a PDF name.
type Name string

func (n Name) encode(buf *bytes.Buffer) {
	buf.WriteByte('/')
	buf.WriteString(string(n))
}

// Array represents a PDF array.
type Array []Object

func (a Array) encode(buf *bytes.Buffer) {
	buf.WriteByte('[')
	for i, obj := range a {
		if i > 0 {
			buf.WriteByte(' ')
		}
		obj.encode(buf)
	}
	buf.WriteByte(']')
}

// Dict represents a PDF dictionary. Keys are written in sorted order so a
// dictionary always encodes to the same bytes.
type Dict map[string]Object

func (d Dict) encode(buf *bytes.Buffer) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf.WriteString("<<")
	for _, k := range keys {
		buf.WriteByte('/')
		buf.WriteString(k)
		buf.WriteByte(' ')
		d[k].encode(buf)
	}
	buf.WriteString(">>")
}

// Stream represents a PDF stream object. Length is filled in at encode
// time from the data.
type Stream struct {
	Dict Dict
	Data []byte
}

func (s *Stream) encode(buf *bytes.Buffer) {
	d := Dict{}
	for k, v := range s.Dict {
		d[k] = v
	}
	d["Length"] = Int(len(s.Data))
	d.encode(buf)
	buf.WriteString("\nstream\n")
	buf.Write(s.Data)
	buf.WriteString("\nendstream")
}

// Ref represents an indirect object reference.
type Ref struct {
	Number int
}

func (r Ref) encode(buf *bytes.Buffer) {
	buf.WriteString(strconv.Itoa(r.Number))
	buf.WriteString(" 0 R")
}

// file accumulates indirect objects and writes the assembled PDF. Object
// numbers are assigned sequentially, so the cross-reference table is a
// function of the objects alone.
type file struct {
	objects []Object
}

func (f *file) add(obj Object) Ref {
	f.objects = append(f.objects, obj)
	return Ref{Number: len(f.objects)}
}

// reserve allocates an object number to be filled in later with set.
func (f *file) reserve() Ref {
	return f.add(nil)
}

func (f *file) set(ref Ref, obj Object) {
	f.objects[ref.Number-1] = obj
}

func (f *file) writeTo(w io.Writer, root, info Ref) error {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(f.objects))
	for i, obj := range f.objects {
		if obj == nil {
			return fmt.Errorf("pdf: object %d never assigned", i+1)
		}
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		obj.encode(&buf)
		buf.WriteString("\nendobj\n")
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(f.objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	trailer := Dict{
		"Size": Int(len(f.objects) + 1),
		"Root": root,
		"Info": info,
	}
	buf.WriteString("trailer\n")
	trailer.encode(&buf)
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	_, err := w.Write(buf.Bytes())
	return err
}
