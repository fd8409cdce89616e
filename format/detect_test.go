package format

import (
	"bytes"
	"testing"

	"github.com/tsawler/scribe/model"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     model.ImageFormat
	}{
		{"photo.png", model.ImageFormatPNG},
		{"photo.PNG", model.ImageFormatPNG},
		{"photo.jpg", model.ImageFormatJPEG},
		{"photo.jpeg", model.ImageFormatJPEG},
		{"anim.gif", model.ImageFormatGIF},
		{"doc.pdf", model.ImageFormatUnknown},
		{"noext", model.ImageFormatUnknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want model.ImageFormat
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, model.ImageFormatPNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, model.ImageFormatJPEG},
		{"gif87", []byte("GIF87a...."), model.ImageFormatGIF},
		{"gif89", []byte("GIF89a...."), model.ImageFormatGIF},
		{"garbage", []byte{0x00, 0x01, 0x02, 0x03}, model.ImageFormatUnknown},
		{"short", []byte{0x89}, model.ImageFormatUnknown},
		{"empty", nil, model.ImageFormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReaderRewinds(t *testing.T) {
	r := bytes.NewReader([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02})
	got, err := DetectFromReader(r)
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != model.ImageFormatJPEG {
		t.Errorf("DetectFromReader() = %v, want JPEG", got)
	}
	// The payload must be readable from the start afterwards.
	buf := make([]byte, 2)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("Read after detect: %v", err)
	}
	if buf[0] != 0xFF || buf[1] != 0xD8 {
		t.Errorf("reader not rewound: got % X", buf)
	}
}
