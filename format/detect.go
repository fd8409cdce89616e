// Package format provides image payload format detection for the scribe
// library.
package format

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/scribe/model"
)

// Detect determines the image format from a filename extension.
func Detect(filename string) model.ImageFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return model.ImageFormatPNG
	case ".jpg", ".jpeg":
		return model.ImageFormatJPEG
	case ".gif":
		return model.ImageFormatGIF
	default:
		return model.ImageFormatUnknown
	}
}

// DetectFromMagic checks payload magic bytes to determine the image format.
// This is more reliable than extension-based detection.
func DetectFromMagic(data []byte) model.ImageFormat {
	switch {
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return model.ImageFormatPNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return model.ImageFormatJPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return model.ImageFormatGIF
	default:
		return model.ImageFormatUnknown
	}
}

// DetectFromReader sniffs the leading bytes of r and rewinds it to the
// start, so the payload can still be handed to a renderer.
func DetectFromReader(r io.ReadSeeker) (model.ImageFormat, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return model.ImageFormatUnknown, fmt.Errorf("seeking payload: %w", err)
	}
	magic := make([]byte, 8)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return model.ImageFormatUnknown, fmt.Errorf("reading payload magic: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return model.ImageFormatUnknown, fmt.Errorf("rewinding payload: %w", err)
	}
	return DetectFromMagic(magic[:n]), nil
}
