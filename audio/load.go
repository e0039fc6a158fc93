// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Decode reads an entire encoded stream, detects its container through the
// registry and returns the decoded Buffer. Every failure wraps ErrLoad.
func Decode(r io.Reader, reg *Registry) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stream: %w", ErrLoad, err)
	}
	return decodeBytes(data, "", reg)
}

// LoadFile decodes the file at path. The container is detected from its
// content; the file extension is used as a fallback hint for formats
// without a reliable signature.
func LoadFile(path string, reg *Registry) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return decodeBytes(data, ext, reg)
}

// DecodeWith decodes r with an explicit decoder.
func DecodeWith(r io.Reader, d Decoder) (*Buffer, error) {
	src, err := d.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer src.Close()

	buf, err := ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return buf, nil
}

func decodeBytes(data []byte, hint string, reg *Registry) (*Buffer, error) {
	header := data[:min(len(data), HeaderSize)]

	_, dec, ok := reg.Detect(header)
	if !ok && hint != "" {
		dec, ok = reg.Get(hint)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrUnknownFormat)
	}
	return DecodeWith(bytes.NewReader(data), dec)
}
