// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is used when a request has no file name.
const DefaultFileName = "recording"

const maxNameLength = 200

var nameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "-",
	"\"", "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// File is a finished export.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// FileName builds the output file name for a user supplied name: path
// separators and characters illegal on common filesystems are replaced,
// an extension already matching f is not doubled, and an empty name
// becomes DefaultFileName.
func FileName(name string, f Format) string {
	name = strings.TrimSpace(name)
	ext := f.Extension()
	if strings.EqualFold(filepath.Ext(name), ext) {
		name = name[:len(name)-len(ext)]
	}

	name = strings.Trim(nameReplacer.Replace(name), ". ")
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	if name == "" {
		name = DefaultFileName
	}
	return name + ext
}

// Save writes the file into dir and returns its path. The data goes to a
// temporary file first, so a failed save leaves nothing under the final
// name.
func (f *File) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".wavedeck-*")
	if err != nil {
		return "", fmt.Errorf("create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(f.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close: %w", err)
	}

	dst := filepath.Join(dir, f.Name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	return dst, nil
}
