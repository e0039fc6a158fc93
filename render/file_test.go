// SPDX-License-Identifier: EPL-2.0

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{name: "", format: FormatWAV, want: "recording.wav"},
		{name: "   ", format: FormatMP3, want: "recording.mp3"},
		{name: "take", format: FormatMP3, want: "take.mp3"},
		{name: "take.MP3", format: FormatMP3, want: "take.mp3"},
		{name: "take.wav", format: FormatMP3, want: "take.wav.mp3"},
		{name: "a/b:c*d", format: FormatWAV, want: "a-b-c-d.wav"},
		{name: "../../etc/passwd", format: FormatWAV, want: "-..-etc-passwd.wav"},
		{name: "...", format: FormatWAV, want: "recording.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FileName(tt.name, tt.format))
		})
	}

	long := FileName(strings.Repeat("x", 300), FormatWAV)
	assert.Len(t, long, maxNameLength+len(".wav"))
}

func TestFile_Save(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	f := &File{Name: "take.wav", MIMEType: "audio/wav", Data: []byte("RIFF")}

	path, err := f.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "take.wav"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.Data, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestFormat(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"wav", "WAV", ".wav", " wav "} {
		f, err := ParseFormat(s)
		require.NoError(t, err, s)
		assert.Equal(t, FormatWAV, f)
	}
	f, err := ParseFormat("mp3")
	require.NoError(t, err)
	assert.Equal(t, FormatMP3, f)
	assert.Equal(t, "mp3", f.String())
	assert.Equal(t, ".mp3", f.Extension())
	assert.Equal(t, "audio/mp3", f.MIMEType())

	_, err = ParseFormat("ogg")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, "format(7)", Format(7).String())

	m, err := ParseMode("LOOP")
	require.NoError(t, err)
	assert.Equal(t, ModeLoop, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeClip, m)
	assert.Equal(t, "clip", m.String())
	_, err = ParseMode("region")
	assert.Error(t, err)
}
