// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/ik5/wavedeck/audio"
)

// Format is an export container/codec.
type Format int

const (
	FormatWAV Format = iota
	FormatMP3
)

type formatInfo struct {
	name string
	mime string
	ext  string
}

var formats = map[Format]formatInfo{
	FormatWAV: {name: "wav", mime: "audio/wav", ext: ".wav"},
	FormatMP3: {name: "mp3", mime: "audio/mp3", ext: ".mp3"},
}

func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// MIMEType returns the media type of files in this format.
func (f Format) MIMEType() string { return formats[f].mime }

// Extension returns the file extension, including the dot.
func (f Format) Extension() string { return formats[f].ext }

// ParseFormat accepts a format name or extension, in any case.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	for f, info := range formats {
		if info.name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Mode selects what part of the buffer is exported.
type Mode int

const (
	// ModeClip exports the whole buffer.
	ModeClip Mode = iota
	// ModeLoop exports the loop region, or the whole buffer when there is
	// none.
	ModeLoop
)

func (m Mode) String() string {
	switch m {
	case ModeClip:
		return "clip"
	case ModeLoop:
		return "loop"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clip", "":
		return ModeClip, nil
	case "loop":
		return ModeLoop, nil
	default:
		return 0, fmt.Errorf("unknown export mode %q", s)
	}
}

// SelectRange returns the range to export for mode: the loop region in
// ModeLoop when one exists, otherwise [0, duration].
func SelectRange(mode Mode, duration float64, region audio.Region, hasRegion bool) audio.Region {
	if mode == ModeLoop && hasRegion {
		return region
	}
	return audio.Region{Start: 0, End: duration}
}
