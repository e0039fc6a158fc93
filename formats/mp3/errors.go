// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	ErrUnsupportedBitrate = errors.New("unsupported MP3 bitrate")
	ErrInvalidLayout      = errors.New("invalid MP3 stream layout")
	ErrEncoderFlushed     = errors.New("block encoder already flushed")
	ErrEmptyBuffer        = errors.New("nothing to encode")
)
