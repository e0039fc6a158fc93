// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrLoad wraps every decode failure. The caller's previous buffer stays
	// in place when a load fails.
	ErrLoad = errors.New("load error")

	// ErrUnknownFormat is returned when no registered decoder recognizes
	// the stream.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrEmptyAudio is returned when a stream decodes to zero frames.
	ErrEmptyAudio = errors.New("stream contains no audio")

	// ErrInvalidFormat is returned for non-positive sample rates or channel
	// counts.
	ErrInvalidFormat = errors.New("invalid sample rate or channel count")

	// ErrNoBuffer is returned by operations that need a loaded buffer.
	ErrNoBuffer = errors.New("no audio buffer loaded")

	// ErrInvalidRegion is returned for regions violating 0 <= start < end <= duration.
	ErrInvalidRegion = errors.New("invalid region")
)
