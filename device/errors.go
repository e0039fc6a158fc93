// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	// ErrDevice reports an output that could not be opened or refused a voice.
	ErrDevice = errors.New("audio device error")

	ErrInvalidRate = errors.New("playback rate must be positive")
)
