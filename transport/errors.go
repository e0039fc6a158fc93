// SPDX-License-Identifier: EPL-2.0

package transport

import "errors"

var (
	// ErrStaleCallback marks an end notification from a voice that is no
	// longer current. It is logged, never returned.
	ErrStaleCallback = errors.New("end notification from superseded voice")

	ErrInvalidRate     = errors.New("playback rate must be a positive finite number")
	ErrInvalidPosition = errors.New("invalid playback position")
	ErrClosed          = errors.New("engine closed")
)
