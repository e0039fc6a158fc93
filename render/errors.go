// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	// ErrRange is returned for empty, inverted or out-of-bounds ranges.
	ErrRange = errors.New("invalid export range")

	// ErrEncode wraps every failure of the encode step.
	ErrEncode = errors.New("encode failed")

	// ErrUnsupportedFormat is returned, wrapped in ErrEncode, when no
	// encoder is registered for the requested format.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	ErrExportInProgress = errors.New("another export is in progress")
	ErrInvalidRate      = errors.New("export rate must be positive and finite")
)
