// SPDX-License-Identifier: EPL-2.0

package wavedeck

import "errors"

// ErrInvalidTempo is returned for tempos outside (0, MaxTempo].
var ErrInvalidTempo = errors.New("tempo out of range")
