// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format streams with
// github.com/go-audio/aiff.
//
// Uncompressed AIFF and AIFC files with 8, 16, 24 or 32-bit signed PCM are
// supported. Samples are normalized to [-1.0, 1.0) by the full scale of the
// stored bit depth. go-audio needs to seek between chunks, so a reader that
// is not an io.ReadSeeker is buffered in memory first.
package aiff
