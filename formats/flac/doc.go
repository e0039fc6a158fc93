// SPDX-License-Identifier: EPL-2.0

// Package flac decodes Free Lossless Audio Codec streams through the beep
// FLAC decoder.
//
// beep streams always carry stereo pairs; the adapter here restores the
// stream's real channel count, so a mono FLAC file decodes to a one
// channel audio.Source.
package flac
