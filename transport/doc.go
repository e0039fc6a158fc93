// SPDX-License-Identifier: EPL-2.0

// Package transport implements the playback engine: the clock and state
// machine that decide where in the loaded buffer playback is, independent of
// what the output device believes.
//
// Position is kept in audio-time, seconds of source material. Every
// completed stretch of playback is folded into an accumulator at the rate
// that was active while it played, and the position of the stretch in
// progress is derived from the clock:
//
//	position = paused ? played : played + (now - start) * rate
//
// Changing the rate folds the elapsed time at the old rate and keeps the
// voice running, so the reported position never jumps. Seeking discards the
// stretch in progress and starts a fresh voice.
//
// The engine owns at most one device voice. Each voice is watched by a
// goroutine; when it finishes, the engine compares its ID against the voice
// that is current, and ignores notifications from voices it has already
// replaced. A voice that ends within the end tolerance of the buffer's
// duration pauses the engine and emits EventEnded.
//
// Loop-back is driven by Tick, which a caller runs on a fixed cadence,
// usually through RunTicker.
package transport
