// SPDX-License-Identifier: EPL-2.0

// Package device abstracts the audio output and the clock the playback
// engine runs against.
//
// An Output starts a Voice: one buffer playing from an offset at a rate.
// A Voice can change rate in place, can be stopped, and closes its Done
// channel once it produces no more sound. Voices carry a process-unique ID
// so a late completion can be matched against whatever is playing now.
//
// Speaker is the real output, built on the beep speaker. Mock and
// ManualClock are deterministic doubles for tests of code that drives an
// Output.
package device
