// SPDX-License-Identifier: EPL-2.0

//go:build wavedeck_debug

package transport

// assertInvariant panics on broken transport bookkeeping in debug builds.
func assertInvariant(ok bool, msg string) {
	if !ok {
		panic("transport: invariant violated: " + msg)
	}
}
