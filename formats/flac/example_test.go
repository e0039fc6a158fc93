// SPDX-License-Identifier: EPL-2.0

package flac_test

import (
	"fmt"

	"github.com/ik5/wavedeck/formats/flac"
)

func ExampleDecoder_Match() {
	var d flac.Decoder
	fmt.Println(d.Match([]byte("fLaC\x00\x00\x00\x22")))

	// Output:
	// true
}
