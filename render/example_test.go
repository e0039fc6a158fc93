// SPDX-License-Identifier: EPL-2.0

package render_test

import (
	"context"
	"fmt"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/dsp"
	"github.com/ik5/wavedeck/render"
)

func ExampleFileName() {
	fmt.Println(render.FileName("", render.FormatWAV))
	fmt.Println(render.FileName("take 2.MP3", render.FormatMP3))
	fmt.Println(render.FileName("drums/loop", render.FormatWAV))
	// Output:
	// recording.wav
	// take 2.mp3
	// drums-loop.wav
}

func ExampleSelectRange() {
	region := audio.Region{Start: 2, End: 5}

	fmt.Println(render.SelectRange(render.ModeLoop, 30, region, true))
	fmt.Println(render.SelectRange(render.ModeLoop, 30, region, false))
	// Output:
	// [2.000s, 5.000s]
	// [0.000s, 30.000s]
}

func ExampleRender() {
	buf, _ := audio.NewBuffer(8000, 2, 80000)

	out, err := render.Render(context.Background(), buf, render.Request{
		Range:  audio.Region{Start: 0, End: 10},
		Rate:   2,
		Params: dsp.DefaultParams(),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.1fs\n", out.Duration())
	// Output: 5.0s
}
