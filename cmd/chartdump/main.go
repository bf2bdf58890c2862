// Command chartdump runs a chart through the engine in autoplay mode,
// ticking it to completion, and reports the final serialized frame size,
// optionally dumping the full concatenated binary drawable stream.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	phasetida "github.com/phasetida/phasetida-core"
)

func main() {
	var (
		chartPath = flag.String("file", "", "path to chart JSON (required)")
		fps       = flag.Float64("fps", 60.0, "ticks per second to simulate")
		auto      = flag.Bool("auto", true, "run in autoplay mode (notes settle on schedule, no touch input)")
		framesOut = flag.String("frames-out", "", "optional path to write the concatenated binary drawable stream")
	)
	flag.Parse()

	if *chartPath == "" {
		log.Fatal("-file is required")
	}
	data, err := os.ReadFile(*chartPath)
	if err != nil {
		log.Fatal(err)
	}

	e := phasetida.NewEngine()
	meta, err := e.InitLineStatesFromJSON(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("loaded chart: format=%d offset=%.3fs length=%.3fs\n", meta.FormatVersion, meta.Offset, meta.LengthInSecond)

	delta := 1.0 / *fps
	var frames bytes.Buffer
	for t := 0.0; t <= meta.LengthInSecond; t += delta {
		e.TickAll(t, delta, *auto)
		if *framesOut != "" {
			if err := e.ProcessStateToDrawable(&frames); err != nil {
				log.Fatal(err)
			}
		}
	}

	var out bytes.Buffer
	if err := e.ProcessStateToDrawable(&out); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("final frame: %d bytes\n", out.Len())

	if *framesOut != "" {
		if err := os.WriteFile(*framesOut, frames.Bytes(), 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d bytes of drawable frames to %s\n", frames.Len(), *framesOut)
	}
}
