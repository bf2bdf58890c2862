// Command chartplayer is an interactive ebiten host for the engine: it
// loads a chart, ticks it forward every frame, and renders the decoded
// drawable stream directly, with mouse input driving touch judgement.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	phasetida "github.com/phasetida/phasetida-core"
	"github.com/phasetida/phasetida-core/internal/geometry"
)

const (
	windowWidth  = 960
	windowHeight = 540
	worldScale   = windowWidth / geometry.WorldWidth
)

type game struct {
	engine   *phasetida.Engine
	meta     phasetida.Metadata
	time     float64
	paused   bool
	auto     bool
	lastFrm  frame
	mouseID  int
	wasDown  bool
	chartErr error
}

func newGame(chartPath string) *game {
	g := &game{engine: phasetida.NewEngine(), mouseID: 0}
	data, err := os.ReadFile(chartPath)
	if err != nil {
		g.chartErr = err
		return g
	}
	meta, err := g.engine.InitLineStatesFromJSON(data)
	if err != nil {
		g.chartErr = err
		return g
	}
	g.meta = meta
	g.time = meta.Offset
	return g
}

func (g *game) Update() error {
	if g.chartErr != nil {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.auto = !g.auto
	}

	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	mx, my := ebiten.CursorPosition()
	wx, wy := float32(mx)/worldScale, float32(my)/worldScale
	switch {
	case down && !g.wasDown:
		g.engine.SetTouchDown(g.mouseID, wx, wy)
	case down && g.wasDown:
		g.engine.SetTouchMove(g.mouseID, wx, wy)
	case !down && g.wasDown:
		g.engine.SetTouchUp(g.mouseID)
	}
	g.wasDown = down

	const delta = 1.0 / 60.0
	if !g.paused {
		g.time += delta
		g.engine.TickAll(g.time, delta, g.auto)
	}

	var buf bytes.Buffer
	if err := g.engine.ProcessStateToDrawable(&buf); err != nil {
		return err
	}
	f, _, err := decodeFrame(buf.Bytes())
	if err != nil {
		return err
	}
	g.lastFrm = f
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 16, 24, 255})
	if g.chartErr != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("failed to load chart: %v", g.chartErr))
		return
	}

	for _, l := range g.lastFrm.Lines {
		a := uint8(255 * clamp01(l.Alpha))
		ebitenutil.DrawLine(screen,
			float64(l.X1*worldScale), float64(l.Y1*worldScale),
			float64(l.X2*worldScale), float64(l.Y2*worldScale),
			color.RGBA{230, 230, 230, a})
	}
	for _, n := range g.lastFrm.Notes {
		size := 10.0
		col := noteColor(n.Type, n.Highlight != 0)
		ebitenutil.DrawRect(screen,
			float64(n.X*worldScale)-size/2, float64(n.Y*worldScale)-size/2, size, size, col)
	}
	for _, e := range g.lastFrm.HitEffects {
		ebitenutil.DrawRect(screen, float64(e.X*worldScale)-6, float64(e.Y*worldScale)-6, 12, 12, color.RGBA{255, 220, 80, 180})
	}
	for _, s := range g.lastFrm.Splashes {
		ebitenutil.DrawRect(screen, float64(s.X*worldScale)-4, float64(s.Y*worldScale)-4, 8, 8, color.RGBA{120, 200, 255, 150})
	}
	for _, t := range g.lastFrm.Touches {
		ebitenutil.DrawRect(screen, float64(t.X*worldScale)-3, float64(t.Y*worldScale)-3, 6, 6, color.RGBA{255, 80, 80, 255})
	}

	status := "playing"
	if g.paused {
		status = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s  auto=%v  t=%.2fs  combo=%d  score=%.0f  [space]=pause [a]=auto",
		status, g.auto, g.time, g.lastFrm.Stats.Combo, g.lastFrm.Stats.Score))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func noteColor(noteType int8, highlight bool) color.Color {
	switch noteType {
	case 1: // tap
		if highlight {
			return color.RGBA{255, 215, 64, 255}
		}
		return color.RGBA{235, 235, 235, 255}
	case 2: // drag
		return color.RGBA{120, 220, 120, 255}
	case 4: // flick
		return color.RGBA{240, 90, 90, 255}
	case 5, 6, 7: // hold head/body/end
		if highlight {
			return color.RGBA{255, 215, 64, 200}
		}
		return color.RGBA{100, 170, 255, 200}
	default:
		return color.RGBA{200, 200, 200, 255}
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func main() {
	chartPath := flag.String("file", "", "path to chart JSON (required)")
	flag.Parse()
	if *chartPath == "" {
		log.Fatal("-file is required")
	}

	g := newGame(*chartPath)
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("chartplayer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
