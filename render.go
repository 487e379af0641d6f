package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/mazznoer/colorgrad"
)

const paletteSize = 256

// newPalette samples a named colorgrad preset into a lookup table.
func newPalette(name string) ([]color.RGBA, error) {
	var grad colorgrad.Gradient
	switch strings.ToLower(name) {
	case "viridis":
		grad = colorgrad.Viridis()
	case "inferno":
		grad = colorgrad.Inferno()
	case "magma":
		grad = colorgrad.Magma()
	case "plasma":
		grad = colorgrad.Plasma()
	case "turbo":
		grad = colorgrad.Turbo()
	default:
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	palette := make([]color.RGBA, 0, paletteSize)
	for _, c := range grad.Colors(paletteSize) {
		palette = append(palette, color.RGBAModel.Convert(c).(color.RGBA))
	}
	return palette, nil
}

// Draw maps the density field through the palette and shows it.
func (g *Game) Draw(screen *ebiten.Image) {
	view := g.pipeline.Density()
	if err := view.Fill(g.density); err == nil {
		for i, v := range g.density {
			idx := int(v * (paletteSize - 1))
			if idx < 0 || v != v {
				idx = 0
			} else if idx > paletteSize-1 {
				idx = paletteSize - 1
			}
			c := g.palette[idx]
			base := i * 4
			g.pixels[base] = c.R
			g.pixels[base+1] = c.G
			g.pixels[base+2] = c.B
			g.pixels[base+3] = 255
		}
	}
	screen.WritePixels(g.pixels)

	if *debugFlag {
		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		stepMS := g.lastStepDuration.Seconds() * 1000
		state := ""
		if g.paused {
			state = " (paused)"
		}
		msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f%s\nSolver: %s, %d Jacobi (+/-)\nStep: %.2f ms  frames %d  dropped %d\nMass: %.2f  |div|: %.4f  max speed: %.2f",
			fps, tps, state, g.pipeline.BackendName(), g.jacobi, stepMS,
			g.pipeline.Frames(), g.pipeline.Dropped(),
			g.stats.DensitySum, g.stats.DivergenceL2, g.stats.MaxSpeed)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout maps the window onto the grid one cell per logical pixel.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.GridResolution, g.cfg.GridResolution
}
