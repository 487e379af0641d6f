package main

import (
	"math"
	"time"

	"fluidsim/fluid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// enableAutoStir drives the pointer along a scripted path for duration and
// calls done when it ends.
func (g *Game) enableAutoStir(duration time.Duration, done func()) {
	g.autoStir = true
	g.autoStirDeadline = time.Now().Add(duration)
	g.autoStirAngle = g.autoStirRand.Float64() * 2 * math.Pi
	g.autoStirDone = done
}

// pointerEvent selects either the scripted or the live pointer sample.
func (g *Game) pointerEvent() *fluid.PointerEvent {
	if g.autoStir {
		if time.Now().After(g.autoStirDeadline) {
			g.autoStir = false
			if g.autoStirDone != nil {
				g.autoStirDone()
				g.autoStirDone = nil
			}
			return nil
		}
		return g.autoStirEvent()
	}
	return g.manualPointerEvent()
}

// manualPointerEvent reports the cursor while it moves or the left button is
// held, and nil when nothing changed since the last tick.
func (g *Game) manualPointerEvent() *fluid.PointerEvent {
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	moved := x != g.lastCursorX || y != g.lastCursorY
	changed := moved || pressed != g.lastPressed
	g.lastCursorX, g.lastCursorY, g.lastPressed = x, y, pressed
	if !changed && !pressed {
		return nil
	}
	return &fluid.PointerEvent{X: float64(x), Y: float64(y), Pressed: pressed}
}

// autoStirEvent circles the pointer around the grid centre with a little
// radial jitter, keeping the button held.
func (g *Game) autoStirEvent() *fluid.PointerEvent {
	n := float64(g.cfg.GridResolution)
	g.autoStirAngle += autoStirAngularVelocity
	radius := n * autoStirRadiusFraction * (0.9 + 0.2*g.autoStirRand.Float64())
	return &fluid.PointerEvent{
		X:       n/2 + radius*math.Cos(g.autoStirAngle),
		Y:       n/2 + radius*math.Sin(g.autoStirAngle),
		Pressed: true,
	}
}

// handleDebugControls processes the reset, pause and iteration hotkeys.
func (g *Game) handleDebugControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.pipeline.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if !*debugFlag {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustJacobi(-jacobiStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustJacobi(jacobiStep)
	}
}

// adjustJacobi changes the per-frame iteration count within bounds.
func (g *Game) adjustJacobi(delta int) {
	g.jacobi += delta
	if g.jacobi < minJacobi {
		g.jacobi = minJacobi
	} else if g.jacobi > maxJacobi {
		g.jacobi = maxJacobi
	}
}
