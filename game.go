package main

import (
	"errors"
	"image/color"
	"log"
	"math/rand"
	"time"

	"fluidsim/fluid"
)

// Game wires the solver pipeline to ebiten's update and draw loop.
type Game struct {
	cfg      fluid.Config
	pipeline *fluid.Pipeline
	input    *fluid.InputBridge

	jacobi int
	paused bool

	lastStepDuration time.Duration
	lastStatsLog     time.Time
	stats            fluid.FrameStats

	lastCursorX, lastCursorY int
	lastPressed              bool

	autoStir         bool
	autoStirDeadline time.Time
	autoStirAngle    float64
	autoStirRand     *rand.Rand
	autoStirDone     func()

	palette []color.RGBA
	density []float32
	pixels  []byte
}

// newGame builds the pipeline for cfg and the display buffers.
func newGame(cfg fluid.Config) (*Game, error) {
	palette, err := newPalette(*paletteFlag)
	if err != nil {
		return nil, err
	}
	pipeline, err := fluid.NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	if name := pipeline.DeviceName(); name != "" {
		log.Printf("OpenCL solver enabled (device: %s)", name)
	} else {
		log.Printf("%s solver enabled (%d×%d, %d Jacobi iterations)",
			pipeline.BackendName(), cfg.GridResolution, cfg.GridResolution, cfg.JacobiIterations)
	}
	n := cfg.GridResolution
	return &Game{
		cfg:          cfg,
		pipeline:     pipeline,
		input:        fluid.NewInputBridge(1, 1),
		jacobi:       cfg.JacobiIterations,
		lastCursorX:  -1,
		lastCursorY:  -1,
		autoStirRand: rand.New(rand.NewSource(time.Now().UnixNano())),
		palette:      palette,
		density:      make([]float32, n*n),
		pixels:       make([]byte, n*n*4),
	}, nil
}

// Update samples the pointer and advances the solver by one frame. A frame
// the device fails is logged and dropped; the next tick retries from the last
// completed state.
func (g *Game) Update() error {
	g.handleDebugControls()
	if g.paused {
		return nil
	}

	forcing := g.input.Sample(g.pointerEvent())
	params := g.cfg.Params(forcing)
	params.JacobiIterations = uint32(g.jacobi)

	start := time.Now()
	if err := g.pipeline.Step(params); err != nil {
		if errors.Is(err, fluid.ErrDeviceTransient) {
			log.Printf("Dropping frame %d: %v", g.pipeline.Frames()+1, err)
			return nil
		}
		return err
	}
	g.lastStepDuration = time.Since(start)
	g.logFrameStats()
	return nil
}

// logFrameStats refreshes the cached statistics and logs them at most once
// per stats interval.
func (g *Game) logFrameStats() {
	interval := statsInterval()
	if interval == 0 && !*debugFlag {
		return
	}
	now := time.Now()
	if now.Sub(g.lastStatsLog) < max(interval, time.Second) {
		return
	}
	g.stats = g.pipeline.Stats()
	g.lastStatsLog = now
	if interval == 0 {
		return
	}
	log.Printf("Frame %d (dropped %d): mass %.2f max %.3f |div| %.4f max speed %.3f step %.2f ms",
		g.stats.Frame, g.pipeline.Dropped(), g.stats.DensitySum, g.stats.DensityMax,
		g.stats.DivergenceL2, g.stats.MaxSpeed, g.lastStepDuration.Seconds()*1000)
}

// Close releases solver resources.
func (g *Game) Close() {
	g.pipeline.Close()
}
