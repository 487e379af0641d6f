package main

import (
	"flag"
	"time"

	"fluidsim/fluid"
)

// Command-line flags for the solver session and the front end.
var (
	// gridFlag sets the square grid resolution N.
	gridFlag = flag.Int("grid", defaultGrid, "grid resolution (N×N cells)")

	// jacobiFlag sets the number of pressure relaxation sweeps per frame.
	jacobiFlag = flag.Int("jacobi", defaultJacobi, "Jacobi pressure iterations per frame")

	// timestepFlag scales the backtrace distance of advection.
	timestepFlag = flag.Float64("dt", defaultTimestep, "advection timestep (grid cells per unit velocity)")

	dissipationFlag = flag.Float64("dissipation", defaultDissipation, "multiplicative decay applied to velocity and density each frame (0-1)")

	// viscosityFlag is accepted for completeness; no pass applies it.
	viscosityFlag = flag.Float64("viscosity", 0, "reserved; explicit diffusion is not applied")

	forceFlag  = flag.Float64("force", defaultForcingStrength, "dye injected at the pointer per frame")
	radiusFlag = flag.Float64("radius", defaultForcingRadius, "Gaussian forcing radius in grid cells")

	// forceScaleFlag scales pointer motion before it is added to velocity.
	forceScaleFlag = flag.Float64("force-scale", defaultForceScale, "velocity added per cell of pointer motion")

	// workersFlag selects a persistent worker pool size; 0 uses a bounded
	// goroutine group per pass.
	workersFlag = flag.Int("workers", 0, "persistent solver workers (0 = per-pass goroutine group)")

	// backendFlag chooses where the passes run.
	backendFlag = flag.String("backend", fluid.BackendCPU, `solver backend: "cpu" or "opencl" (requires -tags opencl)`)

	paletteFlag = flag.String("palette", defaultPalette, "density colour map: viridis, inferno, magma, plasma or turbo")

	// debugFlag enables the FPS and solver overlay and the iteration hotkeys.
	debugFlag = flag.Bool("debug", false, "show FPS and solver overlay")

	statsIntervalFlag = flag.Duration("stats-interval", defaultStatsInterval, "how often to log field statistics (0 disables)")

	// recordDefaultPGO stirs the fluid automatically while capturing default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "stir automatically for 15s while capturing default.pgo")
)

// configFromFlags assembles the solver session from parsed flags.
func configFromFlags() fluid.Config {
	return fluid.Config{
		GridResolution:   *gridFlag,
		JacobiIterations: *jacobiFlag,
		Timestep:         float32(*timestepFlag),
		Viscosity:        float32(*viscosityFlag),
		Dissipation:      float32(*dissipationFlag),
		ForcingStrength:  float32(*forceFlag),
		ForcingRadius:    float32(*radiusFlag),
		ForceScale:       float32(*forceScaleFlag),
		Workers:          *workersFlag,
		Backend:          *backendFlag,
	}
}

// statsInterval returns the logging period, or zero when disabled.
func statsInterval() time.Duration {
	if *statsIntervalFlag < 0 {
		return 0
	}
	return *statsIntervalFlag
}
