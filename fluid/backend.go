package fluid

// backend executes one frame's pass sequence over fs. A backend either
// completes the whole frame or returns an error with fs left as it was.
type backend interface {
	name() string
	frame(fs *fieldSet, p SimParams) error
	close()
}

// cpuBackend runs each pass as a row-banded sweep on the host.
type cpuBackend struct {
	run        dispatcher
	forceScale float32
}

func newCPUBackend(cfg Config) *cpuBackend {
	var run dispatcher
	if cfg.Workers > 0 {
		run = newWorkerPool(cfg.Workers, cfg.GridResolution)
	} else {
		run = newGroupDispatcher(cfg.GridResolution)
	}
	return &cpuBackend{run: run, forceScale: cfg.ForceScale}
}

func (b *cpuBackend) name() string { return BackendCPU }

func (b *cpuBackend) frame(fs *fieldSet, p SimParams) error {
	b.injectSources(fs, p)
	b.advectVelocity(fs, p)
	b.advectDensity(fs, p)
	b.computeDivergence(fs)
	b.solvePressure(fs, int(p.JacobiIterations))
	b.project(fs)
	return nil
}

func (b *cpuBackend) injectSources(fs *fieldSet, p SimParams) {
	if !p.PointerActive {
		return
	}
	vel, dens := fs.velocity.Front(), fs.density.Front()
	b.run.forRows(func(y0, y1 int) {
		injectRows(vel, dens, p, b.forceScale, y0, y1)
	})
}

func (b *cpuBackend) advectVelocity(fs *fieldSet, p SimParams) {
	src, dst := fs.velocity.Front(), fs.velocity.Back()
	b.run.forRows(func(y0, y1 int) {
		advectVelocityRows(src, dst, p.Timestep, p.Dissipation, y0, y1)
	})
	fs.velocity.Swap()
}

func (b *cpuBackend) advectDensity(fs *fieldSet, p SimParams) {
	vel := fs.velocity.Front()
	src, dst := fs.density.Front(), fs.density.Back()
	b.run.forRows(func(y0, y1 int) {
		advectDensityRows(vel, src, dst, p.Timestep, p.Dissipation, y0, y1)
	})
	fs.density.Swap()
}

func (b *cpuBackend) computeDivergence(fs *fieldSet) {
	vel, div := fs.velocity.Front(), fs.divergence
	p0, p1 := fs.pressure.Front(), fs.pressure.Back()
	b.run.forRows(func(y0, y1 int) {
		divergenceRows(vel, div, p0, p1, y0, y1)
	})
}

func (b *cpuBackend) solvePressure(fs *fieldSet, iterations int) {
	div := fs.divergence
	for i := 0; i < iterations; i++ {
		src, dst := fs.pressure.Front(), fs.pressure.Back()
		b.run.forRows(func(y0, y1 int) {
			jacobiRows(src, div, dst, y0, y1)
		})
		fs.pressure.Swap()
	}
}

func (b *cpuBackend) project(fs *fieldSet) {
	pressure, vel := fs.pressure.Front(), fs.velocity.Front()
	b.run.forRows(func(y0, y1 int) {
		projectRows(pressure, vel, y0, y1)
	})
}

func (b *cpuBackend) close() { b.run.close() }
