package fluid

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// rowBand is a half-open range of grid rows [y0, y1) handled by one worker.
type rowBand struct{ y0, y1 int }

// dispatcher runs fn over every row of the grid, split into bands, and returns
// only once every band has finished. That return is the barrier between passes.
type dispatcher interface {
	forRows(fn func(y0, y1 int))
	close()
}

// splitRows divides rows into count contiguous bands. Trailing bands are empty
// when there are more workers than rows.
func splitRows(rows, count int) []rowBand {
	if count < 1 {
		count = 1
	}
	per := (rows + count - 1) / count
	bands := make([]rowBand, count)
	for i := range bands {
		y0 := min(i*per, rows)
		y1 := min(y0+per, rows)
		bands[i] = rowBand{y0: y0, y1: y1}
	}
	return bands
}

// workerPool keeps one goroutine per band alive for the whole session. Each
// forRows call bumps step, wakes the workers and waits until pending drops to
// zero.
type workerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	bands   []rowBand
	job     func(y0, y1 int)
	step    int
	pending int
	closed  bool
}

func newWorkerPool(count, rows int) *workerPool {
	p := &workerPool{bands: splitRows(rows, count)}
	p.cond = sync.NewCond(&p.mu)
	for i := range p.bands {
		go p.loop(i)
	}
	return p
}

func (p *workerPool) loop(index int) {
	band := p.bands[index]
	lastStep := 0
	p.mu.Lock()
	for {
		for p.step == lastStep && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		lastStep = p.step
		job := p.job
		p.mu.Unlock()

		if band.y1 > band.y0 {
			job(band.y0, band.y1)
		}

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

func (p *workerPool) forRows(fn func(y0, y1 int)) {
	p.mu.Lock()
	p.job = fn
	p.pending = len(p.bands)
	p.step++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.job = nil
	p.mu.Unlock()
}

func (p *workerPool) close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}

// groupDispatcher spawns a bounded errgroup per pass instead of holding
// goroutines between frames.
type groupDispatcher struct {
	bands []rowBand
	limit int
}

func newGroupDispatcher(rows int) *groupDispatcher {
	limit := runtime.GOMAXPROCS(0)
	return &groupDispatcher{bands: splitRows(rows, limit), limit: limit}
}

func (d *groupDispatcher) forRows(fn func(y0, y1 int)) {
	var g errgroup.Group
	g.SetLimit(d.limit)
	for _, b := range d.bands {
		if b.y1 <= b.y0 {
			continue
		}
		g.Go(func() error {
			fn(b.y0, b.y1)
			return nil
		})
	}
	_ = g.Wait()
}

func (d *groupDispatcher) close() {}
