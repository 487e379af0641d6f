package fluid

import (
	"sync/atomic"
	"testing"
)

func TestSplitRowsCoversEveryRow(t *testing.T) {
	cases := []struct{ rows, count int }{
		{1, 1}, {16, 1}, {16, 4}, {17, 4}, {5, 8}, {256, 12}, {3, 0},
	}
	for _, c := range cases {
		bands := splitRows(c.rows, c.count)
		want := max(c.count, 1)
		if len(bands) != want {
			t.Errorf("splitRows(%d,%d) gave %d bands, want %d", c.rows, c.count, len(bands), want)
		}
		next := 0
		for _, b := range bands {
			if b.y0 != next && b.y1 > b.y0 {
				t.Errorf("splitRows(%d,%d): band %v does not start at %d", c.rows, c.count, b, next)
			}
			if b.y1 > b.y0 {
				next = b.y1
			}
		}
		if next != c.rows {
			t.Errorf("splitRows(%d,%d) covered %d rows", c.rows, c.count, next)
		}
	}
}

func TestDispatchersVisitEveryRowOncePerPass(t *testing.T) {
	const rows = 37
	dispatchers := map[string]dispatcher{
		"pool-1":  newWorkerPool(1, rows),
		"pool-5":  newWorkerPool(5, rows),
		"pool-64": newWorkerPool(64, rows),
		"group":   newGroupDispatcher(rows),
	}
	for name, d := range dispatchers {
		var visits [rows]atomic.Int32
		for pass := 1; pass <= 50; pass++ {
			d.forRows(func(y0, y1 int) {
				for y := y0; y < y1; y++ {
					visits[y].Add(1)
				}
			})
			// forRows must not return before every band is done.
			for y := range visits {
				if got := visits[y].Load(); got != int32(pass) {
					t.Fatalf("%s pass %d: row %d visited %d times", name, pass, y, got)
				}
			}
		}
		d.close()
	}
}
