package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())

	cfg := configFromFlags()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration: %v", err)
	}
	g, err := newGame(cfg)
	if err != nil {
		log.Fatalf("starting solver: %v", err)
	}
	defer g.Close()

	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording("default.pgo")
		if err != nil {
			log.Fatalf("starting PGO recording: %v", err)
		}
		defer stop()
		g.enableAutoStir(pgoRecordDuration, stop)
	}

	n := cfg.GridResolution
	ebiten.SetWindowSize(n*windowScale, n*windowScale)
	ebiten.SetWindowTitle("Fluid")
	ebiten.SetTPS(int(defaultTPS))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("running: %v", err)
	}
}
