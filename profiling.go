package main

import (
	"log"
	"os"
	"runtime/pprof"
	"sync"
)

// startDefaultPGORecording writes a CPU profile to path until the returned
// stop function is called. Stop is safe to call more than once.
func startDefaultPGORecording(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Printf("closing %s: %v", path, err)
				return
			}
			log.Printf("wrote CPU profile to %s", path)
		})
	}
	return stop, nil
}
