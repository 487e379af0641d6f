package main

import "time"

// Front-end configuration constants. Solver defaults mirror
// fluid.DefaultConfig and can be overridden by flags.
const (
	defaultGrid             = 256
	windowScale             = 3
	defaultTPS              = 60.0
	defaultJacobi           = 20
	minJacobi               = 1
	maxJacobi               = 200
	jacobiStep              = 5
	defaultTimestep         = 1.0
	defaultDissipation      = 0.995
	defaultForcingStrength  = 1.0
	defaultForcingRadius    = 6.0
	defaultForceScale       = 1.0
	defaultPalette          = "viridis"
	pgoRecordDuration       = 15 * time.Second
	defaultStatsInterval    = 5 * time.Second
	autoStirRadiusFraction  = 0.3
	autoStirAngularVelocity = 0.05
)
