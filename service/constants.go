package service

import "time"

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // percent per year
	MaxTermYears    = 50.0

	MaxGraphPoints = 10_000

	// sampling checks for cancellation every this many points
	sampleCheckEvery = 64

	DefaultEvalTimeout = 2 * time.Second
)
