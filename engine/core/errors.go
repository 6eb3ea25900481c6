package core

import (
	"errors"
)

var (
	ErrUnknownOperation  = errors.New("math3d: unknown operation")
	ErrUnknownOperand    = errors.New("math3d: unknown operand")
	ErrOperandKind       = errors.New("math3d: operand has the wrong kind")
	ErrInvalidWorkbook   = errors.New("math3d: invalid workbook")
	ErrExpectationFailed = errors.New("math3d: expectation failed")
	ErrWatcherClosed     = errors.New("math3d: watcher closed")
)

var (
	ErrNoWorkers         = errors.New("math3d: attempting to create worker pool with less than 1 worker")
	ErrNegativeQueueSize = errors.New("math3d: attempting to create worker pool with a negative queue size")
	ErrJobSystemShutdown = errors.New("math3d: job system is shut down")
)
