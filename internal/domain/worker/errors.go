package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrWorkerInUse    = errors.New("worker still has attendance, salary payments or jobs")
)
