package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted          = errors.New("service not started")
	ErrUnknownEstimator    = errors.New("unknown estimator kind")
	ErrInvalidYears        = errors.New("years must be non-negative")
	ErrInvalidCoachingRank = errors.New("coaching rank out of range")
	ErrDuplicatePass       = errors.New("development pass already requested for this season")
	ErrQueueFull           = errors.New("development queue is full")
)
