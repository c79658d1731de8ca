package config

import "time"

// Timing defaults for background work
const (
	// TaskSweepInterval is how often terminal tasks are swept
	TaskSweepInterval = 5 * time.Minute
	// TaskRetention is how long terminal tasks stay pollable
	TaskRetention = 1 * time.Hour
	// TaskPollAfter is the recommended client poll interval
	TaskPollAfter = 2 * time.Second
	// RunPollInterval is how often an async notebook run polls the runs API
	RunPollInterval = 5 * time.Second
	// StatementCacheTTL is how long SQL statement results stay cached
	StatementCacheTTL = 15 * time.Minute
)
