package model

// Package model defines domain data structures used across the app: trim
// tasks and the trim queue, download tasks, playlist entries, event payloads
// and status enums. The queue is mutated only from the UI goroutine; workers
// receive snapshots.
