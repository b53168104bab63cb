// Package trim runs a snapshot of the trim queue through ffmpeg, one task at
// a time, and reports every step on the event bus.
//
// For task i (1-based) the processor parses the start and end time codes,
// skips the task with a trim_task_failed event when the range is invalid,
// and otherwise writes <output dir>/<base>_trim_<i><ext> by stream copy.
// Exactly one trim_queue_complete event ends every run.
package trim
