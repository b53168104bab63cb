// Package preview keeps a player's playback clock inside a selected
// [start, end] range and mirrors it into a slider whose value 0 is start.
//
// Synchronization is polling based: a scheduled tick (DefaultTickInterval)
// clamps the player position and reports the slider value, except while the
// user drags the slider, which takes priority.
package preview
