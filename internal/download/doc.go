// Package download fetches a single remote video with yt-dlp (through
// github.com/lrstanley/go-ytdlp) and reports the run on the event bus:
// download_started, download_progress, then download_complete and
// optionally auto_load_video, or download_failed.
//
// Only one download runs at a time; a second Start while busy is rejected.
package download
