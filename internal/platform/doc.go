package platform

// Package platform contains OS integration and external tooling glue:
// directory creation, locating downloaded files, OS open/reveal, playlist
// expansion via the ytdlp library and watching the downloads directory.
