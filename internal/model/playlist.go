package model

import "time"

// PlaylistVideo represents a single entry of a remote playlist
type PlaylistVideo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Playlist represents a resolved YouTube playlist the user can pick a video from
type Playlist struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Videos    []*PlaylistVideo `json:"videos"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(url string) *Playlist {
	return &Playlist{
		URL:       url,
		Videos:    make([]*PlaylistVideo, 0),
		CreatedAt: time.Now(),
	}
}

// AddVideo adds a video to the playlist
func (p *Playlist) AddVideo(video *PlaylistVideo) {
	p.Videos = append(p.Videos, video)
}

// Titles returns the entry titles in playlist order
func (p *Playlist) Titles() []string {
	titles := make([]string, 0, len(p.Videos))
	for _, v := range p.Videos {
		titles = append(titles, v.Title)
	}
	return titles
}
