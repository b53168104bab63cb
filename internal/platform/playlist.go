package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/ytdlp/v2"
)

// DefaultPlaylistTimeout bounds a playlist lookup
const DefaultPlaylistTimeout = 60 * time.Second

// URL parameters
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Playlist naming
const (
	DefaultPlaylistName     = "Untitled Playlist"
	PlaylistSuffix          = " - Playlist"
	MaxTitleLength          = 50
	TitleTruncateSuffix     = "..."
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

var (
	// ErrNotPlaylist is returned for URLs without a list= parameter
	ErrNotPlaylist = errors.New("URL does not contain playlist parameter")
	// ErrEmptyPlaylistID is returned for URLs with an empty list= parameter
	ErrEmptyPlaylistID = errors.New("empty playlist ID")
)

// PlaylistLister returns the entries of a playlist by ID
type PlaylistLister func(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error)

// PlaylistResolver expands a playlist URL into its videos so the user can pick one to download
type PlaylistResolver struct {
	list    PlaylistLister
	timeout time.Duration
}

// NewPlaylistResolver creates a resolver backed by the ytdlp library
func NewPlaylistResolver() *PlaylistResolver {
	return &PlaylistResolver{list: listWithYTDLP, timeout: DefaultPlaylistTimeout}
}

// NewPlaylistResolverWith creates a resolver with a custom lister
func NewPlaylistResolverWith(list PlaylistLister) *PlaylistResolver {
	return &PlaylistResolver{list: list, timeout: DefaultPlaylistTimeout}
}

// SetTimeout sets the lookup timeout
func (r *PlaylistResolver) SetTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// IsPlaylistURL reports whether url points at a playlist
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// Resolve lists the videos of the playlist url refers to
func (r *PlaylistResolver) Resolve(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	videos, err := r.list(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	playlist := model.NewPlaylist(url)
	playlist.ID = playlistID
	for _, v := range videos {
		playlist.AddVideo(v)
	}
	playlist.Title = playlistTitle(playlistID, videos)
	return playlist, nil
}

// ExtractPlaylistID returns the value of the list= parameter.
// Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) (string, error) {
	_, after, found := strings.Cut(url, PlaylistParam)
	if !found {
		return "", ErrNotPlaylist
	}
	id, _, _ := strings.Cut(after, ParamSeparator)
	if id == "" {
		return "", ErrEmptyPlaylistID
	}
	return id, nil
}

func playlistTitle(playlistID string, videos []*model.PlaylistVideo) string {
	if len(videos) == 0 {
		if playlistID == "" {
			return DefaultPlaylistName
		}
		return fmt.Sprintf("Playlist %s", playlistID)
	}

	first := videos[0].Title
	if runes := []rune(first); len(runes) > MaxTitleLength {
		first = string(runes[:MaxTitleLength]) + TitleTruncateSuffix
	}
	return first + PlaylistSuffix
}

func listWithYTDLP(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	videos := make([]*model.PlaylistVideo, 0, len(items))
	for _, it := range items {
		videos = append(videos, &model.PlaylistVideo{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return videos, nil
}
